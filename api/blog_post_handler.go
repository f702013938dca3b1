package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pressbox/blog-backend/database"
	"github.com/pressbox/blog-backend/errs"
	"github.com/pressbox/blog-backend/models"
)

// postStore is the slice of the data layer the post handlers need.
// *database.BlogPostRepo satisfies it.
type postStore interface {
	FindAll(ctx context.Context) ([]models.BlogPost, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error)
	Insert(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, id primitive.ObjectID, update models.BlogPostUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type blogPostHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     postStore
}

func newBlogPostHandler(posts postStore) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

// PostListItem is a blog post as rendered in listings, with the author
// collapsed to a display string.
type PostListItem struct {
	ID      primitive.ObjectID `json:"id"`
	Title   string             `json:"title"`
	Content string             `json:"content"`
	Author  string             `json:"author"`
	Created time.Time          `json:"created"`
}

// CreatePostRequest is the payload accepted by createPost
type CreatePostRequest struct {
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Author  models.Author `json:"author"`
}

// listPosts retrieves all blog posts
// @Summary List blog posts
// @Description Retrieves every blog post with the author rendered as a display string
// @Tags Blog Posts
// @Produce json
// @Success 200 {array} PostListItem "List of blog posts"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching blog posts"
// @Router /posts [get]
func (h blogPostHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.posts.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog posts", err))
			return
		}

		items := make([]PostListItem, 0, len(posts))
		for _, post := range posts {
			items = append(items, PostListItem{
				ID:      post.ID,
				Title:   post.Title,
				Content: post.Content,
				Author:  post.Author.DisplayName(),
				Created: post.Created,
			})
		}

		h.responder.WriteJSON(w, items)
	}
}

// getPost retrieves a single blog post by id
// @Summary Get blog post
// @Description Retrieves a specific blog post by id
// @Tags Blog Posts
// @Produce json
// @Param postID path string true "Blog Post ID" format(objectid)
// @Success 200 {object} models.BlogPost "Blog post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid postID"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /posts/{postID} [get]
func (h blogPostHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := postIDFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.FindByID(r.Context(), id)
		if errors.Is(err, database.ErrPostNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// createPost creates a new blog post
// @Summary Create blog post
// @Description Inserts a new blog post; the id and creation timestamp are generated by the store
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Blog post data"
// @Success 201 {object} models.BlogPost "Created blog post"
// @Failure 400 {object} ErrorResponse "Bad Request - Malformed body"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating blog post"
// @Router /posts [post]
func (h blogPostHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		post := models.BlogPost{
			Title:   req.Title,
			Content: req.Content,
			Author:  req.Author,
		}

		if err := h.posts.Insert(r.Context(), &post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog post", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, post)
	}
}

// updatePost overwrites the provided fields of an existing blog post
// @Summary Update blog post
// @Description Overwrites only the fields present in the payload
// @Tags Blog Posts
// @Accept json
// @Param postID path string true "Blog Post ID" format(objectid)
// @Param post body models.BlogPostUpdate true "Fields to overwrite"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid postID or body"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /posts/{postID} [put]
func (h blogPostHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := postIDFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var update models.BlogPostUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post update body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		err = h.posts.Update(r.Context(), id, update)
		if errors.Is(err, database.ErrPostNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog post", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// deletePost removes a blog post by id
// @Summary Delete blog post
// @Description Removes a blog post; deleting an already-removed id still succeeds
// @Tags Blog Posts
// @Param postID path string true "Blog Post ID" format(objectid)
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid postID"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting blog post"
// @Router /posts/{postID} [delete]
func (h blogPostHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := postIDFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.posts.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog post", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// postIDFromRequest parses the postID path parameter into an ObjectID
func postIDFromRequest(r *http.Request) (primitive.ObjectID, error) {
	idStr := chi.URLParam(r, "postID")
	if idStr == "" {
		return primitive.NilObjectID, errs.NewBadRequestError("missing postID")
	}

	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, errs.NewBadRequestError("invalid postID")
	}
	return id, nil
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pressbox/blog-backend/database"
	"github.com/pressbox/blog-backend/models"
)

// fakePostStore is an in-memory postStore used to test handlers without a
// running document store.
type fakePostStore struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]models.BlogPost
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: map[primitive.ObjectID]models.BlogPost{}}
}

func (s *fakePostStore) FindAll(ctx context.Context) ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.BlogPost, 0, len(s.posts))
	for _, post := range s.posts {
		all = append(all, post)
	}
	return all, nil
}

func (s *fakePostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, database.ErrPostNotFound
	}
	return &post, nil
}

func (s *fakePostStore) Insert(ctx context.Context, post *models.BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = primitive.NewObjectID()
	post.Created = time.Now().UTC().Truncate(time.Millisecond)
	s.posts[post.ID] = *post
	return nil
}

func (s *fakePostStore) Update(ctx context.Context, id primitive.ObjectID, update models.BlogPostUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return database.ErrPostNotFound
	}
	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Content != nil {
		post.Content = *update.Content
	}
	if update.Author != nil {
		post.Author = *update.Author
	}
	s.posts[id] = post
	return nil
}

func (s *fakePostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

func newTestRouter(store *fakePostStore) http.Handler {
	handlers := &routeHandlers{
		blogPostHandler: newBlogPostHandler(store),
		healthHandler:   newHealthHandler(time.Now()),
	}

	router := chi.NewRouter()
	router.Use(RecoverPanics)
	router.Use(RequestIDMiddleware)
	setupRoutes(router, handlers)
	return router
}

func createPost(t *testing.T, router http.Handler, body string) models.BlogPost {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var post models.BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	return post
}

const samplePostBody = `{
	"title": "First Post",
	"content": "Hello there",
	"author": {"firstName": "Ada", "lastName": "Lovelace"}
}`

func TestCreatePost(t *testing.T) {
	router := newTestRouter(newFakePostStore())

	post := createPost(t, router, samplePostBody)

	assert.False(t, post.ID.IsZero(), "id should be generated")
	assert.False(t, post.Created.IsZero(), "creation timestamp should be set")
	assert.Equal(t, "First Post", post.Title)
	assert.Equal(t, "Hello there", post.Content)
	assert.Equal(t, "Ada", post.Author.FirstName)
	assert.Equal(t, "Lovelace", post.Author.LastName)
}

func TestCreatePostMalformedBody(t *testing.T) {
	router := newTestRouter(newFakePostStore())

	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPosts(t *testing.T) {
	store := newFakePostStore()
	router := newTestRouter(store)

	createPost(t, router, samplePostBody)
	createPost(t, router, `{"title":"Second","content":"More","author":{"firstName":"Grace","lastName":"Hopper"}}`)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var items []PostListItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)

	authors := []string{items[0].Author, items[1].Author}
	assert.ElementsMatch(t, []string{"Ada Lovelace", "Grace Hopper"}, authors)
}

func TestListPostsEmpty(t *testing.T) {
	router := newTestRouter(newFakePostStore())

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetPost(t *testing.T) {
	router := newTestRouter(newFakePostStore())

	created := createPost(t, router, samplePostBody)

	req := httptest.NewRequest(http.MethodGet, "/posts/"+created.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Content, got.Content)
	assert.Equal(t, created.Author, got.Author)
}

func TestGetPostUnknownID(t *testing.T) {
	router := newTestRouter(newFakePostStore())

	req := httptest.NewRequest(http.MethodGet, "/posts/"+primitive.NewObjectID().Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPostInvalidID(t *testing.T) {
	router := newTestRouter(newFakePostStore())

	req := httptest.NewRequest(http.MethodGet, "/posts/not-an-id", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePostPartial(t *testing.T) {
	store := newFakePostStore()
	router := newTestRouter(store)

	created := createPost(t, router, samplePostBody)

	req := httptest.NewRequest(http.MethodPut, "/posts/"+created.ID.Hex(),
		bytes.NewBufferString(`{"title":"Renamed"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	stored, err := store.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
	// untouched fields persist
	assert.Equal(t, created.Content, stored.Content)
	assert.Equal(t, created.Author, stored.Author)
	assert.True(t, created.Created.Equal(stored.Created))
}

func TestUpdatePostUnknownID(t *testing.T) {
	router := newTestRouter(newFakePostStore())

	req := httptest.NewRequest(http.MethodPut, "/posts/"+primitive.NewObjectID().Hex(),
		bytes.NewBufferString(`{"title":"Renamed"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePostMalformedBody(t *testing.T) {
	router := newTestRouter(newFakePostStore())
	created := createPost(t, router, samplePostBody)

	req := httptest.NewRequest(http.MethodPut, "/posts/"+created.ID.Hex(),
		bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePost(t *testing.T) {
	store := newFakePostStore()
	router := newTestRouter(store)

	created := createPost(t, router, samplePostBody)

	req := httptest.NewRequest(http.MethodDelete, "/posts/"+created.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	_, err := store.FindByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, database.ErrPostNotFound)

	// deleting again is idempotent
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/posts/"+created.ID.Hex(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(newFakePostStore())

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestHealth(t *testing.T) {
	router := newTestRouter(newFakePostStore())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

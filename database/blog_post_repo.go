package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pressbox/blog-backend/models"
)

const postsCollection = "posts"

// ErrPostNotFound is returned when an id matches no stored document.
var ErrPostNotFound = errors.New("blog post not found")

type BlogPostRepo struct {
	coll *mongo.Collection
}

func NewBlogPostRepo(db *mongo.Database) *BlogPostRepo {
	return &BlogPostRepo{coll: db.Collection(postsCollection)}
}

// FindAll returns all blog posts from the store
func (r *BlogPostRepo) FindAll(ctx context.Context) ([]models.BlogPost, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.BlogPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByID returns a blog post by its id
func (r *BlogPostRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Insert stores a new blog post, stamping its id and creation time.
// The passed post is updated in place.
func (r *BlogPostRepo) Insert(ctx context.Context, post *models.BlogPost) error {
	post.ID = primitive.NewObjectID()
	post.Created = time.Now().UTC().Truncate(time.Millisecond)

	_, err := r.coll.InsertOne(ctx, post)
	return err
}

// Update overwrites only the fields present in the partial update.
// The id and creation timestamp are never touched.
func (r *BlogPostRepo) Update(ctx context.Context, id primitive.ObjectID, update models.BlogPostUpdate) error {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if update.Author != nil {
		set["author"] = *update.Author
	}
	if len(set) == 0 {
		// nothing to overwrite, but the id must still exist
		_, err := r.FindByID(ctx, id)
		return err
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Delete removes a blog post by id. Deleting an id that is already gone
// is not an error.
func (r *BlogPostRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

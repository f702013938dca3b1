package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author is the post author embedded in every blog post document.
// It is a value object, not a standalone entity.
type Author struct {
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
}

// DisplayName derives the public author string shown in post listings.
func (a Author) DisplayName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// BlogPost represents a blog post document in the posts collection
type BlogPost struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title   string             `json:"title" bson:"title"`
	Content string             `json:"content" bson:"content"`
	Author  Author             `json:"author" bson:"author"`
	Created time.Time          `json:"created" bson:"created"`
}

// BlogPostUpdate carries a partial update. Nil fields were absent from the
// request and must not overwrite the stored values.
type BlogPostUpdate struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Author  *Author `json:"author"`
}

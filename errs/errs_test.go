package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestApiErrUnwrap(t *testing.T) {
	err := NewNotFoundError("blog post")

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNewDatabaseErrorNoDocuments(t *testing.T) {
	err := NewDatabaseError("find", "blog post", mongo.ErrNoDocuments)

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.True(t, IsNotFound(err))
}

func TestNewDatabaseErrorGeneric(t *testing.T) {
	cause := errors.New("cursor exhausted")
	err := NewDatabaseError("find", "blog posts", cause)

	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.True(t, errors.Is(err, ErrDatabaseQuery))
	assert.Contains(t, err.GetFullError(), "cursor exhausted")
}

func TestNewDatabaseErrorConnection(t *testing.T) {
	cause := errors.New("server selection error: context deadline exceeded")
	err := NewDatabaseError("find", "blog posts", cause)

	assert.Equal(t, http.StatusServiceUnavailable, err.StatusCode)
}

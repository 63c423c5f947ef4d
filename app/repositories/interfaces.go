package repositories

import (
	"errors"

	"bloglist/app/models"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username must be unique")
)

// PostRepository defines the interface for post data access. Create and
// Delete keep the owner's Blogs list in step with the post in the same
// transaction. UpdateFunc reads the post, applies fn and writes the result
// atomically; an error from fn aborts the write and is returned unchanged.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	List() ([]*models.Post, error)
	Update(post *models.Post) error
	UpdateFunc(id string, fn func(post *models.Post) error) (*models.Post, error)
	Delete(id string) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	List() ([]*models.User, error)
	SetBlogs(id string, blogs []string) error
}

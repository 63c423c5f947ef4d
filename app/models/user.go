package models

import (
	"errors"
	"time"
)

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return toValidationError(err)
	}
	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (u *User) BeforeCreate() {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if u.Blogs == nil {
		u.Blogs = []string{}
	}
}

// AddBlog records a post id as owned by the user
func (u *User) AddBlog(postID string) {
	if u.OwnsBlog(postID) {
		return
	}
	u.Blogs = append(u.Blogs, postID)
}

// RemoveBlog drops a post id from the user's owned list
func (u *User) RemoveBlog(postID string) error {
	for i, id := range u.Blogs {
		if id == postID {
			u.Blogs = append(u.Blogs[:i], u.Blogs[i+1:]...)
			return nil
		}
	}
	return errors.New("blog not found")
}

// OwnsBlog reports whether postID is in the user's owned list
func (u *User) OwnsBlog(postID string) bool {
	for _, id := range u.Blogs {
		if id == postID {
			return true
		}
	}
	return false
}

package models

import (
	"errors"
	"strings"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return toValidationError(err)
	}
	if strings.TrimSpace(p.Title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if strings.TrimSpace(p.URL) == "" {
		return &ValidationError{Field: "url", Message: "is required"}
	}
	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.Comments == nil {
		p.Comments = []string{}
	}
}

// AddComment appends a comment to the post
func (p *Post) AddComment(comment string) error {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return &ValidationError{Field: "comment", Message: "is required"}
	}
	p.Comments = append(p.Comments, comment)
	return nil
}

// Apply copies the non-nil fields of the patch onto the post. Identity,
// ownership and creation time cannot be patched.
func (patch PostPatch) Apply(p *Post) error {
	if p == nil {
		return errors.New("post cannot be nil")
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Author != nil {
		p.Author = *patch.Author
	}
	if patch.URL != nil {
		p.URL = *patch.URL
	}
	if patch.Likes != nil {
		p.Likes = *patch.Likes
	}
	if patch.Comments != nil {
		p.Comments = append([]string{}, (*patch.Comments)...)
	}
	return nil
}

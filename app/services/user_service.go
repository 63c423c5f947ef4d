package services

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"bloglist/app/metrics"
	"bloglist/app/models"
	"bloglist/app/policy"
	"bloglist/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 3

// BlogSummary is the short form of a post listed under its owner
type BlogSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// UserDetails is a user with their posts populated
type UserDetails struct {
	*models.User
	BlogPosts []BlogSummary `json:"blogPosts"`
}

// UserService handles registration, authentication and owner bookkeeping
type UserService struct {
	userRepo repositories.UserRepository
	postRepo repositories.PostRepository
	hashCost int
}

// NewUserService creates a new UserService. A hashCost of zero selects
// bcrypt.DefaultCost.
func NewUserService(userRepo repositories.UserRepository, postRepo repositories.PostRepository, hashCost int) *UserService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &UserService{
		userRepo: userRepo,
		postRepo: postRepo,
		hashCost: hashCost,
	}
}

// Register validates and stores a new user with a hashed password
func (s *UserService) Register(username, name, password string) (*models.User, error) {
	user := &models.User{Username: username, Name: name}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: %w", ErrValidation, &models.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters long", MinPasswordLength),
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	metrics.UsersRegistered.Inc()
	return user, nil
}

// Authenticate returns the user whose credentials match
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if errors.Is(err, repositories.ErrNotFound) {
		metrics.Logins.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.Logins.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}
	metrics.Logins.WithLabelValues("success").Inc()
	return user, nil
}

// ListUsers retrieves every user with their posts populated
func (s *UserService) ListUsers() ([]*UserDetails, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	byID := make(map[string]*models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	details := make([]*UserDetails, 0, len(users))
	for _, u := range users {
		d := &UserDetails{User: u, BlogPosts: []BlogSummary{}}
		for _, id := range u.Blogs {
			if p, ok := byID[id]; ok {
				d.BlogPosts = append(d.BlogPosts, BlogSummary{ID: p.ID, Title: p.Title, Author: p.Author, URL: p.URL})
			}
		}
		details = append(details, d)
	}
	return details, nil
}

// CheckOwnership compares every user's Blogs list with the posts they own.
// With repair set, drifted lists are rewritten from the posts.
func (s *UserService) CheckOwnership(repair bool) ([]policy.Mismatch, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, err
	}

	mismatches := policy.CheckOwnership(users, posts)
	if !repair {
		return mismatches, nil
	}
	for _, m := range mismatches {
		if err := s.userRepo.SetBlogs(m.UserID, m.Expected); err != nil {
			return mismatches, fmt.Errorf("failed to repair user %s: %w", m.UserID, err)
		}
	}
	return mismatches, nil
}

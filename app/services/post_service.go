package services

import (
	"errors"
	"fmt"

	"bloglist/app/metrics"
	"bloglist/app/models"
	"bloglist/app/policy"
	"bloglist/app/repositories"
	"bloglist/app/stats"
)

// OwnerSummary is the public view of a post's owner
type OwnerSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// PostDetails is a post with its owner populated
type PostDetails struct {
	*models.Post
	User *OwnerSummary `json:"user,omitempty"`
}

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// CreatePost validates a post and stores it as owned by ownerID
func (s *PostService) CreatePost(ownerID string, post *models.Post) error {
	post.ID = ""
	post.OwnerID = ownerID
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := s.postRepo.Create(post); err != nil {
		return err
	}
	metrics.PostsCreated.Inc()
	return nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(id string) (*models.Post, error) {
	return s.postRepo.GetByID(id)
}

// ListPosts retrieves every post
func (s *PostService) ListPosts() ([]*models.Post, error) {
	return s.postRepo.List()
}

// ListPostDetails retrieves every post with its owner populated
func (s *PostService) ListPostDetails() ([]*PostDetails, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load owners: %w", err)
	}

	owners := make(map[string]*OwnerSummary, len(users))
	for _, u := range users {
		owners[u.ID] = &OwnerSummary{ID: u.ID, Username: u.Username, Name: u.Name}
	}

	details := make([]*PostDetails, 0, len(posts))
	for _, p := range posts {
		details = append(details, &PostDetails{Post: p, User: owners[p.OwnerID]})
	}
	return details, nil
}

// UpdatePost applies a patch to an existing post. Ownership, id and creation
// time are preserved. The read, patch and write happen atomically, so
// concurrent updates never overwrite each other.
func (s *PostService) UpdatePost(id string, patch models.PostPatch) (*models.Post, error) {
	return s.postRepo.UpdateFunc(id, func(post *models.Post) error {
		if err := patch.Apply(post); err != nil {
			return err
		}
		if err := post.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return nil
	})
}

// AddComment appends a comment to a post
func (s *PostService) AddComment(id, comment string) (*models.Post, error) {
	return s.postRepo.UpdateFunc(id, func(post *models.Post) error {
		if err := post.AddComment(comment); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return nil
	})
}

// DeletePost deletes a post on behalf of requesterID. Only the owner may
// delete; anyone else gets ErrForbidden and nothing is changed.
func (s *PostService) DeletePost(requesterID, id string) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return err
	}

	if !policy.CanDelete(requesterID, post) {
		metrics.DeletesDenied.Inc()
		return ErrForbidden
	}

	if err := s.postRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	metrics.PostsDeleted.Inc()
	return nil
}

// Stats summarizes every stored post
func (s *PostService) Stats() (stats.Summary, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(posts), nil
}

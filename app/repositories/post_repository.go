package repositories

import (
	"errors"
	"fmt"
	"sync"

	"bloglist/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB

	// serializes read-modify-write cycles issued through this repository
	rmw sync.Mutex
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create stores a new post and appends its id to the owner's Blogs
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return update(r.db, func(txn *badger.Txn) error {
		var owner userRecord
		if err := getEntity(txn, userKey(post.OwnerID), &owner); err != nil {
			return fmt.Errorf("owner %q: %w", post.OwnerID, err)
		}

		post.ID = newID()
		post.BeforeCreate()
		if err := setEntity(txn, postKey(post.ID), post); err != nil {
			return err
		}

		owner.AddBlog(post.ID)
		return setEntity(txn, userKey(owner.ID), &owner)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, postKey(id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves every post in creation order
func (r *BadgerPostRepository) List() ([]*models.Post, error) {
	posts := []*models.Post{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update updates an existing post
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return update(r.db, func(txn *badger.Txn) error {
		key := postKey(post.ID)

		// Verify post exists
		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return setEntity(txn, key, post)
	})
}

// UpdateFunc loads the post, applies fn and stores the result in one
// transaction. Writers racing on the same post from outside this repository
// surface as badger conflicts and are retried.
func (r *BadgerPostRepository) UpdateFunc(id string, fn func(post *models.Post) error) (*models.Post, error) {
	r.rmw.Lock()
	defer r.rmw.Unlock()

	var result models.Post
	err := update(r.db, func(txn *badger.Txn) error {
		var post models.Post
		if err := getEntity(txn, postKey(id), &post); err != nil {
			return err
		}
		ownerID, createdAt := post.OwnerID, post.CreatedAt
		if err := fn(&post); err != nil {
			return err
		}
		post.ID, post.OwnerID, post.CreatedAt = id, ownerID, createdAt
		if err := setEntity(txn, postKey(id), &post); err != nil {
			return err
		}
		result = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a post and drops its id from the owner's Blogs
func (r *BadgerPostRepository) Delete(id string) error {
	return update(r.db, func(txn *badger.Txn) error {
		var post models.Post
		if err := getEntity(txn, postKey(id), &post); err != nil {
			return err
		}
		if err := txn.Delete(postKey(id)); err != nil {
			return err
		}

		var owner userRecord
		err := getEntity(txn, userKey(post.OwnerID), &owner)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		// A missing entry means the list had already drifted; the post is
		// still gone, which is what the owner list should reflect.
		_ = owner.RemoveBlog(id)
		return setEntity(txn, userKey(owner.ID), &owner)
	})
}

package repositories

import (
	"errors"
	"fmt"

	"bloglist/app/models"

	"github.com/dgraph-io/badger/v4"
)

// userRecord is the stored form of a user. models.User hides the password
// hash from JSON, so the record carries it in its own field.
type userRecord struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

func newUserRecord(u *models.User) *userRecord {
	return &userRecord{User: *u, PasswordHash: u.PasswordHash}
}

func (rec *userRecord) toModel() *models.User {
	u := rec.User
	u.PasswordHash = rec.PasswordHash
	if u.Blogs == nil {
		u.Blogs = []string{}
	}
	return &u
}

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create stores a new user. Usernames are unique; the username index key is
// written in the same transaction as the record.
func (r *BadgerUserRepository) Create(user *models.User) error {
	return update(r.db, func(txn *badger.Txn) error {
		_, err := txn.Get(usernameKey(user.Username))
		if err == nil {
			return ErrDuplicateUsername
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		user.ID = newID()
		user.BeforeCreate()
		if err := txn.Set(usernameKey(user.Username), []byte(user.ID)); err != nil {
			return err
		}
		return setEntity(txn, userKey(user.ID), newUserRecord(user))
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id string) (*models.User, error) {
	var rec userRecord
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, userKey(id), &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

// GetByUsername retrieves a user through the username index
func (r *BadgerUserRepository) GetByUsername(username string) (*models.User, error) {
	var rec userRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(usernameKey(username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return getEntity(txn, userKey(string(id)), &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

// List retrieves every user in creation order
func (r *BadgerUserRepository) List() ([]*models.User, error) {
	users := []*models.User{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(UserKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec userRecord
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal user: %w", err)
			}
			users = append(users, rec.toModel())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// SetBlogs overwrites the user's owned post list
func (r *BadgerUserRepository) SetBlogs(id string, blogs []string) error {
	return update(r.db, func(txn *badger.Txn) error {
		var rec userRecord
		if err := getEntity(txn, userKey(id), &rec); err != nil {
			return err
		}
		rec.Blogs = append([]string{}, blogs...)
		return setEntity(txn, userKey(id), &rec)
	})
}

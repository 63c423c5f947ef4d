package mock

import (
	"fmt"
	"slices"
	"strconv"
	"sync"

	"bloglist/app/models"
	"bloglist/app/repositories"
)

// store is the shared in-memory state behind the mock repositories. Records
// are copied on the way in and out so callers cannot mutate stored state.
type store struct {
	mutex     sync.RWMutex
	posts     map[string]*models.Post
	postOrder []string
	users     map[string]*models.User
	userOrder []string
	nextID    int
}

type PostRepository struct {
	*store
}

type UserRepository struct {
	*store
}

// New returns post and user repositories backed by the same store
func New() (*PostRepository, *UserRepository) {
	s := &store{
		posts:  make(map[string]*models.Post),
		users:  make(map[string]*models.User),
		nextID: 1,
	}
	return &PostRepository{s}, &UserRepository{s}
}

func (s *store) newID() string {
	id := strconv.Itoa(s.nextID)
	s.nextID++
	return id
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Comments = slices.Clone(p.Comments)
	return &c
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Blogs = slices.Clone(u.Blogs)
	if c.Blogs == nil {
		c.Blogs = []string{}
	}
	return &c
}

// PostRepository implementation
func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	owner, exists := m.users[post.OwnerID]
	if !exists {
		return fmt.Errorf("owner %q: %w", post.OwnerID, repositories.ErrNotFound)
	}

	post.ID = m.newID()
	post.BeforeCreate()
	m.posts[post.ID] = clonePost(post)
	m.postOrder = append(m.postOrder, post.ID)
	owner.AddBlog(post.ID)
	return nil
}

func (m *PostRepository) GetByID(id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return clonePost(post), nil
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.posts[post.ID] = clonePost(post)
	return nil
}

func (m *PostRepository) UpdateFunc(id string, fn func(post *models.Post) error) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	stored, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	post := clonePost(stored)
	if err := fn(post); err != nil {
		return nil, err
	}
	post.ID, post.OwnerID, post.CreatedAt = id, stored.OwnerID, stored.CreatedAt
	m.posts[id] = clonePost(post)
	return post, nil
}

func (m *PostRepository) Delete(id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[id]
	if !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	m.postOrder = slices.DeleteFunc(m.postOrder, func(v string) bool { return v == id })
	if owner, ok := m.users[post.OwnerID]; ok {
		_ = owner.RemoveBlog(id)
	}
	return nil
}

func (m *PostRepository) List() ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.postOrder))
	for _, id := range m.postOrder {
		posts = append(posts, clonePost(m.posts[id]))
	}
	return posts, nil
}

// UserRepository implementation
func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicateUsername
		}
	}

	user.ID = m.newID()
	user.BeforeCreate()
	m.users[user.ID] = cloneUser(user)
	m.userOrder = append(m.userOrder, user.ID)
	return nil
}

func (m *UserRepository) GetByID(id string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return cloneUser(user), nil
}

func (m *UserRepository) GetByUsername(username string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) List() ([]*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	users := make([]*models.User, 0, len(m.userOrder))
	for _, id := range m.userOrder {
		users = append(users, cloneUser(m.users[id]))
	}
	return users, nil
}

func (m *UserRepository) SetBlogs(id string, blogs []string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	user, exists := m.users[id]
	if !exists {
		return repositories.ErrNotFound
	}
	user.Blogs = slices.Clone(blogs)
	return nil
}

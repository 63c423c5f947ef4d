package services

import (
	"testing"

	"bloglist/app/models"
	"bloglist/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	posts, users, _, userRepo := setupServices(t)

	t.Run("register hashes the password", func(t *testing.T) {
		user, err := users.Register("mluukkai", "Matti Luukkainen", "salainen")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "salainen", user.PasswordHash)
	})

	t.Run("register rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name     string
			username string
			password string
		}{
			{name: "short username", username: "ml", password: "salainen"},
			{name: "missing username", username: "", password: "salainen"},
			{name: "short password", username: "valid", password: "pw"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := users.Register(tt.username, "", tt.password)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
	})

	t.Run("register rejects duplicate username", func(t *testing.T) {
		_, err := users.Register("mluukkai", "Someone Else", "password")
		assert.ErrorIs(t, err, repositories.ErrDuplicateUsername)
	})

	t.Run("authenticate", func(t *testing.T) {
		user, err := users.Authenticate("mluukkai", "salainen")
		require.NoError(t, err)
		assert.Equal(t, "mluukkai", user.Username)

		_, err = users.Authenticate("mluukkai", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = users.Authenticate("nobody", "salainen")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("list users populates blogs", func(t *testing.T) {
		owner, err := userRepo.GetByUsername("mluukkai")
		require.NoError(t, err)
		post := &models.Post{Title: "Owned", Author: "A", URL: "u"}
		require.NoError(t, posts.CreatePost(owner.ID, post))

		list, err := users.ListUsers()
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, []string{post.ID}, list[0].Blogs)
		assert.Equal(t, []BlogSummary{{ID: post.ID, Title: "Owned", Author: "A", URL: "u"}}, list[0].BlogPosts)
	})
}

func TestCheckOwnership(t *testing.T) {
	posts, users, _, userRepo := setupServices(t)
	owner := register(t, users, "owner")
	post := &models.Post{Title: "t", URL: "u"}
	require.NoError(t, posts.CreatePost(owner.ID, post))

	mismatches, err := users.CheckOwnership(false)
	require.NoError(t, err)
	assert.Empty(t, mismatches)

	require.NoError(t, userRepo.SetBlogs(owner.ID, []string{"stale"}))

	mismatches, err = users.CheckOwnership(false)
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	assert.Equal(t, []string{post.ID}, mismatches[0].Missing)
	assert.Equal(t, []string{"stale"}, mismatches[0].Stale)

	_, err = users.CheckOwnership(true)
	require.NoError(t, err)

	stored, err := userRepo.GetByID(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{post.ID}, stored.Blogs)

	mismatches, err = users.CheckOwnership(false)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

func TestCheckOwnershipRepairsDuplicates(t *testing.T) {
	posts, users, _, userRepo := setupServices(t)
	owner := register(t, users, "owner")
	post := &models.Post{Title: "t", URL: "u"}
	require.NoError(t, posts.CreatePost(owner.ID, post))
	require.NoError(t, userRepo.SetBlogs(owner.ID, []string{post.ID, post.ID}))

	mismatches, err := users.CheckOwnership(true)
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	assert.Equal(t, []string{post.ID}, mismatches[0].Stale)

	stored, err := userRepo.GetByID(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{post.ID}, stored.Blogs)
}

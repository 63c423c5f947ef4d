package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		user    *User
		wantErr bool
	}{
		{name: "valid user", user: &User{Username: "mluukkai", Name: "Matti Luukkainen"}},
		{name: "name is optional", user: &User{Username: "root"}},
		{name: "username too short", user: &User{Username: "ml"}, wantErr: true},
		{name: "missing username", user: &User{Name: "Nobody"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "username", verr.Field)
		})
	}
}

func TestUserBlogManagement(t *testing.T) {
	user := &User{Username: "root"}
	user.BeforeCreate()
	assert.False(t, user.CreatedAt.IsZero())
	assert.Empty(t, user.Blogs)

	t.Run("add blog", func(t *testing.T) {
		user.AddBlog("a")
		user.AddBlog("b")
		user.AddBlog("a")
		assert.Equal(t, []string{"a", "b"}, user.Blogs)
		assert.True(t, user.OwnsBlog("b"))
	})

	t.Run("remove existing blog", func(t *testing.T) {
		require.NoError(t, user.RemoveBlog("a"))
		assert.Equal(t, []string{"b"}, user.Blogs)
		assert.False(t, user.OwnsBlog("a"))
	})

	t.Run("remove non-existent blog", func(t *testing.T) {
		assert.Error(t, user.RemoveBlog("zzz"))
	})
}

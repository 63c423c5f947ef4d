package policy

import (
	"testing"

	"bloglist/app/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCanDelete(t *testing.T) {
	post := &models.Post{ID: "p1", OwnerID: "5e492eaa92cc1d43880426e6"}

	tests := []struct {
		name      string
		requester string
		post      *models.Post
		want      bool
	}{
		{name: "owner", requester: "5e492eaa92cc1d43880426e6", post: post, want: true},
		{name: "well-formed but different id", requester: "5e492eaa92cc1d43880426e7", post: post, want: false},
		{name: "empty requester", requester: "", post: post, want: false},
		{name: "nil post", requester: "5e492eaa92cc1d43880426e6", post: nil, want: false},
		{name: "ownerless post", requester: "someone", post: &models.Post{ID: "p2"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDelete(tt.requester, tt.post))
		})
	}
}

func TestCanDeleteComparesByValue(t *testing.T) {
	id := []byte("abc123")
	post := &models.Post{OwnerID: string(id)}
	assert.True(t, CanDelete(string([]byte("abc123")), post))
}

func TestCheckOwnership(t *testing.T) {
	posts := []*models.Post{
		{ID: "p1", OwnerID: "u1"},
		{ID: "p2", OwnerID: "u2"},
		{ID: "p3", OwnerID: "u1"},
	}

	t.Run("consistent", func(t *testing.T) {
		users := []*models.User{
			{ID: "u1", Blogs: []string{"p1", "p3"}},
			{ID: "u2", Blogs: []string{"p2"}},
			{ID: "u3", Blogs: []string{}},
		}
		assert.Empty(t, CheckOwnership(users, posts))
	})

	t.Run("drift is reported per user", func(t *testing.T) {
		users := []*models.User{
			{ID: "u2", Username: "second", Blogs: []string{"p2", "gone"}},
			{ID: "u1", Username: "first", Blogs: []string{"p1"}},
		}
		got := CheckOwnership(users, posts)
		assert.Equal(t, []Mismatch{
			{UserID: "u1", Username: "first", Missing: []string{"p3"}, Expected: []string{"p1", "p3"}},
			{UserID: "u2", Username: "second", Stale: []string{"gone"}, Expected: []string{"p2"}},
		}, got)
	})
}

func TestCheckOwnershipReportsDuplicates(t *testing.T) {
	posts := []*models.Post{{ID: "p1", OwnerID: "u1"}}
	users := []*models.User{{ID: "u1", Username: "first", Blogs: []string{"p1", "p1"}}}

	got := CheckOwnership(users, posts)
	assert.Equal(t, []Mismatch{
		{UserID: "u1", Username: "first", Stale: []string{"p1"}, Expected: []string{"p1"}},
	}, got)
}

func TestOwnedBy(t *testing.T) {
	owned := OwnedBy([]*models.Post{
		{ID: "p1", OwnerID: "u1"},
		{ID: "p2", OwnerID: "u1"},
	})
	assert.Equal(t, map[string][]string{"u1": {"p1", "p2"}}, owned)
}

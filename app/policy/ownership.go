// Package policy decides who may mutate which posts and checks that the
// owner back-references stored on users agree with the posts themselves.
package policy

import (
	"slices"
	"sort"

	"bloglist/app/models"
)

// CanDelete reports whether requesterID identifies the owner of post.
// Identifiers are compared by value.
func CanDelete(requesterID string, post *models.Post) bool {
	if post == nil || requesterID == "" {
		return false
	}
	return requesterID == post.OwnerID
}

// Mismatch describes a user whose stored Blogs list disagrees with the posts
// that name the user as owner.
type Mismatch struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Missing  []string `json:"missing,omitempty"`
	Stale    []string `json:"stale,omitempty"`
	Expected []string `json:"expected"`
}

// OwnedBy derives the owner relation from the posts: owner id to post ids in
// the order the posts are given.
func OwnedBy(posts []*models.Post) map[string][]string {
	owned := make(map[string][]string)
	for _, p := range posts {
		owned[p.OwnerID] = append(owned[p.OwnerID], p.ID)
	}
	return owned
}

// CheckOwnership compares each user's Blogs against the relation derived from
// Post.OwnerID. Missing lists posts the user owns but does not reference,
// Stale lists referenced ids with no matching owned post. Results are sorted
// by user id.
func CheckOwnership(users []*models.User, posts []*models.Post) []Mismatch {
	owned := OwnedBy(posts)
	var out []Mismatch
	for _, u := range users {
		expected := owned[u.ID]
		missing := difference(expected, u.Blogs)
		stale := difference(u.Blogs, expected)
		if len(missing) == 0 && len(stale) == 0 {
			continue
		}
		out = append(out, Mismatch{
			UserID:   u.ID,
			Username: u.Username,
			Missing:  missing,
			Stale:    stale,
			Expected: slices.Clone(expected),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// difference returns the elements of a not matched in b, keeping a's order.
// Occurrences are counted, so an id listed twice in a but once in b is
// returned once.
func difference(a, b []string) []string {
	remaining := make(map[string]int, len(b))
	for _, id := range b {
		remaining[id]++
	}
	var out []string
	for _, id := range a {
		if remaining[id] > 0 {
			remaining[id]--
			continue
		}
		out = append(out, id)
	}
	return out
}

// Package stats computes summary statistics over a list of blog posts.
//
// Every function is pure: it reads the slice it is given and never modifies
// it. Functions that pick a single winner report ok == false for an empty
// list instead of returning a zero value that could pass for a real post.
package stats

import "bloglist/app/models"

// Favorite is the trimmed view of the most liked post.
type Favorite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// AuthorBlogs is the author with the most posts.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes is the author whose posts have the most likes in total.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Summary bundles every statistic for a list of posts. Pointer fields are nil
// when the list is empty.
type Summary struct {
	Posts        int          `json:"posts"`
	TotalLikes   int          `json:"totalLikes"`
	FavoriteBlog *Favorite    `json:"favoriteBlog,omitempty"`
	MostBlogs    *AuthorBlogs `json:"mostBlogs,omitempty"`
	MostLikes    *AuthorLikes `json:"mostLikes,omitempty"`
}

// TotalLikes sums the likes of all posts.
func TotalLikes(posts []*models.Post) int {
	total := 0
	for _, p := range posts {
		total += p.Likes
	}
	return total
}

// FavoriteBlog returns the post with the most likes. On ties the earliest
// post wins: a later post only takes over with strictly more likes.
func FavoriteBlog(posts []*models.Post) (Favorite, bool) {
	if len(posts) == 0 {
		return Favorite{}, false
	}
	fav := posts[0]
	for _, p := range posts[1:] {
		if p.Likes > fav.Likes {
			fav = p
		}
	}
	return Favorite{Title: fav.Title, Author: fav.Author, Likes: fav.Likes}, true
}

// MostBlogs returns the author with the most posts. On ties the author whose
// running count reached the maximum first wins.
func MostBlogs(posts []*models.Post) (AuthorBlogs, bool) {
	if len(posts) == 0 {
		return AuthorBlogs{}, false
	}
	counts := make(map[string]int)
	var best AuthorBlogs
	for _, p := range posts {
		counts[p.Author]++
		if n := counts[p.Author]; n > best.Blogs {
			best = AuthorBlogs{Author: p.Author, Blogs: n}
		}
	}
	return best, true
}

// MostLikes groups posts by author, sums the likes of each group and returns
// the author with the highest sum. On ties the author whose running sum
// reached the maximum first wins.
func MostLikes(posts []*models.Post) (AuthorLikes, bool) {
	if len(posts) == 0 {
		return AuthorLikes{}, false
	}
	sums := make(map[string]int)
	best := AuthorLikes{Author: posts[0].Author}
	for _, p := range posts {
		sums[p.Author] += p.Likes
		if s := sums[p.Author]; s > best.Likes {
			best = AuthorLikes{Author: p.Author, Likes: s}
		}
	}
	return best, true
}

// Summarize computes every statistic in one call.
func Summarize(posts []*models.Post) Summary {
	s := Summary{
		Posts:      len(posts),
		TotalLikes: TotalLikes(posts),
	}
	if fav, ok := FavoriteBlog(posts); ok {
		s.FavoriteBlog = &fav
	}
	if mb, ok := MostBlogs(posts); ok {
		s.MostBlogs = &mb
	}
	if ml, ok := MostLikes(posts); ok {
		s.MostLikes = &ml
	}
	return s
}

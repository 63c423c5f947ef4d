package models

import "time"

// MaxLikes is the largest like count a post may carry. It keeps the sums
// computed over stored posts well inside the int range.
const MaxLikes = 1_000_000_000

// Post represents a blog post. OwnerID references the user that created it.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" validate:"required"`
	Author    string    `json:"author"`
	URL       string    `json:"url" validate:"required"`
	Likes     int       `json:"likes" validate:"gte=0,lte=1000000000"`
	OwnerID   string    `json:"ownerId"`
	Comments  []string  `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostPatch carries the mutable fields of a post. Nil fields are left untouched.
type PostPatch struct {
	Title    *string   `json:"title"`
	Author   *string   `json:"author"`
	URL      *string   `json:"url"`
	Likes    *int      `json:"likes"`
	Comments *[]string `json:"comments"`
}

// User represents a registered account. Blogs lists the ids of the posts the
// user created, oldest first.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username" validate:"required,min=3"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Blogs        []string  `json:"blogs"`
	CreatedAt    time.Time `json:"createdAt"`
}

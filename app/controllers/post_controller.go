package controllers

import (
	"errors"
	"net/http"

	"bloglist/app/middleware"
	"bloglist/app/models"
	"bloglist/app/repositories"
	"bloglist/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

type createPostRequest struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	URL      string   `json:"url"`
	Likes    *int     `json:"likes"`
	Comments []string `json:"comments"`
}

type commentRequest struct {
	Comment string `json:"comment"`
}

// Index handles listing all posts with their owners
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPostDetails()
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetPost(mux.Vars(r)["id"])
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post owned by the authenticated caller
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		sendError(w, "token missing or invalid", http.StatusUnauthorized)
		return
	}

	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post := &models.Post{
		Title:    req.Title,
		Author:   req.Author,
		URL:      req.URL,
		Comments: req.Comments,
	}
	if req.Likes != nil {
		post.Likes = *req.Likes
	}

	if err := pc.postService.CreatePost(userID, post); err != nil {
		// The token verified but its user no longer exists.
		if errors.Is(err, repositories.ErrNotFound) {
			sendError(w, "token missing or invalid", http.StatusUnauthorized)
			return
		}
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Edit handles updating an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	var patch models.PostPatch
	if err := decodeJSON(r, &patch); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.postService.UpdatePost(mux.Vars(r)["id"], patch)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete handles deleting a post. Only its owner may delete it.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		sendError(w, "token missing or invalid", http.StatusUnauthorized)
		return
	}

	if err := pc.postService.DeletePost(userID, mux.Vars(r)["id"]); err != nil {
		sendServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Comment handles adding a comment to a post
func (pc *PostController) Comment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.postService.AddComment(mux.Vars(r)["id"], req.Comment)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Stats handles the summary statistics over all posts
func (pc *PostController) Stats(w http.ResponseWriter, r *http.Request) {
	summary, err := pc.postService.Stats()
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, summary)
}

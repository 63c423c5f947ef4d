package controllers

import (
	"log/slog"
	"net/http"

	"bloglist/app/auth"
	"bloglist/app/logging"
	"bloglist/app/services"
)

// UserController handles registration, listing and login
type UserController struct {
	userService *services.UserService
	tokens      *auth.TokenManager
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, tokens *auth.TokenManager) *UserController {
	return &UserController{userService: userService, tokens: tokens}
}

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Create handles user registration
func (uc *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := uc.userService.Register(req.Username, req.Name, req.Password)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, user)
}

// Index handles listing users with their posts
func (uc *UserController) Index(w http.ResponseWriter, r *http.Request) {
	users, err := uc.userService.ListUsers()
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, users)
}

// Login checks credentials and issues a bearer token
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	logger := logging.FromContext(r.Context())
	user, err := uc.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		logger.Warn("login failed", slog.String("username", req.Username))
		sendServiceError(w, r, err)
		return
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	logger.Info("login succeeded", slog.String("user_id", user.ID))
	sendJSON(w, http.StatusOK, loginResponse{Token: token, Username: user.Username, Name: user.Name})
}

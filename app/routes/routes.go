// Package routes wires repositories, services and controllers into the
// service's HTTP router.
package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"bloglist/app/auth"
	"bloglist/app/controllers"
	"bloglist/app/middleware"
	"bloglist/app/repositories"
	"bloglist/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries the collaborators the router needs besides the store
type Options struct {
	Tokens   *auth.TokenManager
	Logger   *slog.Logger
	HashCost int
}

// SetupRoutes defines the application's routes over db and returns a router.
func SetupRoutes(db *badger.DB, opts Options) *mux.Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	postRepo := repositories.NewBadgerPostRepository(db)
	userRepo := repositories.NewBadgerUserRepository(db)

	postController := controllers.NewPostController(services.NewPostService(postRepo, userRepo))
	userController := controllers.NewUserController(services.NewUserService(userRepo, postRepo, opts.HashCost), opts.Tokens)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID(logger))
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Metrics)
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Authenticate(opts.Tokens))

	router.HandleFunc("/healthz", health(db)).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Blog endpoints. stats is registered before {id} so it is not taken for an id.
	blogs := api.PathPrefix("/blogs").Subrouter()
	blogs.HandleFunc("", postController.Index).Methods("GET")
	blogs.HandleFunc("", middleware.RequireUser(postController.Create)).Methods("POST")
	blogs.HandleFunc("/stats", postController.Stats).Methods("GET")
	blogs.HandleFunc("/{id}", postController.Show).Methods("GET")
	blogs.HandleFunc("/{id}", middleware.RequireUser(postController.Edit)).Methods("PUT")
	blogs.HandleFunc("/{id}", middleware.RequireUser(postController.Delete)).Methods("DELETE")
	blogs.HandleFunc("/{id}/comments", postController.Comment).Methods("POST")

	// User endpoints
	api.HandleFunc("/users", userController.Create).Methods("POST")
	api.HandleFunc("/users", userController.Index).Methods("GET")
	api.HandleFunc("/login", userController.Login).Methods("POST")

	// Router middleware only runs for matched routes
	router.NotFoundHandler = middleware.RequestID(logger)(
		middleware.Logger(middleware.Metrics(http.HandlerFunc(unknownEndpoint))))

	return router
}

func unknownEndpoint(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"error": "unknown endpoint"})
}

func health(db *badger.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if db.IsClosed() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appMiddleware "github.com/amigos/backend/internal/middleware"
	"github.com/amigos/backend/internal/models"
	"github.com/amigos/backend/internal/services"
)

// Handlers bundles the endpoint handlers for router construction.
type Handlers struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Profiles  *ProfileHandler
	Posts     *PostHandler
	Provinces *ProvinceHandler
	Pets      *PetHandler
	Images    *ImageHandler
}

// NewRouter builds the full route tree. Everything under /v1 except
// register and login requires a bearer token; user administration and
// province writes additionally require the admin permission.
func NewRouter(jwtSecret string, users services.UserService, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.JWTAuth(jwtSecret))

			r.Route("/users", func(r chi.Router) {
				r.Get("/current", h.Users.GetCurrent)
				r.Put("/current/password", h.Users.ChangePassword)

				r.Route("/{userId}", func(r chi.Router) {
					r.Post("/follow", h.Users.Follow)
					r.Delete("/follow", h.Users.Unfollow)

					// Administration
					r.Group(func(r chi.Router) {
						r.Use(appMiddleware.RequirePermission(users, models.PermissionAdmin))
						r.Post("/permissions", h.Users.Grant)
						r.Delete("/permissions", h.Users.Revoke)
						r.Post("/enable", h.Users.Enable)
						r.Post("/disable", h.Users.Disable)
					})
				})
			})

			r.Route("/profiles", func(r chi.Router) {
				r.Get("/current", h.Profiles.GetCurrent)
				r.Put("/current", h.Profiles.Update)
				r.Get("/following", h.Profiles.GetFollowing)
				r.Get("/search", h.Profiles.Search)
				r.Get("/{profileId}", h.Profiles.GetByID)
			})

			r.Route("/posts", func(r chi.Router) {
				r.Post("/", h.Posts.Publish)
				r.Get("/mine", h.Posts.Mine)
				r.Get("/feed", h.Posts.Feed)
				r.Get("/popular", h.Posts.Popular)

				r.Route("/{postId}", func(r chi.Router) {
					r.Get("/", h.Posts.GetByID)
					r.Put("/", h.Posts.Update)
					r.Delete("/", h.Posts.Delete)
					r.Post("/like", h.Posts.Like)
					r.Post("/dislike", h.Posts.Dislike)
				})
			})

			r.Route("/provinces", func(r chi.Router) {
				r.Get("/", h.Provinces.List)
				r.Get("/{provinceId}", h.Provinces.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(appMiddleware.RequirePermission(users, models.PermissionAdmin))
					r.Post("/", h.Provinces.Create)
					r.Put("/{provinceId}", h.Provinces.Update)
					r.Delete("/{provinceId}", h.Provinces.Delete)
				})
			})

			r.Route("/pets", func(r chi.Router) {
				r.Get("/", h.Pets.List)
				r.Post("/", h.Pets.Create)
				r.Get("/{petId}", h.Pets.GetByID)
				r.Put("/{petId}", h.Pets.Update)
				r.Delete("/{petId}", h.Pets.Delete)
			})

			r.Post("/images", h.Images.Store)
			r.Get("/images/{imageId}", h.Images.Fetch)
		})
	})

	return r
}

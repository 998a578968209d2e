package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/amigos/backend/internal/config"
	"github.com/amigos/backend/internal/handlers"
	"github.com/amigos/backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using environment variables and defaults")
	}
	cfg := config.Load()

	ctx := context.Background()

	var (
		userService     services.UserService
		profileService  services.ProfileService
		postService     services.PostService
		provinceService services.ProvinceService
		petService      services.PetService
		imageService    services.ImageService
	)

	if cfg.MongoURI != "" {
		images, err := services.NewMongoImageService(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Fatalf("Failed to connect images store: %v", err)
		}
		provinces, err := services.NewMongoProvinceService(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Fatalf("Failed to connect provinces store: %v", err)
		}
		users, err := services.NewMongoUserService(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Fatalf("Failed to connect users store: %v", err)
		}
		profiles, err := services.NewMongoProfileService(ctx, cfg.MongoURI, cfg.MongoDatabase, users, provinces, images)
		if err != nil {
			log.Fatalf("Failed to connect profiles store: %v", err)
		}
		posts, err := services.NewMongoPostService(ctx, cfg.MongoURI, cfg.MongoDatabase, users, images)
		if err != nil {
			log.Fatalf("Failed to connect posts store: %v", err)
		}
		pets, err := services.NewMongoPetService(ctx, cfg.MongoURI, cfg.MongoDatabase, images)
		if err != nil {
			log.Fatalf("Failed to connect pets store: %v", err)
		}
		imageService, provinceService, userService = images, provinces, users
		profileService, postService, petService = profiles, posts, pets
	} else {
		log.Println("MONGODB_URI not set; using in-memory storage")
		images := services.NewMemoryImageService()
		provinces := services.NewMemoryProvinceService()
		users := services.NewMemoryUserService()
		imageService, provinceService, userService = images, provinces, users
		profileService = services.NewMemoryProfileService(users, provinces, images)
		postService = services.NewMemoryPostService(users, images)
		petService = services.NewMemoryPetService(images)
	}

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiration)

	router := handlers.NewRouter(cfg.JWTSecret, userService, handlers.Handlers{
		Auth:      handlers.NewAuthHandler(userService, profileService, tokenService),
		Users:     handlers.NewUserHandler(userService, profileService),
		Profiles:  handlers.NewProfileHandler(profileService, userService),
		Posts:     handlers.NewPostHandler(postService),
		Provinces: handlers.NewProvinceHandler(provinceService),
		Pets:      handlers.NewPetHandler(petService),
		Images:    handlers.NewImageHandler(imageService),
	})

	log.Printf("Amigos API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

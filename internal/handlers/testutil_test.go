package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/amigos/backend/internal/models"
	"github.com/amigos/backend/internal/services"
)

const testJWTSecret = "test-secret-key"

// newTestRouter wires the full route tree over in-memory services.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	users := services.NewMemoryUserService()
	provinces := services.NewMemoryProvinceService()
	images := services.NewMemoryImageService()
	profiles := services.NewMemoryProfileService(users, provinces, images)
	posts := services.NewMemoryPostService(users, images)
	pets := services.NewMemoryPetService(images)
	tokens := services.NewTokenService(testJWTSecret, time.Hour)

	return NewRouter(testJWTSecret, users, Handlers{
		Auth:      NewAuthHandler(users, profiles, tokens),
		Users:     NewUserHandler(users, profiles),
		Profiles:  NewProfileHandler(profiles, users),
		Posts:     NewPostHandler(posts),
		Provinces: NewProvinceHandler(provinces),
		Pets:      NewPetHandler(pets),
		Images:    NewImageHandler(images),
	})
}

type envelope struct {
	Success  bool                  `json:"success"`
	Data     json.RawMessage       `json:"data"`
	Error    string                `json:"error"`
	Messages []models.FieldMessage `json:"messages"`
}

func doRequest(t *testing.T, router *chi.Mux, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// registerUser registers through the API and returns the bearer token and
// the created user.
func registerUser(t *testing.T, router *chi.Mux, name, login, password string) (string, models.User) {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/v1/auth/register", "", models.RegisterRequest{
		Name:     name,
		Login:    login,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	var auth models.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(t, auth.Token)
	return auth.Token, auth.User
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galleria/api/internal/config"
	"galleria/api/internal/models"
	"galleria/api/internal/repository"
	"galleria/api/internal/service"
)

type memOwnerRepo struct {
	mu     sync.Mutex
	owners map[string]models.Owner
}

func (f *memOwnerRepo) Create(_ context.Context, owner models.Owner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.owners {
		if existing.Email == owner.Email {
			return repository.ErrEmailTaken
		}
	}
	f.owners[owner.ID] = owner
	return nil
}

func (f *memOwnerRepo) FindByEmail(_ context.Context, email string) (models.Owner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, owner := range f.owners {
		if owner.Email == email {
			return owner, nil
		}
	}
	return models.Owner{}, repository.ErrOwnerNotFound
}

func (f *memOwnerRepo) GetByID(_ context.Context, id string) (models.Owner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.owners[id]
	if !ok {
		return models.Owner{}, repository.ErrOwnerNotFound
	}
	return owner, nil
}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		Security: config.SecurityConfig{JWTSecret: "test-secret", JWTTTL: time.Hour},
	}
	owners := &memOwnerRepo{owners: make(map[string]models.Owner)}
	h := HandlerSet{
		log:         zerolog.Nop(),
		cfg:         cfg,
		authService: service.NewAuthService(owners, cfg, zerolog.Nop()),
	}

	r := gin.New()
	r.POST("/auth/register", h.RegisterOwner)
	r.POST("/auth/login", h.Login)
	return r
}

func postJSON(router *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterAndLoginEndpoints(t *testing.T) {
	router := newAuthRouter(t)

	rec := postJSON(router, "/auth/register",
		`{"email":"a@b.io","password":"Sunny","passwordConfirm":"Sunny"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "a@b.io", registered.User.Email)

	rec = postJSON(router, "/auth/login", `{"email":"a@b.io","password":"Sunny"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(router, "/auth/login", `{"email":"a@b.io","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterEndpointErrors(t *testing.T) {
	router := newAuthRouter(t)

	// Missing binding-required field.
	rec := postJSON(router, "/auth/register", `{"email":"a@b.io","password":"Sunny"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Domain validation.
	rec = postJSON(router, "/auth/register",
		`{"email":"a@b.io","password":"sunny","passwordConfirm":"sunny"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Duplicate email maps to conflict.
	rec = postJSON(router, "/auth/register",
		`{"email":"a@b.io","password":"Sunny","passwordConfirm":"Sunny"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = postJSON(router, "/auth/register",
		`{"email":"a@b.io","password":"Sunny","passwordConfirm":"Sunny"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

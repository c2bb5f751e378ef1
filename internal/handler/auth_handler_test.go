package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"letter_system/internal/model"
	"letter_system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password, role string) (*model.User, error)
	loginFn    func(ctx context.Context, username, password string) (*model.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password, role string) (*model.User, error) {
	return s.registerFn(ctx, username, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	return s.loginFn(ctx, username, password)
}

func newAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAuthHandler(svc).RegisterAuthRoutes(router.Group("/api"))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, username, password, role string) (*model.User, error) {
			assert.Equal(t, "alice", username)
			assert.Equal(t, "pw123", password)
			return &model.User{ID: 1, Username: username, Role: role}, nil
		},
	}
	router := newAuthRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/api/register", `{"username":"alice","password":"pw123","role":"admin"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"username":"alice","role":"admin","message":"User registered successfully"}`, w.Body.String())
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*model.User, error) {
			t.Fatal("service must not be called for an invalid body")
			return nil, nil
		},
	}
	router := newAuthRouter(svc)

	for _, body := range []string{
		`{}`,
		`{"username":"alice"}`,
		`{"username":"alice","password":"pw123"}`,
		`{"password":"pw123","role":"admin"}`,
	} {
		w := doJSON(t, router, http.MethodPost, "/api/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestAuthHandler_Register_InvalidRole(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*model.User, error) {
			return nil, service.ErrInvalidRole
		},
	}
	router := newAuthRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/api/register", `{"username":"alice","password":"pw123","role":"superuser"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Register_StoreError(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*model.User, error) {
			return nil, errors.New("duplicate key value violates unique constraint")
		},
	}
	router := newAuthRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/api/register", `{"username":"alice","password":"pw123","role":"admin"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Database insert error"}`, w.Body.String())
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*model.User, error) {
			require.Equal(t, "alice", username)
			require.Equal(t, "pw123", password)
			return &model.User{ID: 1, Username: "alice", Role: model.RoleAdmin}, nil
		},
	}
	router := newAuthRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/api/login", `{"username":"alice","password":"pw123"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"username":"alice","role":"admin","message":"Login successful"}`, w.Body.String())
}

func TestAuthHandler_Login_IdenticalErrorPayloads(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, username, _ string) (*model.User, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	router := newAuthRouter(svc)

	// Unknown user and wrong password produce byte-identical responses.
	unknown := doJSON(t, router, http.MethodPost, "/api/login", `{"username":"nobody","password":"pw123"}`)
	wrongPw := doJSON(t, router, http.MethodPost, "/api/login", `{"username":"alice","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, unknown.Body.String(), wrongPw.Body.String())
	assert.JSONEq(t, `{"error":"invalid username or password"}`, unknown.Body.String())
}

func TestAuthHandler_Login_StoreError(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, string, string) (*model.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	router := newAuthRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/api/login", `{"username":"alice","password":"pw123"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Database error"}`, w.Body.String())
}

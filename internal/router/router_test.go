package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"expertap/internal/domain"
	"expertap/internal/handler"
	"expertap/internal/router"
	"expertap/internal/service"
	"expertap/mocks"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter() (*gin.Engine, *mocks.MockAuthService, *mocks.MockDecisionService) {
	authSvc := new(mocks.MockAuthService)
	decisionSvc := new(mocks.MockDecisionService)
	r := router.Setup(
		zap.NewNop(),
		authSvc,
		handler.NewDecisionHandler(decisionSvc, 0),
		handler.NewHealthHandler(okPinger{}),
		[]string{"http://localhost:3000"},
	)
	return r, authSvc, decisionSvc
}

func serve(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, http.NoBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	r, _, _ := setupRouter()

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/readyz", "").Code)

	w := serve(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRouter_PublicReads(t *testing.T) {
	r, _, decisionSvc := setupRouter()
	decisionSvc.On("List", mock.Anything, domain.DecisionFilter{}, 0, 20).Return([]domain.Decision{}, 0, nil)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/decisions", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/criticism-codes", "").Code)
}

func TestRouter_WritesRequireAdmin(t *testing.T) {
	r, authSvc, decisionSvc := setupRouter()
	id := uuid.New()

	authSvc.On("ValidateToken", "viewer-token").Return(&service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "reader"},
		Role:             domain.RoleViewer,
	}, nil)
	authSvc.On("ValidateToken", "admin-token").Return(&service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ops"},
		Role:             domain.RoleAdmin,
	}, nil)
	decisionSvc.On("Delete", mock.Anything, id).Return(nil)

	path := "/api/v1/decisions/" + id.String()
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodDelete, path, "viewer-token").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodDelete, path, "admin-token").Code)
	decisionSvc.AssertNumberOfCalls(t, "Delete", 1)
}

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	memoryRepo "agendamento/database/repository/memory"
	"agendamento/handlers"
	"agendamento/services/booking"
	"agendamento/services/company"
	"agendamento/services/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type noTokens struct{}

func (noTokens) VerifyToken(string) (string, error) { return "", assert.AnError }

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := memoryRepo.NewMemoryStore()
	hb := handlers.NewHandlerBundle(
		noTokens{},
		handlers.NewHealthHandler(store, nil, 0),
		handlers.NewUserHandler(&user.DefaultUserService{Repo: store, Logger: zap.NewNop()}),
		handlers.NewCompanyHandler(&company.DefaultCompanyService{Repo: store, Logger: zap.NewNop()}),
		handlers.NewBookingHandler(&booking.DefaultBookingService{Store: store, Logger: zap.NewNop()}),
	)
	r := gin.New()
	RegisterRoutes(r, hb)
	return r
}

func TestRegisterRoutes(t *testing.T) {
	r := newRouter()

	got := map[string]bool{}
	for _, route := range r.Routes() {
		got[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /",
		"GET /health",
		"GET /metrics",
		"POST /register",
		"POST /login",
		"GET /perfil",
		"PUT /perfil",
		"POST /empresas",
		"POST /empresas/:id/servicos",
		"GET /empresas/:id/servicos",
		"POST /agendar",
		"GET /agendamentos/:userID",
	} {
		assert.True(t, got[want], "missing route %s", want)
	}
}

func TestPublicEndpoints(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "API rodando...", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newRouter()

	for _, path := range []string{"/perfil", "/empresas"} {
		method := http.MethodGet
		if path == "/empresas" {
			method = http.MethodPost
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer whatever")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCORS(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodOptions, "/agendar", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

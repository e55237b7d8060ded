package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agendamento/database/repository"
	memoryRepo "agendamento/database/repository/memory"
	"agendamento/middleware"
	"agendamento/services/booking"
	"agendamento/services/company"
	"agendamento/services/identity"
	"agendamento/services/user"
	"agendamento/utils"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const svc1 = "11111111-1111-1111-1111-111111111111"

func init() {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
}

// failingStore rejects every write to one table.
type failingStore struct {
	*memoryRepo.MemoryStore
	table string
}

func (f *failingStore) Insert(ctx context.Context, table string, rows []repository.Row) ([]repository.Row, error) {
	if table == f.table {
		return nil, errors.New("connection refused")
	}
	return f.MemoryStore.Insert(ctx, table, rows)
}

type stubIdentity struct {
	signUpID string
	err      error
}

func (s *stubIdentity) SignUp(ctx context.Context, email, password string) (string, error) {
	return s.signUpID, s.err
}

func (s *stubIdentity) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &identity.Session{AccessToken: "token-1", TokenType: "bearer", User: identity.AccountInfo{ID: s.signUpID, Email: email}}, nil
}

// VerifyToken accepts "token-<userID>".
func (s *stubIdentity) VerifyToken(token string) (string, error) {
	if len(token) > 6 && token[:6] == "token-" {
		return token[6:], nil
	}
	return "", errors.New("invalid token")
}

type testServer struct {
	router *gin.Engine
	store  repository.RecordStore
	mem    *memoryRepo.MemoryStore
}

func newTestServer(t *testing.T, store repository.RecordStore, idp *stubIdentity) *testServer {
	t.Helper()
	mem := memoryRepo.NewMemoryStore()
	if store == nil {
		store = mem
	}
	if idp == nil {
		idp = &stubIdentity{signUpID: "user-1"}
	}
	now := func() time.Time { return time.Date(2024, 4, 20, 12, 0, 0, 0, time.UTC) }

	bookings := NewBookingHandler(&booking.DefaultBookingService{Store: store, Logger: zap.NewNop(), Now: now})
	users := NewUserHandler(&user.DefaultUserService{Repo: store, Identity: idp, Logger: zap.NewNop(), Now: now})
	companies := NewCompanyHandler(&company.DefaultCompanyService{Repo: store, Logger: zap.NewNop(), Now: now})

	r := gin.New()
	auth := middleware.JWTAuthUserMiddleware(idp)
	r.POST("/agendar", bookings.CreateAppointmentHandler)
	r.GET("/agendamentos/:userID", bookings.ListAppointmentsHandler)
	r.POST("/register", users.RegisterUserHandler)
	r.POST("/login", users.AuthenticateUserHandler)
	r.GET("/perfil", auth, users.GetProfileHandler)
	r.PUT("/perfil", auth, users.UpdateProfileHandler)
	r.POST("/empresas", auth, companies.RegisterCompanyHandler)
	r.POST("/empresas/:id/servicos", auth, companies.AddServiceHandler)
	r.GET("/empresas/:id/servicos", companies.ListServicesHandler)
	return &testServer{router: r, store: store, mem: mem}
}

func (s *testServer) do(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestCreateAppointment_Created(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w, body := s.do(t, http.MethodPost, "/agendar",
		`{"user_id":"u1","company_id":"e1","date":"2024-05-01","time":"10:00","services":["`+svc1+`"],"name":"Ana"}`, "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, msgBookingCreated, body["message"])
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, 1, s.mem.Count(repository.TableAppointments))
	assert.Equal(t, 1, s.mem.Count(repository.TableAppointmentServices))
}

func TestCreateAppointment_BadRequests(t *testing.T) {
	cases := map[string]struct {
		body    string
		message string
		appts   int
	}{
		"missing user": {
			body:    `{"company_id":"e1","date":"2024-05-01","time":"10:00","services":["` + svc1 + `"]}`,
			message: "missing required fields: user_id",
		},
		"services not a list": {
			body:    `{"user_id":"u1","company_id":"e1","date":"2024-05-01","time":"10:00","services":"` + svc1 + `"}`,
			message: "missing required fields: services",
		},
		"empty services": {
			body:    `{"user_id":"u1","company_id":"e1","date":"2024-05-01","time":"10:00","services":[]}`,
			message: "missing required fields: services",
		},
		"only malformed services": {
			body:    `{"user_id":"u1","company_id":"e1","date":"2024-05-01","time":"10:00","services":["not-a-uuid"]}`,
			message: "no valid service identifiers",
			appts:   1,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, nil, nil)

			w, body := s.do(t, http.MethodPost, "/agendar", tc.body, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, body["error"])
			assert.Equal(t, tc.appts, s.mem.Count(repository.TableAppointments))
			assert.Equal(t, 0, s.mem.Count(repository.TableAppointmentServices))
		})
	}
}

func TestCreateAppointment_MalformedJSON(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w, body := s.do(t, http.MethodPost, "/agendar", `{"user_id":`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "Invalid request")
}

func TestCreateAppointment_PersistenceFailureHidesDetails(t *testing.T) {
	for _, table := range []string{repository.TableAppointments, repository.TableAppointmentServices} {
		t.Run(table, func(t *testing.T) {
			s := newTestServer(t, &failingStore{MemoryStore: memoryRepo.NewMemoryStore(), table: table}, nil)

			w, body := s.do(t, http.MethodPost, "/agendar",
				`{"user_id":"u1","company_id":"e1","date":"2024-05-01","time":"10:00","services":["`+svc1+`"]}`, "")

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, msgBookingFailed, body["error"])
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestListAppointments(t *testing.T) {
	s := newTestServer(t, nil, nil)
	w, _ := s.do(t, http.MethodPost, "/agendar",
		`{"user_id":"u1","company_id":"e1","date":"2024-05-01","time":"10:00","services":["`+svc1+`"]}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/agendamentos/u1", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var views []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "pending", views[0]["status"])
	assert.Equal(t, []interface{}{svc1}, views[0]["services"])
}

func TestRegisterUser(t *testing.T) {
	s := newTestServer(t, nil, nil)
	payload := `{"email":"ana@example.com","password":"secret","name":"Ana","phone":"11999999999"}`

	w, body := s.do(t, http.MethodPost, "/register", payload, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, msgUserRegistered, body["message"])

	w, body = s.do(t, http.MethodPost, "/register", payload, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, user.ErrUserExists.Error(), body["error"])
}

func TestRegisterUser_Errors(t *testing.T) {
	payload := `{"email":"ana@example.com","password":"secret","name":"Ana"}`

	s := newTestServer(t, nil, &stubIdentity{err: &identity.Error{Status: 422, Message: "User already registered"}})
	w, body := s.do(t, http.MethodPost, "/register", payload, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already registered", body["error"])

	s = newTestServer(t, nil, &stubIdentity{})
	w, body = s.do(t, http.MethodPost, "/register", payload, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Erro ao obter ID do usuário.", body["error"])

	s = newTestServer(t, &failingStore{MemoryStore: memoryRepo.NewMemoryStore(), table: repository.TableUsers}, nil)
	w, _ = s.do(t, http.MethodPost, "/register", payload, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, nil, nil)
	w, body := s.do(t, http.MethodPost, "/login", `{"email":"ana@example.com","password":"secret"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token-1", body["access_token"])

	s = newTestServer(t, nil, &stubIdentity{err: &identity.Error{Status: 400, Message: "Invalid login credentials"}})
	w, body = s.do(t, http.MethodPost, "/login", `{"email":"ana@example.com","password":"bad"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid login credentials", body["error"])
}

func TestProfile(t *testing.T) {
	s := newTestServer(t, nil, nil)
	w, _ := s.do(t, http.MethodPost, "/register", `{"email":"ana@example.com","password":"secret","name":"Ana"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = s.do(t, http.MethodGet, "/perfil", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := s.do(t, http.MethodGet, "/perfil", "", "token-user-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ana", body["name"])

	w, body = s.do(t, http.MethodPut, "/perfil", `{"phone":"11888888888"}`, "token-user-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "11888888888", body["phone"])

	w, _ = s.do(t, http.MethodGet, "/perfil", "", "token-someone-else")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompanyFlow(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w, body := s.do(t, http.MethodPost, "/empresas", `{"name":"Salão"}`, "token-owner")
	require.Equal(t, http.StatusCreated, w.Code)
	companyID, _ := body["id"].(string)
	require.NotEmpty(t, companyID)

	w, _ = s.do(t, http.MethodPost, "/empresas", `{"name":"Salão"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodPost, "/empresas/"+companyID+"/servicos", `{"name":"Corte","price":50}`, "token-intruder")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPost, "/empresas/"+companyID+"/servicos", `{"price":50}`, "token-owner")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/empresas/"+companyID+"/servicos", `{"name":"Corte","price":50}`, "token-owner")
	assert.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/empresas/"+companyID+"/servicos", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var services []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &services))
	require.Len(t, services, 1)
	assert.Equal(t, "Corte", services[0]["name"])

	w, _ = s.do(t, http.MethodGet, "/empresas/missing/servicos", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package identity

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agendamento/utils/supabase"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, h http.HandlerFunc) *SupabaseProvider {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &SupabaseProvider{
		Client:    supabase.NewClient(srv.URL, "anon", time.Second),
		JWTSecret: []byte("test-secret"),
	}
}

func TestSignUp_ReturnsUserID(t *testing.T) {
	bodies := map[string]string{
		"session": `{"access_token":"t","user":{"id":"user-1","email":"a@b.com"}}`,
		"bare":    `{"id":"user-1","email":"a@b.com"}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/v1/signup", r.URL.Path)
				raw, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, `{"email":"a@b.com","password":"secret"}`, string(raw))
				_, _ = w.Write([]byte(body))
			})

			id, err := p.SignUp(context.Background(), "a@b.com", "secret")
			require.NoError(t, err)
			assert.Equal(t, "user-1", id)
		})
	}
}

func TestSignUp_RejectionIsIdentityError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"code":422,"msg":"User already registered"}`))
	})

	_, err := p.SignUp(context.Background(), "a@b.com", "secret")

	var idErr *Error
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, "User already registered", idErr.Message)
}

func TestSignIn(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600,"refresh_token":"r","user":{"id":"user-1"}}`))
	})

	s, err := p.SignIn(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok", s.AccessToken)
	assert.Equal(t, "user-1", s.User.ID)
}

func TestSignIn_ServerErrorIsNotIdentityError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := p.SignIn(context.Background(), "a@b.com", "secret")

	var idErr *Error
	require.Error(t, err)
	assert.False(t, errors.As(err, &idErr))
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestVerifyToken(t *testing.T) {
	p := &SupabaseProvider{JWTSecret: []byte("test-secret")}
	exp := time.Now().Add(time.Hour).Unix()

	sub, err := p.VerifyToken(signed(t, "test-secret", jwt.MapClaims{"sub": "user-1", "exp": exp}))
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)

	_, err = p.VerifyToken(signed(t, "other", jwt.MapClaims{"sub": "user-1", "exp": exp}))
	assert.Error(t, err)

	_, err = p.VerifyToken(signed(t, "test-secret", jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(-time.Minute).Unix()}))
	assert.Error(t, err)

	_, err = p.VerifyToken(signed(t, "test-secret", jwt.MapClaims{"exp": exp}))
	assert.Error(t, err)

	_, err = (&SupabaseProvider{}).VerifyToken("x")
	assert.ErrorIs(t, err, ErrTokenVerificationDisabled)
}

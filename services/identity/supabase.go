package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"agendamento/utils/supabase"

	"github.com/golang-jwt/jwt"
)

var ErrTokenVerificationDisabled = errors.New("token verification is not configured")

// SupabaseProvider implements Provider against the platform's GoTrue API.
type SupabaseProvider struct {
	Client    *supabase.Client
	JWTSecret []byte
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp creates the account and returns the platform's user id.
// With e-mail confirmation on, GoTrue answers with the bare user; otherwise with a session.
func (p *SupabaseProvider) SignUp(ctx context.Context, email, password string) (string, error) {
	var out struct {
		ID   string       `json:"id"`
		User *AccountInfo `json:"user"`
	}
	_, err := p.Client.Do(ctx, supabase.Request{
		Method: http.MethodPost,
		Path:   "/auth/v1/signup",
		Body:   credentials{Email: email, Password: password},
	}, &out)
	if err != nil {
		return "", translate(err)
	}
	if out.User != nil && out.User.ID != "" {
		return out.User.ID, nil
	}
	return out.ID, nil
}

func (p *SupabaseProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	_, err := p.Client.Do(ctx, supabase.Request{
		Method: http.MethodPost,
		Path:   "/auth/v1/token",
		Query:  url.Values{"grant_type": {"password"}},
		Body:   credentials{Email: email, Password: password},
	}, &session)
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

// VerifyToken checks an access token issued by the platform and returns its subject.
func (p *SupabaseProvider) VerifyToken(tokenString string) (string, error) {
	if len(p.JWTSecret) == 0 {
		return "", ErrTokenVerificationDisabled
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.JWTSecret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}

func translate(err error) error {
	var apiErr *supabase.APIError
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
		return &Error{Status: apiErr.Status, Message: apiErr.Message}
	}
	return err
}

package identity

import "context"

// Provider delegates identity to the hosted platform. It never stores credentials itself.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	VerifyToken(token string) (string, error)
}

// Session is what the platform returns on a successful sign-in.
type Session struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at,omitempty"`
	RefreshToken string      `json:"refresh_token"`
	User         AccountInfo `json:"user"`
}

type AccountInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Error is a rejection by the identity provider (bad credentials, duplicate e-mail, ...).
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

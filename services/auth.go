package services

import (
	"context"
	"net/http"
	"time"

	tradebridge "github.com/quantfold/trade-bridge"
)

// AuthService covers registration, login and session lifecycle. The
// backend keeps both tokens in httpOnly cookies, so none of these
// calls return token material; the client's cookie jar carries it.
type AuthService struct {
	t Transport
}

// User is the public view of an account.
type User struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// UserDetails is the admin view, with identity and audit timestamps.
type UserDetails struct {
	User
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	LastLogin time.Time `json:"lastLogin"`
}

// RegisterParams create a new account.
type RegisterParams struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*User, error) {
	return doJSON[User](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodPost,
		Endpoint: "/auth/register",
		Body:     params,
	})
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*User, error) {
	return doJSON[User](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodPost,
		Endpoint: "/auth/login",
		Body: map[string]string{
			"email":    email,
			"password": password,
		},
	})
}

func (s *AuthService) Logout(ctx context.Context) error {
	return doEmpty(ctx, s.t, &tradebridge.Request{
		Method:   http.MethodPost,
		Endpoint: "/auth/logout",
	})
}

// Me returns the user owning the current session.
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	return doJSON[User](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodGet,
		Endpoint: "/auth/me",
	})
}

type sessionRefresher interface {
	RefreshSession(ctx context.Context) error
}

// RefreshToken exchanges the refresh-token cookie for a fresh access
// token. When the transport is a *tradebridge.Client the call joins
// the client's shared refresh flight instead of issuing its own.
func (s *AuthService) RefreshToken(ctx context.Context) error {
	if r, ok := s.t.(sessionRefresher); ok {
		return r.RefreshSession(ctx)
	}
	return doEmpty(ctx, s.t, &tradebridge.Request{
		Method:   http.MethodPost,
		Endpoint: "/auth/token",
	})
}

// SendPasswordReset emails a reset link to the given address.
func (s *AuthService) SendPasswordReset(ctx context.Context, email string) error {
	return doEmpty(ctx, s.t, &tradebridge.Request{
		Method:   http.MethodPost,
		Endpoint: "/auth/reset-password",
		Body:     map[string]string{"email": email},
	})
}

// ValidatePasswordResetToken confirms a reset token and, on success,
// leaves a logged-in session in the cookie jar.
func (s *AuthService) ValidatePasswordResetToken(ctx context.Context, token string) error {
	return doEmpty(ctx, s.t, &tradebridge.Request{
		Method:   http.MethodPost,
		Endpoint: "/auth/validate-password-reset-token",
		Body:     map[string]string{"token": token},
	})
}

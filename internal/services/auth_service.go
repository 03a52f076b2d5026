package services

import (
	"errors"

	"shoppanel/internal/domain"
	"shoppanel/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds = errors.New("invalid email or password")
	// ErrNotAdmin marks credentials that are valid but carry no panel
	// access. Callers present it exactly like ErrBadCreds; it exists so
	// the audit log can tell the two apart.
	ErrNotAdmin = errors.New("account has no panel access")
)

// AuthService signs operators into the admin panel. The panel has no
// customer-facing surface, so only ADMIN accounts may hold a session;
// any other account is rejected at sign-in, not at the route guard.
type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) SignIn(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if !u.IsAdmin() {
		return nil, ErrNotAdmin
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) SignOut(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

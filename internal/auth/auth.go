// ABOUTME: Local user registry with a trusted-identity sign-in.
// ABOUTME: No credentials are stored; the caller is trusted to be who the email says.
package auth

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/harperreed/treino/internal/models"
	"github.com/harperreed/treino/internal/storage"
)

var (
	ErrDuplicateEmail       = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrValidationFailed     = errors.New("user validation failed")
	ErrNotSignedIn          = errors.New("not signed in")
)

// Identity is the trusted caller identity attached to comments and owned records.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

// IsZero reports whether no one is signed in.
func (i Identity) IsZero() bool {
	return i.UserID == ""
}

// IdentityFor returns the identity of a user.
func IdentityFor(u *models.User) Identity {
	if u == nil {
		return Identity{}
	}
	return Identity{UserID: u.ID.String(), Name: u.Username, Email: u.Email}
}

// Provider supplies the current identity.
type Provider interface {
	Identity() (Identity, error)
}

// Static is a Provider that always returns the same identity.
type Static Identity

// Identity returns the fixed identity.
func (s Static) Identity() (Identity, error) {
	return Identity(s), nil
}

// Service manages the user registry and the signed-in user.
type Service struct {
	repo storage.Repository
}

// NewService creates a user service over the repository.
func NewService(repo storage.Repository) *Service {
	return &Service{repo: repo}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and signs them in.
func (s *Service) Register(username, email string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidationFailed)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email %q", ErrValidationFailed, email)
	}

	users, err := s.repo.Users()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		if normalizeEmail(u.Email) == email {
			return nil, ErrDuplicateEmail
		}
	}

	u := models.NewUser(username, email)
	users = append(users, *u)
	if err := s.repo.SaveUsers(users); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}
	if err := s.repo.SaveCurrentUser(u); err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return u, nil
}

// SignIn signs in the user registered under email.
// Unknown accounts return the generic ErrAuthenticationFailed.
func (s *Service) SignIn(email string) (*models.User, error) {
	email = normalizeEmail(email)
	users, err := s.repo.Users()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for i := range users {
		if normalizeEmail(users[i].Email) == email {
			u := users[i]
			if err := s.repo.SaveCurrentUser(&u); err != nil {
				return nil, fmt.Errorf("sign in: %w", err)
			}
			return &u, nil
		}
	}
	return nil, ErrAuthenticationFailed
}

// SignOut clears the signed-in user.
func (s *Service) SignOut() error {
	return s.repo.ClearCurrentUser()
}

// Current returns the signed-in user.
func (s *Service) Current() (*models.User, error) {
	u, err := s.repo.CurrentUser()
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotSignedIn
	}
	return u, nil
}

// Identity implements Provider for the signed-in user.
// A signed-out caller gets a zero Identity and no error.
func (s *Service) Identity() (Identity, error) {
	u, err := s.repo.CurrentUser()
	if err != nil {
		return Identity{}, err
	}
	return IdentityFor(u), nil
}

// Update writes a changed user to both the registry and the signed-in record.
func (s *Service) Update(u *models.User) error {
	users, err := s.repo.Users()
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	found := false
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = *u
			found = true
			break
		}
	}
	if !found {
		users = append(users, *u)
	}
	if err := s.repo.SaveUsers(users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}

	cur, err := s.repo.CurrentUser()
	if err != nil {
		return err
	}
	if cur != nil && cur.ID == u.ID {
		if err := s.repo.SaveCurrentUser(u); err != nil {
			return fmt.Errorf("save current user: %w", err)
		}
	}
	return nil
}

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// emailPattern is the basic local@domain.tld shape accepted at registration.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CredentialVerifier decides whether a presented password matches the stored
// credential. The hashing strategy is an external concern; the directory only
// relies on the match/no-match contract.
type CredentialVerifier interface {
	Verify(stored, presented string) bool
}

// PlainVerifier compares credentials byte for byte in constant time. It is
// the default verifier; deployments with hashed credentials substitute their
// own implementation.
type PlainVerifier struct{}

// Verify implements CredentialVerifier.
func (PlainVerifier) Verify(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

// DirectoryService handles user registration, lookup and authentication.
type DirectoryService struct {
	userRepo    repository.UserRepository
	carpoolRepo repository.CarpoolRepository
	verifier    CredentialVerifier
}

// NewDirectoryService creates a new DirectoryService. A nil verifier falls
// back to plain constant-time comparison.
func NewDirectoryService(
	userRepo repository.UserRepository,
	carpoolRepo repository.CarpoolRepository,
	verifier CredentialVerifier,
) *DirectoryService {
	if verifier == nil {
		verifier = PlainVerifier{}
	}
	return &DirectoryService{
		userRepo:    userRepo,
		carpoolRepo: carpoolRepo,
		verifier:    verifier,
	}
}

// RegisterRequest contains the parameters for registering a user.
type RegisterRequest struct {
	Name     string
	Username string
	Email    string
	Password string
	Phone    string
}

// Register validates the profile and creates a new user with empty ride
// back-references. Username and email must be unique.
func (s *DirectoryService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if req.Username == "" {
		return nil, ErrMissingUsername
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, ErrInvalidEmail
	}

	// Up-front duplicate checks for a friendly error; the unique constraints
	// in the store still catch races.
	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, repository.ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, repository.ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user := &domain.User{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID retrieves a user by ID.
func (s *DirectoryService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// FindByEmail retrieves a user by email.
func (s *DirectoryService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// GetAll retrieves all users.
func (s *DirectoryService) GetAll(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

// Rides retrieves the user's hosted/confirmed/pending ride back-references.
func (s *DirectoryService) Rides(ctx context.Context, userID string) (*domain.UserRides, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.carpoolRepo.GetUserRides(ctx, userID)
}

// Authenticate resolves the user by email and verifies the credential.
func (s *DirectoryService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !s.verifier.Verify(user.Password, password) {
		return nil, ErrInvalidCredential
	}
	return user, nil
}

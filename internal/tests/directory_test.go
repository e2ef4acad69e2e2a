package tests

import (
	"context"
	"errors"
	"testing"

	"carpool/internal/domain"
	"carpool/internal/repository"
	"carpool/internal/service"
)

func newDirectoryFixture() (*MockUserRepository, *MockCarpoolRepository, *service.DirectoryService) {
	users := NewMockUserRepository()
	carpools := NewMockCarpoolRepository()
	directory := service.NewDirectoryService(users, carpools, nil)
	return users, carpools, directory
}

func validRegisterRequest() service.RegisterRequest {
	return service.RegisterRequest{
		Name:     "Dana",
		Username: "dana",
		Email:    "dana@example.com",
		Password: "secret",
	}
}

func TestRegister_ValidProfile_Succeeds(t *testing.T) {
	t.Parallel()

	_, carpools, directory := newDirectoryFixture()

	user, err := directory.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.ID == "" {
		t.Error("expected user ID to be set")
	}
	if user.Username != "dana" {
		t.Errorf("expected username dana, got %s", user.Username)
	}

	rides, err := carpools.GetUserRides(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("rides lookup failed: %v", err)
	}
	if len(rides.Hosted)+len(rides.Confirmed)+len(rides.Pending) != 0 {
		t.Error("expected a new user to have no ride back-references")
	}
}

func TestRegister_InvalidProfiles_Rejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*service.RegisterRequest)
		wantErr error
	}{
		{
			name:    "empty name",
			mutate:  func(r *service.RegisterRequest) { r.Name = "" },
			wantErr: service.ErrMissingName,
		},
		{
			name:    "empty username",
			mutate:  func(r *service.RegisterRequest) { r.Username = "" },
			wantErr: service.ErrMissingUsername,
		},
		{
			name:    "email without at sign",
			mutate:  func(r *service.RegisterRequest) { r.Email = "dana.example.com" },
			wantErr: service.ErrInvalidEmail,
		},
		{
			name:    "email without tld",
			mutate:  func(r *service.RegisterRequest) { r.Email = "dana@example" },
			wantErr: service.ErrInvalidEmail,
		},
		{
			name:    "empty email",
			mutate:  func(r *service.RegisterRequest) { r.Email = "" },
			wantErr: service.ErrInvalidEmail,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, directory := newDirectoryFixture()
			req := validRegisterRequest()
			tc.mutate(&req)

			_, err := directory.Register(context.Background(), req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestRegister_DuplicateEmail_Rejected(t *testing.T) {
	t.Parallel()

	_, _, directory := newDirectoryFixture()

	if _, err := directory.Register(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	second := validRegisterRequest()
	second.Username = "dana2"
	_, err := directory.Register(context.Background(), second)
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got: %v", err)
	}
}

func TestRegister_DuplicateUsername_Rejected(t *testing.T) {
	t.Parallel()

	_, _, directory := newDirectoryFixture()

	if _, err := directory.Register(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	second := validRegisterRequest()
	second.Email = "dana2@example.com"
	_, err := directory.Register(context.Background(), second)
	if !errors.Is(err, repository.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	users, _, directory := newDirectoryFixture()
	users.AddUser(&domain.User{
		ID:       "user-1",
		Name:     "Dana",
		Username: "dana",
		Email:    "dana@example.com",
		Password: "secret",
	})

	t.Run("valid credentials", func(t *testing.T) {
		user, err := directory.Authenticate(context.Background(), "dana@example.com", "secret")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if user.ID != "user-1" {
			t.Errorf("expected user-1, got %s", user.ID)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := directory.Authenticate(context.Background(), "nobody@example.com", "secret")
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := directory.Authenticate(context.Background(), "dana@example.com", "wrong")
		if !errors.Is(err, service.ErrInvalidCredential) {
			t.Errorf("expected ErrInvalidCredential, got: %v", err)
		}
	})
}

func TestFindByID_Missing_NotFound(t *testing.T) {
	t.Parallel()

	_, _, directory := newDirectoryFixture()
	_, err := directory.FindByID(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartoffice/platform/internal/core/domain"
	"github.com/smartoffice/platform/internal/core/security"
)

type stubCredentialStore struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	findErr error
}

func newStubCredentialStore() *stubCredentialStore {
	return &stubCredentialStore{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubCredentialStore) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubCredentialStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

var authTokenConfig = security.TokenConfig{
	Secret:           []byte("0123456789abcdef0123456789abcdef"),
	Issuer:           "identity-service",
	Audience:         "smartoffice",
	TTL:              time.Hour,
	ValidateIssuer:   true,
	ValidateAudience: true,
}

func newTestAuthService(t *testing.T, repo *stubCredentialStore) *AuthService {
	t.Helper()
	issuer, err := security.NewTokenIssuer(authTokenConfig, nil)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	svc, err := NewAuthService(repo, security.NewBcryptHasher(bcrypt.MinCost), issuer, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubCredentialStore()
	svc := newTestAuthService(t, repo)

	user, err := svc.Register(context.Background(), "alice", "pass123", "Member")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleMember {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be set")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(t, newStubCredentialStore())

	cases := []struct {
		name, username, password, role string
	}{
		{"empty username", "", "pass123", "Member"},
		{"short username", "al", "pass123", "Member"},
		{"whitespace username", "al ice", "pass123", "Member"},
		{"short password", "alice", "abc", "Member"},
		{"blank password", "alice", "        ", "Member"},
		{"lowercase role", "alice", "pass123", "admin"},
		{"unknown role", "alice", "pass123", "Owner"},
		{"empty role", "alice", "pass123", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.username, tc.password, tc.role); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubCredentialStore()
	svc := newTestAuthService(t, repo)

	if _, err := svc.Register(context.Background(), "bob", "pass123", "Member"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "other456", "Admin"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one stored user, got %d", len(repo.users))
	}
	if repo.users["bob"].Role != domain.RoleMember {
		t.Fatalf("original record must be untouched")
	}
}

func TestAuthService_Register_ConcurrentDuplicates(t *testing.T) {
	repo := newStubCredentialStore()
	svc := newTestAuthService(t, repo)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), "racer", "pass123", "Member")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, domain.ErrUserExists):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one successful registration, got %d", ok)
	}
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	repo := newStubCredentialStore()
	repo.findErr = domain.ErrStoreUnavailable
	svc := newTestAuthService(t, repo)

	if _, err := svc.Register(context.Background(), "alice", "pass123", "Member"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestAuthService_RegisterThenLogin_RoleRoundTrip(t *testing.T) {
	repo := newStubCredentialStore()
	svc := newTestAuthService(t, repo)
	validator, err := security.NewTokenValidator(authTokenConfig, nil)
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	for _, tc := range []struct {
		username string
		role     domain.Role
	}{{"carol", domain.RoleAdmin}, {"dave", domain.RoleMember}} {
		if _, err := svc.Register(context.Background(), tc.username, "s3cret!", tc.role.String()); err != nil {
			t.Fatalf("register %s failed: %v", tc.username, err)
		}

		res, err := svc.Login(context.Background(), tc.username, "s3cret!")
		if err != nil {
			t.Fatalf("login %s failed: %v", tc.username, err)
		}
		if res.Token == "" {
			t.Fatalf("expected token, got empty")
		}
		if res.Role != tc.role {
			t.Fatalf("expected role %s, got %s", tc.role, res.Role)
		}
		if res.ExpiresAt <= time.Now().Unix() {
			t.Fatalf("expected expiry in the future, got %d", res.ExpiresAt)
		}

		claims, err := validator.Validate(res.Token)
		if err != nil {
			t.Fatalf("token invalid: %v", err)
		}
		if claims.Username != tc.username || claims.Role != tc.role {
			t.Fatalf("unexpected claims: %+v", claims)
		}
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newTestAuthService(t, newStubCredentialStore())

	_, _ = svc.Register(context.Background(), "erin", "goodpass", "Member")
	if _, err := svc.Login(context.Background(), "erin", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserIsIndistinguishable(t *testing.T) {
	svc := newTestAuthService(t, newStubCredentialStore())

	_, errUnknown := svc.Login(context.Background(), "ghost", "pass123")
	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if errors.Is(errUnknown, domain.ErrUserNotFound) {
		t.Fatalf("login must not reveal that the user does not exist")
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := newTestAuthService(t, newStubCredentialStore())
	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

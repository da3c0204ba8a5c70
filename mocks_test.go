package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tradejournal/auth"
)

var (
	testKeyOnce sync.Once
	testRSAKey  *rsa.PrivateKey
)

// testSigningKey returns a process-wide RSA key so test setup stays cheap.
func testSigningKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testRSAKey = key
	})

	return testRSAKey
}

func testKeyMaterial(t *testing.T) *auth.KeyMaterial {
	t.Helper()

	keys, err := auth.NewProviderKeyMaterial(testSigningKey(t), 3600*time.Second, 30*24*time.Hour)
	require.NoError(t, err)

	return keys
}

func testTokenPlumbing(t *testing.T) (*auth.RSATokenService, *auth.RSATokenValidator) {
	t.Helper()

	keys := testKeyMaterial(t)

	service, err := auth.NewTokenService(keys, nil)
	require.NoError(t, err)

	validator, err := auth.NewTokenValidator(keys, nil)
	require.NoError(t, err)

	return service, validator
}

func newTestUser(email string, authorities ...string) *auth.User {
	return &auth.User{
		ID:           uuid.New(),
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        email,
		Authorities:  authorities,
		PasswordHash: "",
	}
}

// recordingLogger captures Warn and Error lines for assertions.
type recordingLogger struct {
	mu     sync.Mutex
	infos  []string
	warns  []string
	errors []string
}

func (l *recordingLogger) Debug(format string, args ...any) {}

func (l *recordingLogger) Info(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprint(append([]any{format}, args...)...))
}

func (l *recordingLogger) Warn(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprint(append([]any{format}, args...)...))
}

func (l *recordingLogger) Error(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprint(append([]any{format}, args...)...))
}

// memVerificationStore is an in-memory VerificationStore keyed on
// (email, type), mirroring the unique index the SQL store relies on.
type memVerificationStore struct {
	mu      sync.Mutex
	records map[string]*auth.Verification

	findErr   error
	saveErr   error
	deleteErr error
}

func newMemVerificationStore() *memVerificationStore {
	return &memVerificationStore{records: map[string]*auth.Verification{}}
}

func storeKey(t auth.VerificationType, email string) string {
	return strings.ToLower(email) + "|" + string(t)
}

func (s *memVerificationStore) FindByTypeAndEmail(_ context.Context, t auth.VerificationType, email string) (*auth.Verification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return nil, s.findErr
	}

	record, ok := s.records[storeKey(t, email)]
	if !ok {
		return nil, goerrors.New("verification not found", goerrors.CategoryNotFound)
	}

	clone := *record
	return &clone, nil
}

func (s *memVerificationStore) FindByHashAndEmail(_ context.Context, hash, email string) (*auth.Verification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return nil, s.findErr
	}

	for _, record := range s.records {
		if record.Hash == hash && strings.EqualFold(record.Email, email) {
			clone := *record
			return &clone, nil
		}
	}

	return nil, goerrors.New("verification not found", goerrors.CategoryNotFound)
}

func (s *memVerificationStore) Save(_ context.Context, record *auth.Verification) (*auth.Verification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return nil, s.saveErr
	}

	clone := *record
	if existing, ok := s.records[storeKey(record.Type, record.Email)]; ok {
		clone.ID = existing.ID
	} else if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}

	s.records[storeKey(record.Type, record.Email)] = &clone

	out := clone
	return &out, nil
}

func (s *memVerificationStore) Delete(_ context.Context, record *auth.Verification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleteErr != nil {
		return s.deleteErr
	}

	delete(s.records, storeKey(record.Type, record.Email))
	return nil
}

func (s *memVerificationStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *memVerificationStore) get(t auth.VerificationType, email string) *auth.Verification {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[storeKey(t, email)]
	if !ok {
		return nil
	}

	clone := *record
	return &clone
}

// memUserDirectory resolves users by email from a fixed set.
type memUserDirectory struct {
	users map[string]*auth.User
}

func newMemUserDirectory(users ...*auth.User) *memUserDirectory {
	d := &memUserDirectory{users: map[string]*auth.User{}}
	for _, u := range users {
		d.users[strings.ToLower(u.Email)] = u
	}
	return d
}

func (d *memUserDirectory) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := d.users[strings.ToLower(email)]
	if !ok {
		return nil, goerrors.New("user not found", goerrors.CategoryNotFound)
	}

	clone := *user
	return &clone, nil
}

// captureMailer records every Send call and can be told to fail.
type captureMailer struct {
	mu      sync.Mutex
	sent    []auth.Email
	sendErr error
}

func (m *captureMailer) Send(_ context.Context, msg auth.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}

	m.sent = append(m.sent, msg)
	return nil
}

func (m *captureMailer) messages() []auth.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]auth.Email(nil), m.sent...)
}

func testSecurityConfig() auth.SecurityConfig {
	return auth.SecurityConfig{
		Mode:            string(auth.ModeProvider),
		PublicKeyPath:   "public.pem",
		PrivateKeyPath:  "private.pem",
		AccessTokenTTL:  3600,
		RefreshTokenTTL: 2592000,
		FrontendURL:     "https://tradejournal.biz/",
	}
}

package auth

import (
	"context"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// VerificationStore is the persistence contract for verification records.
// Save must be atomic on the (email, type) key: two concurrent sends for the
// same pair must collapse into a single live record. Lookup misses surface
// as NotFound errors; everything else propagates unchanged.
type VerificationStore interface {
	FindByTypeAndEmail(ctx context.Context, t VerificationType, email string) (*Verification, error)
	FindByHashAndEmail(ctx context.Context, hash, email string) (*Verification, error)
	Save(ctx context.Context, record *Verification) (*Verification, error)
	Delete(ctx context.Context, record *Verification) error
}

// VerificationFlow orchestrates the send / retrieve / verify lifecycle of
// verification records. Per (email, type) key the state machine is
// `absent -> PENDING -> absent`, with renewal as a PENDING self-loop.
type VerificationFlow struct {
	store  VerificationStore
	users  UserDirectory
	mailer Mailer
	hasher *HashProvider
	cfg    Config
	logger Logger
	now    func() time.Time
}

// NewVerificationFlow wires the workflow with its collaborators.
func NewVerificationFlow(store VerificationStore, users UserDirectory, mailer Mailer, hasher *HashProvider, cfg Config) *VerificationFlow {
	return &VerificationFlow{
		store:  store,
		users:  users,
		mailer: mailer,
		hasher: hasher,
		cfg:    cfg,
		logger: defLogger{},
		now:    time.Now,
	}
}

// WithLogger overrides the logger used by the flow.
func (f *VerificationFlow) WithLogger(logger Logger) *VerificationFlow {
	if logger != nil {
		f.logger = logger
	}
	return f
}

// WithClock overrides the time source. Intended for tests.
func (f *VerificationFlow) WithClock(now func() time.Time) *VerificationFlow {
	if now != nil {
		f.now = now
	}
	return f
}

// Send creates or renews the verification record for (type, user.email) and
// dispatches the notification email. A second send for the same pair never
// creates a duplicate: it overwrites the hash on the existing record, which
// retires any previously emailed link. A dispatch failure is logged but does
// not roll back the persisted record.
func (f *VerificationFlow) Send(ctx context.Context, vtype VerificationType, user *User) (*Verification, error) {
	if !vtype.Valid() {
		return nil, errUnknownVerificationType(vtype)
	}
	if user == nil || strings.TrimSpace(user.Email) == "" {
		return nil, goerrors.New("user with an email is required", goerrors.CategoryBadInput)
	}

	record, err := f.store.FindByTypeAndEmail(ctx, vtype, user.Email)
	if err != nil {
		if !goerrors.IsNotFound(err) {
			return nil, err
		}
		record = &Verification{
			Email:  user.Email,
			Type:   vtype,
			Status: VerificationPending,
		}
	}

	hash, err := f.hasher.GenerateHash(user.Email)
	if err != nil {
		return nil, err
	}

	record.Renew(hash, f.now())

	saved, err := f.store.Save(ctx, record)
	if err != nil {
		return nil, err
	}

	if err := f.dispatch(ctx, saved, user); err != nil {
		// Email delivery has its own retry/failure domain.
		f.logger.Warn(
			"verification email dispatch failed",
			"type", string(saved.Type),
			"email", saved.Email,
			"error", err,
		)
	}

	return saved, nil
}

// Retrieve resolves a hash back to its stored record. The hash must both
// verify cryptographically and match the record's current hash exactly: a
// link superseded by a renewal fails here the same way a fabricated one
// does, deliberately, so callers cannot distinguish the two.
func (f *VerificationFlow) Retrieve(ctx context.Context, hash string) (*Verification, error) {
	email, err := f.hasher.ReadHashValue(hash)
	if err != nil {
		return nil, err
	}

	record, err := f.store.FindByHashAndEmail(ctx, hash, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrInvalidVerification
		}
		return nil, err
	}

	return record, nil
}

// Verify consumes the record by deleting it. Completing an invite type
// cascades into a fresh CHANGE_PASSWORD verification for the same email, so
// invited users must set their own password before first use.
func (f *VerificationFlow) Verify(ctx context.Context, record *Verification) error {
	if record == nil {
		return goerrors.New("verification record is required", goerrors.CategoryBadInput)
	}

	if err := f.store.Delete(ctx, record); err != nil {
		return err
	}

	if !record.Type.Cascades() {
		return nil
	}

	user, err := f.users.GetUserByEmail(ctx, record.Email)
	if err != nil {
		return err
	}

	_, err = f.Send(ctx, VerificationChangePassword, user)
	return err
}

func (f *VerificationFlow) dispatch(ctx context.Context, record *Verification, user *User) error {
	subject, err := record.Type.EmailSubject()
	if err != nil {
		return err
	}

	template, err := record.Type.EmailTemplate()
	if err != nil {
		return err
	}

	link, err := f.confirmationLink(record)
	if err != nil {
		return err
	}

	return f.mailer.Send(ctx, Email{
		Subject:  subject,
		Template: template,
		To:       []string{record.Email},
		Fields: map[string]any{
			"email":      record.Email,
			"first_name": user.FirstName,
			"link":       link,
		},
	})
}

func (f *VerificationFlow) confirmationLink(record *Verification) (string, error) {
	page := f.cfg.GetVerificationPagePath(record.Type)
	if page == "" {
		p, err := record.Type.PagePath()
		if err != nil {
			return "", err
		}
		page = p
	}

	base := strings.TrimSuffix(f.cfg.GetFrontendURL(), "/")
	return base + page + "?token=" + url.QueryEscape(record.Hash), nil
}

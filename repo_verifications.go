package auth

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Verifications is the verification record repository backing the
// VerificationStore contract.
type Verifications interface {
	VerificationStore

	GetByID(ctx context.Context, id string) (*Verification, error)
}

type verifications struct {
	base repository.Repository[*Verification]
	db   *bun.DB
}

var (
	_ Verifications     = (*verifications)(nil)
	_ VerificationStore = (*verifications)(nil)
)

func NewVerificationsRepository(db *bun.DB) Verifications {
	base := repository.NewRepository[*Verification](db, repository.ModelHandlers[*Verification]{
		NewRecord: func() *Verification { return &Verification{} },
		GetID: func(v *Verification) uuid.UUID {
			if v == nil {
				return uuid.Nil
			}
			return v.ID
		},
		SetID: func(v *Verification, id uuid.UUID) {
			if v != nil {
				v.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &verifications{
		base: base,
		db:   db,
	}
}

func (r *verifications) GetByID(ctx context.Context, id string) (*Verification, error) {
	return r.base.GetByID(ctx, id)
}

func (r *verifications) FindByTypeAndEmail(ctx context.Context, t VerificationType, email string) (*Verification, error) {
	record := &Verification{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.type = ?", string(t)).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"type":  string(t),
					"email": email,
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *verifications) FindByHashAndEmail(ctx context.Context, hash, email string) (*Verification, error) {
	record := &Verification{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.hash = ?", hash).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": email,
				})
		}
		return nil, err
	}

	return record, nil
}

// Save upserts on the (email, type) key. The uniqueness constraint plus the
// conflict clause make concurrent sends for the same pair collapse into a
// single row instead of racing into duplicates.
func (r *verifications) Save(ctx context.Context, record *Verification) (*Verification, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	_, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (email, type) DO UPDATE").
		Set("hash = EXCLUDED.hash").
		Set("status = EXCLUDED.status").
		Set("last_change = EXCLUDED.last_change").
		Exec(ctx)

	if err != nil {
		return nil, err
	}

	// Read back the winning row: on conflict the stored ID is the one the
	// first writer created.
	return r.FindByTypeAndEmail(ctx, record.Type, record.Email)
}

func (r *verifications) Delete(ctx context.Context, record *Verification) error {
	_, err := r.db.NewDelete().
		Model((*Verification)(nil)).
		Where("id = ?", record.ID).
		Exec(ctx)

	return err
}

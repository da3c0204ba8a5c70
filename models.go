package auth

import (
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user model. This package reads users only to build claims and
// to drive the verification cascade; account management lives elsewhere.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FirstName     string     `bun:"first_name" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name" json:"last_name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"password_hash,omitempty"`
	Authorities   []string   `bun:"authorities" json:"authorities,omitempty"`
	TenancyID     *uuid.UUID `bun:"tenancy_id,nullzero,type:uuid" json:"tenancy_id,omitempty"`
	TenancyName   string     `bun:"tenancy_name" json:"tenancy_name,omitempty"`
	EmailVerified bool       `bun:"is_email_verified" json:"is_email_verified,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// HasTenancy reports whether the user belongs to a tenancy.
func (u *User) HasTenancy() bool {
	return u.TenancyID != nil && *u.TenancyID != uuid.Nil
}

// VerificationType identifies the out-of-band action a verification gates.
type VerificationType string

const (
	// VerificationRegistration confirms a self-service registration.
	VerificationRegistration VerificationType = "REGISTRATION"
	// VerificationChangePassword confirms a password change request.
	VerificationChangePassword VerificationType = "CHANGE_PASSWORD"
	// VerificationAdminRegistration confirms an admin invite.
	VerificationAdminRegistration VerificationType = "ADMIN_REGISTRATION"
	// VerificationNewOrganisationUser confirms an organisation invite.
	VerificationNewOrganisationUser VerificationType = "NEW_ORGANISATION_USER"
)

// VerificationTypes returns every known type. Dispatch tests iterate this
// list so an unwired type fails the suite rather than production traffic.
func VerificationTypes() []VerificationType {
	return []VerificationType{
		VerificationRegistration,
		VerificationChangePassword,
		VerificationAdminRegistration,
		VerificationNewOrganisationUser,
	}
}

// Valid reports whether t is one of the known verification types.
func (t VerificationType) Valid() bool {
	switch t {
	case VerificationRegistration, VerificationChangePassword,
		VerificationAdminRegistration, VerificationNewOrganisationUser:
		return true
	}
	return false
}

// Cascades reports whether completing a verification of this type must chain
// into a CHANGE_PASSWORD verification. Invited users set their own password
// before first use.
func (t VerificationType) Cascades() bool {
	return t == VerificationAdminRegistration || t == VerificationNewOrganisationUser
}

// PagePath returns the default front-end page for this type. The configured
// per-type page path, when present, takes precedence.
func (t VerificationType) PagePath() (string, error) {
	switch t {
	case VerificationRegistration:
		return "/registration/confirm", nil
	case VerificationChangePassword:
		return "/password/change", nil
	case VerificationAdminRegistration:
		return "/admin-invite/confirm", nil
	case VerificationNewOrganisationUser:
		return "/organisation-invite/confirm", nil
	}
	return "", errUnknownVerificationType(t)
}

// EmailSubject returns the notification subject line for this type.
func (t VerificationType) EmailSubject() (string, error) {
	switch t {
	case VerificationRegistration:
		return "Confirm your registration", nil
	case VerificationChangePassword:
		return "Confirm your password change", nil
	case VerificationAdminRegistration:
		return "You have been invited as an administrator", nil
	case VerificationNewOrganisationUser:
		return "You have been invited to an organisation", nil
	}
	return "", errUnknownVerificationType(t)
}

// EmailTemplate returns the notification template name for this type.
func (t VerificationType) EmailTemplate() (string, error) {
	switch t {
	case VerificationRegistration:
		return "registration-confirm", nil
	case VerificationChangePassword:
		return "change-password-confirm", nil
	case VerificationAdminRegistration:
		return "admin-registration-confirm", nil
	case VerificationNewOrganisationUser:
		return "new-organisation-user-confirm", nil
	}
	return "", errUnknownVerificationType(t)
}

func errUnknownVerificationType(t VerificationType) error {
	return errors.New("unknown verification type", errors.CategoryBadInput).
		WithMetadata(map[string]any{"type": string(t)})
}

// VerificationStatus is the persisted record status. PENDING is the only
// status that is ever stored; records are deleted on completion.
type VerificationStatus string

// VerificationPending marks a record awaiting confirmation.
const VerificationPending VerificationStatus = "PENDING"

// Verification ties an (email, type) pair to the hash that is currently
// valid for it. At most one live record exists per pair; renewal overwrites
// the hash in place, which is what retires previously issued hashes.
type Verification struct {
	bun.BaseModel `bun:"table:verifications,alias:vrf"`
	ID            uuid.UUID          `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string             `bun:"email,notnull" json:"email,omitempty"`
	Type          VerificationType   `bun:"type,notnull" json:"type,omitempty"`
	Status        VerificationStatus `bun:"status,notnull" json:"status,omitempty"`
	Hash          string             `bun:"hash,notnull" json:"hash,omitempty"`
	LastChange    time.Time          `bun:"last_change,notnull" json:"last_change,omitempty"`
}

// Renew overwrites the hash and resets the record to PENDING. The previous
// hash can no longer be matched to any record afterwards; this is the
// single-use and anti-replay mechanism.
func (v *Verification) Renew(hash string, now time.Time) {
	v.Hash = hash
	v.Status = VerificationPending
	v.LastChange = now
}

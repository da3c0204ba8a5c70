package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// StaticAuthoritySource grants the same fixed authority names to every
// user. Deployments without per-user role storage pick this strategy at
// startup.
type StaticAuthoritySource struct {
	names []string
}

var _ AuthoritySource = (*StaticAuthoritySource)(nil)

// NewStaticAuthoritySource creates a source over a fixed authority list.
func NewStaticAuthoritySource(names ...string) (*StaticAuthoritySource, error) {
	if len(names) == 0 {
		return nil, errors.New("static authority source requires at least one authority", errors.CategoryValidation)
	}
	return &StaticAuthoritySource{
		names: append([]string(nil), names...),
	}, nil
}

// FindAuthorities returns the configured authority names.
func (s *StaticAuthoritySource) FindAuthorities(_ context.Context, _ *User) ([]string, error) {
	return append([]string(nil), s.names...), nil
}

// RecordAuthoritySource reads the authority names persisted on the user
// record itself.
type RecordAuthoritySource struct{}

var _ AuthoritySource = (*RecordAuthoritySource)(nil)

// NewRecordAuthoritySource creates the record-backed source.
func NewRecordAuthoritySource() *RecordAuthoritySource {
	return &RecordAuthoritySource{}
}

// FindAuthorities returns the authorities stored on the user record.
func (s *RecordAuthoritySource) FindAuthorities(_ context.Context, user *User) ([]string, error) {
	if user == nil {
		return nil, errors.New("user is required", errors.CategoryBadInput)
	}
	return append([]string(nil), user.Authorities...), nil
}

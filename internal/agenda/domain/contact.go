package domain

import (
	"strings"
	"time"
)

// Contact is an address-book entry owned by exactly one user. Names are
// unique per owner under case-insensitive comparison; the display form is
// stored as the user typed it.
type Contact struct {
	ID        string
	OwnerID   string
	Name      string
	Phone     string
	Email     string // optional, empty when unset
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactPatch is a partial update: only non-nil fields are applied. A
// present-but-empty Email clears the stored value (email is the one
// optional field).
type ContactPatch struct {
	Name  *string
	Phone *string
	Email *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ContactPatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Email == nil
}

// NormalizeContactName is the single normalization rule used for every
// case-insensitive name comparison: surrounding whitespace is trimmed and
// the name is lower-cased. Both the uniqueness check at write time and
// lookup-by-name at read time go through this function.
func NormalizeContactName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

package orderid

import (
	"strings"

	"storefront/internal/pkg/errs"
)

// Identifier is the externally visible order code (customOrderId).
// The zero value means "not assigned yet".
type Identifier string

// NewIdentifier joins a region key and a sequence.
func NewIdentifier(region RegionKey, sequence Sequence) (Identifier, error) {
	if err := region.Validate(); err != nil {
		return "", err
	}
	if err := sequence.Validate(); err != nil {
		return "", err
	}
	return Identifier(region.String() + sequence.String()), nil
}

// ParseIdentifier accepts an identifier coming from outside (URL, database).
// Only emptiness and surrounding whitespace are checked: identifiers minted
// from short region names are legitimately shorter than seven characters.
func ParseIdentifier(s string) (Identifier, error) {
	if strings.TrimSpace(s) == "" {
		return "", errs.NewValueIsRequiredError("customOrderId")
	}
	if strings.TrimSpace(s) != s {
		return "", errs.NewValueIsInvalidError("customOrderId")
	}
	return Identifier(s), nil
}

// IsZero reports whether no identifier has been assigned.
func (id Identifier) IsZero() bool {
	return id == ""
}

// String returns the identifier text.
func (id Identifier) String() string {
	return string(id)
}

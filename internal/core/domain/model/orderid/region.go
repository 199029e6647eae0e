package orderid

import (
	"strings"
	"unicode/utf8"

	"storefront/internal/pkg/errs"
)

const (
	// GenericRegion is used when the address carries no usable region field.
	GenericRegion = "GEN"

	regionKeyLength = 3
)

// RegionKey is the uppercase prefix of an order identifier. It is also the
// key of the region counter.
type RegionKey string

// ResolveRegionKey picks the first candidate that is not blank and derives a
// RegionKey from it. With no usable candidate the GenericRegion is used.
//
// Example:
//
//	ResolveRegionKey("", "Chittagong", "") // "CHI"
//	ResolveRegionKey("", "", "Sylhet")     // "SYL"
//	ResolveRegionKey()                     // "GEN"
func ResolveRegionKey(candidates ...string) RegionKey {
	for _, candidate := range candidates {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return newRegionKey(trimmed)
		}
	}
	return newRegionKey(GenericRegion)
}

// ParseRegionKey validates an already derived prefix, as read back from a route
// parameter or a counter row.
func ParseRegionKey(s string) (RegionKey, error) {
	key := RegionKey(s)
	if err := key.Validate(); err != nil {
		return "", err
	}
	return key, nil
}

func newRegionKey(source string) RegionKey {
	prefix := source
	if utf8.RuneCountInString(source) > regionKeyLength {
		runes := []rune(source)
		prefix = string(runes[:regionKeyLength])
	}
	return RegionKey(strings.ToUpper(prefix))
}

// String returns the prefix as stored.
func (k RegionKey) String() string {
	return string(k)
}

// Validate checks that the key is non-empty, at most three characters long and uppercase.
func (k RegionKey) Validate() error {
	if k == "" {
		return errs.NewValueIsRequiredError("region key")
	}
	if n := utf8.RuneCountInString(string(k)); n > regionKeyLength {
		return errs.NewValueIsOutOfRangeError("region key length", n, 1, regionKeyLength)
	}
	if strings.ToUpper(string(k)) != string(k) {
		return errs.NewValueIsInvalidError("region key must be uppercase")
	}
	return nil
}

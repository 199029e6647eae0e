// Package changeset models the field modifications proposed by a partial order
// update before they reach storage.
//
// Clients send either a flat document ({"isDelivered": true}) or one wrapped in a
// "$set" operator ({"$set": {"isDelivered": true}}). Parse detects the shape once
// and every later read or write goes through the same accessors, whichever
// shape was received. The original document is edited in place, so the
// rewritten change-set keeps the shape the caller sent.
package changeset

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"storefront/internal/pkg/errs"
)

// SetOperator is the wrapper key of the nested shape.
const SetOperator = "$set"

// Field names understood by the consistency rules.
const (
	FieldIsPaid      = "isPaid"
	FieldPaidAt      = "paidAt"
	FieldIsDelivered = "isDelivered"
	FieldDeliveredAt = "deliveredAt"
	FieldOrderStatus = "orderStatus"
)

var (
	// ErrSetIsNotAnObject is returned when "$set" holds something other than an object.
	ErrSetIsNotAnObject = errs.NewValueIsInvalidErrorWithCause(SetOperator, errors.New("must be an object"))

	// ErrChangeSetIsEmpty is returned when a change-set proposes no field at all.
	ErrChangeSetIsEmpty = errs.NewValueIsRequiredError("change-set fields")
)

// Shape tags how the fields were wrapped by the caller.
type Shape int

const (
	// Flat: fields are top-level keys of the document.
	Flat Shape = iota + 1

	// Nested: fields live under the "$set" key.
	Nested
)

// String returns "flat" or "nested".
func (s Shape) String() string {
	switch s {
	case Flat:
		return "flat"
	case Nested:
		return "nested"
	default:
		return "unknown"
	}
}

// ChangeSet is a parsed partial update. The zero value is not usable; build one
// with Parse, NewFlat or NewNested.
type ChangeSet struct {
	shape  Shape
	doc    map[string]any
	fields map[string]any
}

// Parse classifies doc and returns a ChangeSet over it.
//
// Plain top-level keys that sit next to "$set" are moved inside it, so a mixed
// document becomes a single Nested change-set. Any other "$" operator is refused.
//
// Example:
//
//	cs, err := changeset.Parse(map[string]any{"$set": map[string]any{"isDelivered": true}})
//	if err != nil {
//	    return err
//	}
//	cs.Shape()                    // changeset.Nested
//	cs.Get(changeset.FieldIsDelivered) // true, true
func Parse(doc map[string]any) (ChangeSet, error) {
	if doc == nil {
		return ChangeSet{}, ErrChangeSetIsEmpty
	}

	for key := range doc {
		if strings.HasPrefix(key, "$") && key != SetOperator {
			return ChangeSet{}, errs.NewValueIsInvalidErrorWithCause(
				"update operator",
				fmt.Errorf("%s is not supported, only %s", key, SetOperator),
			)
		}
	}

	raw, nested := doc[SetOperator]
	if !nested {
		if len(doc) == 0 {
			return ChangeSet{}, ErrChangeSetIsEmpty
		}
		return ChangeSet{shape: Flat, doc: doc, fields: doc}, nil
	}

	set, ok := raw.(map[string]any)
	if !ok {
		return ChangeSet{}, ErrSetIsNotAnObject
	}
	if set == nil {
		set = make(map[string]any)
		doc[SetOperator] = set
	}

	for key, value := range doc {
		if key == SetOperator {
			continue
		}
		set[key] = value
		delete(doc, key)
	}

	if len(set) == 0 {
		return ChangeSet{}, ErrChangeSetIsEmpty
	}
	return ChangeSet{shape: Nested, doc: doc, fields: set}, nil
}

// NewFlat builds a flat change-set over fields.
func NewFlat(fields map[string]any) ChangeSet {
	if fields == nil {
		fields = make(map[string]any)
	}
	return ChangeSet{shape: Flat, doc: fields, fields: fields}
}

// NewNested builds a change-set whose document wraps fields in "$set".
func NewNested(fields map[string]any) ChangeSet {
	if fields == nil {
		fields = make(map[string]any)
	}
	return ChangeSet{
		shape:  Nested,
		doc:    map[string]any{SetOperator: fields},
		fields: fields,
	}
}

// Shape reports how the fields are wrapped.
func (c ChangeSet) Shape() Shape {
	return c.shape
}

// Get returns the proposed value of field.
func (c ChangeSet) Get(field string) (any, bool) {
	v, ok := c.fields[field]
	return v, ok
}

// Set proposes value for field, in the location matching the shape.
func (c ChangeSet) Set(field string, value any) {
	c.fields[field] = value
}

// IsSpecified reports whether field carries a usable value. Absent keys, nil,
// empty strings and zero times count as unspecified.
func (c ChangeSet) IsSpecified(field string) bool {
	v, ok := c.fields[field]
	if !ok {
		return false
	}

	switch value := v.(type) {
	case nil:
		return false
	case string:
		return value != ""
	case time.Time:
		return !value.IsZero()
	case *time.Time:
		return value != nil && !value.IsZero()
	default:
		return true
	}
}

// SetsDelivered reports whether the change-set sets isDelivered to the boolean true.
func (c ChangeSet) SetsDelivered() bool {
	v, ok := c.fields[FieldIsDelivered]
	if !ok {
		return false
	}
	delivered, isBool := v.(bool)
	return isBool && delivered
}

// Fields returns a copy of the proposed field assignments, regardless of shape.
func (c ChangeSet) Fields() map[string]any {
	return maps.Clone(c.fields)
}

// Document returns the underlying document in the caller's shape.
func (c ChangeSet) Document() map[string]any {
	return c.doc
}

// Len returns the number of proposed fields.
func (c ChangeSet) Len() int {
	return len(c.fields)
}

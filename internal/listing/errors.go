package listing

import (
	"errors"
	"fmt"
)

// ErrPageStructureChanged is returned when the expected list root is missing from a page.
var ErrPageStructureChanged = errors.New("page structure changed")

// FieldMissingError reports a required field that could not be resolved for one item.
type FieldMissingError struct {
	RuleSet  string
	Index    int
	Field    string
	Selector string
}

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("%s item %d: required field %q not found (selector %q)", e.RuleSet, e.Index, e.Field, e.Selector)
}

// Package types implements special types for the Shulebooks backend.
package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// Term is one of the three academic sub-periods of a school year.
type Term int

const (
	Term1 Term = 1
	Term2 Term = 2
	Term3 Term = 3
)

var ErrInvalidTerm = errors.New("the term must be 1, 2 or 3")

// Valid reports whether the term is one of the three defined terms.
func (t Term) Valid() bool {
	return t >= Term1 && t <= Term3
}

// String returns the term formatted as "Term N".
func (t Term) String() string {
	return fmt.Sprintf("Term %d", int(t))
}

// Value returns the value for the SQL driver to write to the database.
func (t Term) Value() (driver.Value, error) {
	return int64(t), nil
}

// Scan reads the value from the database.
func (t *Term) Scan(value interface{}) error {
	i, ok := value.(int64)
	if !ok {
		return fmt.Errorf("cannot scan %T into a Term", value)
	}

	*t = Term(i)
	return nil
}

// GormDataType defines the data type used by gorm for the type.
func (Term) GormDataType() string {
	return "integer"
}

package domain

import (
	"errors"
	"fmt"
)

// NotFoundError marks a name that did not resolve to any row. Handlers map it
// to a 404; everything else surfaces as a store failure.
type NotFoundError struct {
	Entity string
	Name   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Name)
}

func NewNotFound(entity, name string) error {
	return &NotFoundError{Entity: entity, Name: name}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

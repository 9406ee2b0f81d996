package errors

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Field attaches a field path to err, so that validation failures can be
// reported per attribute. It returns nil if err is nil. A stack trace is
// recorded unless err already carries one.
//
// Paths use Go names joined with a dot, for example Threshold or
// Domain.ChainID. Elements of a list are addressed by their index, see
// FieldIndex.
func Field(path string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, path: path, desc: description}
}

// AppendField adds err, attached to path, to errs. Nil err leaves errs
// unchanged.
func AppendField(errs error, path string, err error) error {
	return Append(errs, Field(path, err, ""))
}

// FieldIndex returns the path of the i-th element of the list at path, for
// example Signatures.2.
func FieldIndex(path string, i int) string {
	return path + "." + strconv.Itoa(i)
}

type fieldError struct {
	parent error
	path   string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.path, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.path, e.desc, e.parent)
}

func (e *fieldError) Cause() error { return e.parent }

// Field returns the path this error was created for.
func (e *fieldError) Field() string { return e.path }

// FieldErrors walks the error tree and returns the errors attached to path.
// A match is not inspected further, so for nested attachments to the same
// path only the outermost one is returned.
func FieldErrors(err error, path string) []error {
	var found []error
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok && f.Field() == path {
			return append(found, err)
		}
		switch e := err.(type) {
		case unpacker:
			for _, child := range e.Unpack() {
				found = append(found, FieldErrors(child, path)...)
			}
			return found
		case causer:
			err = e.Cause()
		default:
			return found
		}
	}
	return found
}

type fielder interface {
	Field() string
}

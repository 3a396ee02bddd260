package di

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// builtList contains the names of the definitions
// that are being built by a container.
// It is used to detect cycles in object definitions.
type builtList []string

// Add returns a new builtList with the given name appended.
// The receiver is not modified, so sibling builds can not
// observe each other's entries.
func (l builtList) Add(name string) builtList {
	out := make(builtList, len(l), len(l)+1)
	copy(out, l)
	return append(out, name)
}

// Has checks if the list contains the given name.
func (l builtList) Has(name string) bool {
	for _, n := range l {
		if n == name {
			return true
		}
	}
	return false
}

// OrderedList returns the names in the order they were inserted.
func (l builtList) OrderedList() []string {
	out := make([]string, len(l))
	copy(out, l)
	return out
}

// multiErrBuilder can accumulate errors.
type multiErrBuilder struct {
	errs []error
}

// Add adds an error in the multiErrBuilder.
func (b *multiErrBuilder) Add(err error) {
	if err != nil {
		b.errs = append(b.errs, err)
	}
}

// Build returns an error containing all the messages
// of the accumulated errors. If there is no error
// in the builder, it returns nil.
func (b *multiErrBuilder) Build() error {
	if len(b.errs) == 0 {
		return nil
	}

	msgs := make([]string, len(b.errs))

	for i, err := range b.errs {
		msgs[i] = err.Error()
	}

	return errors.New(strings.Join(msgs, " AND "))
}

// fill copies src in dest. dest should be a pointer to src type.
func fill(src, dest interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d := reflect.TypeOf(dest)
			s := reflect.TypeOf(src)
			err = fmt.Errorf("the fill destination should be a pointer to a `%s`, but you used a `%s`", s, d)
		}
	}()

	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(src))

	return err
}

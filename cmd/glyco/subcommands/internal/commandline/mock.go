// Package commandline stubs flarc.Commandline for task tests: tests
// hand a task fixed flags, args and in-memory streams without going
// through flag parsing.
package commandline

import (
	"io"

	"github.com/youta-t/flarc"
)

// MockCommandline satisfies flarc.Commandline with fixed values.
//
// Field names carry a trailing underscore to stay clear of the
// accessor method set.
type MockCommandline[T any] struct {
	Fullname_ string

	Stdin_  io.Reader
	Stdout_ io.Writer
	Stderr_ io.Writer

	Flags_ T
	Args_  map[string][]string
}

var _ flarc.Commandline[struct{}] = &MockCommandline[struct{}]{}

func (m MockCommandline[T]) Fullname() string {
	return m.Fullname_
}

func (m MockCommandline[T]) Stdin() io.Reader {
	return m.Stdin_
}

func (m MockCommandline[T]) Stdout() io.Writer {
	return m.Stdout_
}

func (m MockCommandline[T]) Stderr() io.Writer {
	return m.Stderr_
}

func (m MockCommandline[T]) Flags() T {
	return m.Flags_
}

func (m MockCommandline[T]) Args() map[string][]string {
	return m.Args_
}

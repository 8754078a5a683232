package errors

import (
	"strings"
)

type Verbose interface {
	Verbose() string
}

// CUIError is an error for humans at the terminal.
//
// Error() gives the summary (and advice, if any); Verbose() unfolds
// the cause chain for debugging.
type CUIError interface {
	error
	Verbose
}

type cuierror struct {
	summary string
	advice  string
	verbose string
	base    error
}

func (ce *cuierror) Unwrap() error {
	return ce.base
}

func (ce *cuierror) Error() string {
	if ce.advice == "" {
		return ce.summary
	}
	return ce.summary + "\n" + ce.advice
}

func (ce *cuierror) Verbose() string {
	message := []string{ce.Error()}
	if ce.verbose != "" {
		message = append(message, " ("+ce.verbose+") ")
	}

	switch base := ce.base.(type) {
	case nil:
		// no-op
	case Verbose:
		message = append(message, "caused by: ", base.Verbose())
	default:
		message = append(message, "caused by: ", base.Error())
	}
	return strings.Join(message, "\n")
}

type CuiErrorOption func(cerr *cuierror) *cuierror

func NewCuiError(
	summary string,
	options ...CuiErrorOption,
) CUIError {
	err := &cuierror{summary: summary}
	for _, o := range options {
		err = o(err)
	}
	return err
}

// WithAdvice attaches a what-to-do-next line shown with the summary.
func WithAdvice(advice string) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.advice = advice
		return cerr
	}
}

func WithVerbose(verbose string) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.verbose = verbose
		return cerr
	}
}

func WithCause(err error) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.base = err
		return cerr
	}
}

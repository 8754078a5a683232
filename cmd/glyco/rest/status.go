package rest

import (
	"fmt"
	"net/http"
)

// StatusCodeRange buckets a control plane response by its status class.
// MessageFor tables key on it to pick the message shown to the user.
type StatusCodeRange int

const (
	StatusUnknown StatusCodeRange = iota
	Status1xx
	Status2xx
	Status3xx
	Status4xx
	Status5xx
)

// StatusCodeRangeOf classifies the status code of resp.
func StatusCodeRangeOf(resp *http.Response) StatusCodeRange {
	switch sc := resp.StatusCode; {
	case sc < 200:
		return Status1xx
	case sc < 300:
		return Status2xx
	case sc < 400:
		return Status3xx
	case sc < 500:
		return Status4xx
	case sc < 600:
		return Status5xx
	default:
		return StatusUnknown
	}
}

func (sc StatusCodeRange) String() string {
	switch sc {
	case Status1xx:
		return "informational response"
	case Status2xx:
		return "success"
	case Status3xx:
		return "redirect"
	case Status4xx:
		return "client error"
	case Status5xx:
		return "server error"
	default:
		return fmt.Sprintf("unknown (%d)", sc)
	}
}

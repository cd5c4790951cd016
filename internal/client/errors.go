package client

import (
	"errors"
	"fmt"
)

// Kind classifies why a request to the summarization service failed
type Kind int

const (
	// KindUnknown covers everything not classified below
	KindUnknown Kind = iota
	// KindNetwork means the service could not be reached or did not answer in time
	KindNetwork
	// KindServer means the service answered with a 5xx status
	KindServer
	// KindClient means the service answered with a 4xx status
	KindClient
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindClient:
		return "client"
	default:
		return "unknown"
	}
}

// RequestError describes a failed round trip to the summarization service
type RequestError struct {
	Kind       Kind
	StatusCode int
	// Detail is the service's own explanation, when the body carried one
	Detail string
	Cause  error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("HTTP error! status: %d (%s)", e.StatusCode, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	case e.Cause != nil:
		return e.Cause.Error()
	default:
		return e.Kind.String() + " error"
	}
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// KindOf returns the classification of err, or KindUnknown when err is not a RequestError
func KindOf(err error) Kind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return KindUnknown
}

func classifyStatus(status int) Kind {
	switch {
	case status >= 500 && status <= 599:
		return KindServer
	case status >= 400 && status <= 499:
		return KindClient
	default:
		return KindUnknown
	}
}

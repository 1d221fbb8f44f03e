package download

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a transfer failure.
type Kind int

const (
	// KindOther is any failure not covered by the other kinds, including panics.
	KindOther Kind = iota
	// KindHTTPStatus is a non-2xx response.
	KindHTTPStatus
	// KindNetwork is a connection, timeout or body read failure.
	KindNetwork
	// KindIO is a local file system failure.
	KindIO
	// KindCancelled means the caller cancelled the transfer.
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindHTTPStatus:
		return "http status"
	case KindNetwork:
		return "network"
	case KindIO:
		return "io"
	case KindCancelled:
		return "cancelled"
	default:
		return "other"
	}
}

// TransferError is the error returned by ManagerImpl.Transfer.
type TransferError struct {
	Kind       Kind
	URL        string
	StatusCode int // set for KindHTTPStatus
	Err        error
}

func (e *TransferError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return strings.TrimSpace(fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode)))
	case KindCancelled:
		return "cancelled"
	}
	if e.Err == nil {
		return e.Kind.String() + " error"
	}
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// IsCancelled reports whether err is a cancelled transfer.
func IsCancelled(err error) bool {
	var te *TransferError
	return errors.As(err, &te) && te.Kind == KindCancelled
}

// KindOf returns the Kind of err, or KindOther when err is not a *TransferError.
func KindOf(err error) Kind {
	var te *TransferError
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindOther
}

func newError(kind Kind, url string, err error) *TransferError {
	return &TransferError{Kind: kind, URL: url, Err: err}
}

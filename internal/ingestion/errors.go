package ingestion

import (
	"errors"
	"fmt"
)

// Kind classifies why a loader produced no data.
type Kind int

const (
	KindTransport Kind = iota + 1 // host unreachable, timeout, non-2xx
	KindSchema                    // payload is not shaped as expected
	KindEmpty                     // payload parsed but nothing survived filtering
	KindIO                        // local cache file could not be written or read
)

var kindNames = map[Kind]string{
	KindTransport: "transport",
	KindSchema:    "schema",
	KindEmpty:     "empty",
	KindIO:        "io",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Sentinels for errors.Is. A *LoadError matches the sentinel of its Kind.
var (
	ErrTransport = errors.New("transport failure")
	ErrSchema    = errors.New("schema failure")
	ErrEmpty     = errors.New("no data")
	ErrIO        = errors.New("cache io failure")
)

var kindSentinels = map[Kind]error{
	KindTransport: ErrTransport,
	KindSchema:    ErrSchema,
	KindEmpty:     ErrEmpty,
	KindIO:        ErrIO,
}

type LoadError struct {
	Source string // "fire" or "earthquake"
	Kind   Kind
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s data: %s", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s data: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// KindOf reports the Kind carried by err, or 0 if err is not a *LoadError.
func KindOf(err error) Kind {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind
	}
	return 0
}

func newLoadError(source string, kind Kind, err error) *LoadError {
	return &LoadError{Source: source, Kind: kind, Err: err}
}

package ingestion

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadError_IsMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		kind     Kind
		sentinel error
	}{
		{KindTransport, ErrTransport},
		{KindSchema, ErrSchema},
		{KindEmpty, ErrEmpty},
		{KindIO, ErrIO},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", newLoadError(fireSource, tt.kind, errors.New("boom")))

			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.kind, KindOf(err))
			for _, other := range []error{ErrTransport, ErrSchema, ErrEmpty, ErrIO} {
				if other != tt.sentinel {
					assert.NotErrorIs(t, err, other)
				}
			}
		})
	}
}

func TestLoadError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := newLoadError(earthquakeSource, KindTransport, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "earthquake data: transport: connection reset", err.Error())
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, "unknown", Kind(0).String())
}

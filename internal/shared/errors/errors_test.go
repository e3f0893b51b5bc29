package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetType(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"not found", NotFoundf("slot %s", "x"), ErrorTypeNotFound},
		{"validation", Validationf("bad seed %q", "abc"), ErrorTypeValidation},
		{"timeout", WrapTimeout("seed unusable", base), ErrorTypeTimeout},
		{"corrupt", Corruptf("bad tag %x", 7), ErrorTypeCorrupt},
		{"wrapped in fmt", fmt.Errorf("outer: %w", WrapCorrupt("checksum", base)), ErrorTypeCorrupt},
		{"plain error", base, ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetType(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	base := errors.New("disk full")
	err := WrapInternal("failed to store save", base)

	assert.ErrorIs(t, err, base)
	assert.Equal(t, "failed to store save: disk full", err.Error())
}

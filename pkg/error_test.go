package pkg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      *EngineError
		sentinel error
	}{
		{"init", &EngineError{Stage: StageInit, Code: 3}, ErrEngineInit},
		{"run", &EngineError{Stage: StageRun, Code: 5}, ErrEngineStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.NotErrorIs(t, tt.err, ErrNoMemory)
		})
	}
}

func TestEngineError_Wrapped(t *testing.T) {
	err := fmt.Errorf("bring-up: %w", &EngineError{Stage: StageRun, Code: 5})
	assert.ErrorIs(t, err, ErrEngineStart)
	assert.Equal(t, 5, EngineCode(err))
}

func TestEngineCode_NotEngineError(t *testing.T) {
	assert.Equal(t, -1, EngineCode(ErrNoMemory))
	assert.Equal(t, -1, EngineCode(errors.New("other")))
	assert.Equal(t, -1, EngineCode(nil))
}

func TestEngineError_Message(t *testing.T) {
	assert.Contains(t, (&EngineError{Stage: StageInit, Code: 2}).Error(), "init")
	assert.Contains(t, (&EngineError{Stage: StageRun, Code: 5}).Error(), "code 5")
}

package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{name: "with custom writer", writer: &bytes.Buffer{}},
		{name: "with nil writer", writer: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.WasInterrupted())
		})
	}
}

func TestInterruptHandler_ParentCancellation(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output)

	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent)

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled initially")
	default:
	}

	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("derived context was not canceled")
	}
	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestInterruptHandler_MessageOnce(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output)

	handler.interrupt()
	handler.interrupt()

	assert.True(t, handler.WasInterrupted())
	assert.Equal(t, 1, strings.Count(output.String(), GoodbyeMessage))
	assert.Contains(t, output.String(), "Interrupted!")
}

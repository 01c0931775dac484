package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when a read is abandoned because the context ended.
var ErrInputCancelled = errors.New("input canceled")

// LineReader reads whole lines from an input stream while honoring context
// cancellation, so Ctrl-C can interrupt a prompt that is waiting on stdin.
type LineReader struct {
	reader *bufio.Reader
	mu     sync.Mutex
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	if r == nil {
		panic("reader cannot be nil")
	}
	return &LineReader{reader: bufio.NewReader(r)}
}

// ReadLine returns the next line with surrounding whitespace trimmed. A final
// line without a trailing newline is returned before io.EOF is reported.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrInputCancelled
	}

	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		value, err := r.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		// The goroutine stays blocked until the stream yields a line.
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && res.value != "" {
				return strings.TrimSpace(res.value), nil
			}
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string, opts ...PrompterOption) (*Prompter, *bytes.Buffer) {
	var output bytes.Buffer
	opts = append([]PrompterOption{WithIdleTime(0)}, opts...)
	return NewPrompter(strings.NewReader(input), &output, opts...), &output
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("Please enter a positive number.")
	}
	return n, nil
}

func TestAsk(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		maxAttempts int
		expected    int
		expectedErr error
		rejections  int
	}{
		{name: "valid first try", input: "3\n", expected: 3},
		{name: "retry until valid", input: "x\n-2\n\n7\n", expected: 7, rejections: 3},
		{name: "cancel", input: "cancel\n", expectedErr: ErrCancelled},
		{name: "cancel any case", input: "x\nCANCEL\n", expectedErr: ErrCancelled, rejections: 1},
		{name: "bounded", input: "a\nb\nc\n4\n", maxAttempts: 3, expectedErr: ErrTooManyAttempts, rejections: 3},
		{name: "input closed", input: "a\n", expectedErr: io.EOF, rejections: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []PrompterOption
			if tt.maxAttempts > 0 {
				opts = append(opts, WithMaxAttempts(tt.maxAttempts))
			}
			prompter, output := newTestPrompter(tt.input, opts...)

			got, err := Ask(context.Background(), prompter, "Number: ", parsePositive)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
			assert.Equal(t, tt.rejections, strings.Count(output.String(), "Please enter a positive number."))
		})
	}
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{input: "yes\n", expected: true},
		{input: "y\n", expected: true},
		{input: "YES\n", expected: true},
		{input: "Y\n", expected: true},
		{input: "no\n", expected: false},
		{input: "\n", expected: false},
		{input: "yep\n", expected: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			prompter, output := newTestPrompter(tt.input)
			ok, err := prompter.Confirm(context.Background(), "Are you sure?")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			assert.Contains(t, output.String(), "Are you sure? (yes/no): ")
		})
	}
}

func TestPrompter_ReadField(t *testing.T) {
	prompter, _ := newTestPrompter("lunch with Sam\ncancel\n")
	ctx := context.Background()

	got, err := prompter.ReadField(ctx, "Remark: ")
	require.NoError(t, err)
	assert.Equal(t, "lunch with Sam", got)

	_, err = prompter.ReadField(ctx, "Remark: ")
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestPrompter_ReadLineCanceled(t *testing.T) {
	prompter, _ := newTestPrompter("1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := prompter.ReadLine(ctx, "Choice: ")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrompter_Notify(t *testing.T) {
	var slept []time.Duration
	prompter, output := newTestPrompter("", WithIdleTime(250*time.Millisecond))
	prompter.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	require.NoError(t, prompter.Notify(context.Background(), "Invalid choice. Please try again."))
	assert.Contains(t, output.String(), "Invalid choice. Please try again.")
	assert.Equal(t, []time.Duration{250 * time.Millisecond}, slept)
}

func TestPrompter_Countdown(t *testing.T) {
	t.Run("zero duration skips the bar", func(t *testing.T) {
		prompter, output := newTestPrompter("")
		require.NoError(t, prompter.Countdown(context.Background(), "Deleting", 0))
		assert.Empty(t, output.String())
	})

	t.Run("sleeps in steps", func(t *testing.T) {
		var total time.Duration
		prompter, _ := newTestPrompter("")
		prompter.sleep = func(_ context.Context, d time.Duration) error {
			total += d
			return nil
		}

		require.NoError(t, prompter.Countdown(context.Background(), "Deleting", 2*time.Second))
		assert.Equal(t, 2*time.Second, total)
	})

	t.Run("canceled", func(t *testing.T) {
		prompter, _ := newTestPrompter("")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, prompter.Countdown(ctx, "Deleting", time.Second), context.Canceled)
	})
}

func TestIsCancel(t *testing.T) {
	assert.True(t, IsCancel("cancel"))
	assert.True(t, IsCancel(" Cancel "))
	assert.False(t, IsCancel("cancelled"))
	assert.False(t, IsCancel(""))
}

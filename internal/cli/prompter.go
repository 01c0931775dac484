package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/budget/internal/common"
	"github.com/schollz/progressbar/v3"
)

var (
	// ErrCancelled is returned when the user types the cancel sentinel.
	ErrCancelled = errors.New("canceled by user")
	// ErrTooManyAttempts is returned when a prompt keeps receiving invalid input.
	ErrTooManyAttempts = errors.New("too many invalid attempts")
)

// CancelWord aborts the current flow at any prompt.
const CancelWord = "cancel"

const (
	defaultIdleTime    = 500 * time.Millisecond
	defaultMaxAttempts = 10
	countdownSteps     = 20
)

// Prompter reads user input line by line and writes prompts and transient
// messages. Every blocking wait honors the context.
type Prompter struct {
	reader      *LineReader
	writer      io.Writer
	sleep       func(context.Context, time.Duration) error
	idleTime    time.Duration
	maxAttempts int
}

// PrompterOption configures a Prompter.
type PrompterOption func(*Prompter)

// WithIdleTime sets how long transient messages stay on screen.
func WithIdleTime(d time.Duration) PrompterOption {
	return func(p *Prompter) {
		p.idleTime = d
	}
}

// WithMaxAttempts bounds how many invalid answers a single prompt accepts.
func WithMaxAttempts(n int) PrompterOption {
	return func(p *Prompter) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// NewPrompter creates a prompter. Nil streams default to stdin and stdout.
func NewPrompter(reader io.Reader, writer io.Writer, opts ...PrompterOption) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	p := &Prompter{
		reader:      NewLineReader(reader),
		writer:      writer,
		sleep:       sleepContext,
		idleTime:    defaultIdleTime,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Writer returns the output stream.
func (p *Prompter) Writer() io.Writer {
	return p.writer
}

// MaxAttempts returns the retry bound for a single prompt.
func (p *Prompter) MaxAttempts() int {
	return p.maxAttempts
}

// ReadLine prints prompt and returns the trimmed answer.
func (p *Prompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, ErrInputCancelled) {
			return "", ctx.Err()
		}
		return "", err
	}
	return line, nil
}

// ReadField reads free text, treating the cancel word as ErrCancelled.
func (p *Prompter) ReadField(ctx context.Context, prompt string) (string, error) {
	line, err := p.ReadLine(ctx, prompt)
	if err != nil {
		return "", err
	}
	if IsCancel(line) {
		return "", ErrCancelled
	}
	return line, nil
}

// Pause blocks for the configured idle time so a message can be read.
func (p *Prompter) Pause(ctx context.Context) error {
	return p.sleep(ctx, p.idleTime)
}

// Notify prints msg and pauses.
func (p *Prompter) Notify(ctx context.Context, msg string) error {
	p.println(msg)
	return p.Pause(ctx)
}

// WaitForEnter blocks until the user presses Enter.
func (p *Prompter) WaitForEnter(ctx context.Context) error {
	_, err := p.ReadLine(ctx, "\nPress Enter to continue...")
	return err
}

// Confirm asks a yes/no question. Only "yes" or "y" (any case) confirm.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := p.ReadLine(ctx, question+" (yes/no): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "yes", "y":
		return true, nil
	default:
		return false, nil
	}
}

// Countdown shows a progress bar for d while waiting. A zero duration
// returns immediately.
func (p *Prompter) Countdown(ctx context.Context, description string, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	bar := progressbar.NewOptions(countdownSteps,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(description),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	step := d / countdownSteps
	for i := 0; i < countdownSteps; i++ {
		if err := p.sleep(ctx, step); err != nil {
			return err
		}
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}
	if err := bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
	return nil
}

func (p *Prompter) println(msg string) {
	if _, err := fmt.Fprintln(p.writer, msg); err != nil {
		slog.Warn("Failed to write message", "error", err)
	}
}

// Ask prompts until parse accepts the answer. Rejections are shown using
// their user message followed by a pause. The cancel word yields
// ErrCancelled; exhausting the attempt bound yields ErrTooManyAttempts.
func Ask[T any](ctx context.Context, p *Prompter, prompt string, parse func(string) (T, error)) (T, error) {
	var zero T

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		line, err := p.ReadField(ctx, prompt)
		if err != nil {
			return zero, err
		}

		value, err := parse(line)
		if err == nil {
			return value, nil
		}

		slog.Debug("rejected input", "attempt", attempt, "error", err)
		if err := p.Notify(ctx, FormatError(common.UserMessage(err))); err != nil {
			return zero, err
		}
	}

	return zero, ErrTooManyAttempts
}

// IsCancel reports whether input is the cancel word.
func IsCancel(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), CancelWord)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

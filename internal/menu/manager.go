package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/common"
)

// ExitKeyword terminates the session from any menu prompt.
const ExitKeyword = "exit"

const choicePrompt = "\nEnter your choice: "

// Action runs when its menu key is chosen.
type Action func(ctx context.Context) (Token, error)

// Item is one numbered menu entry.
type Item struct {
	Action Action
	Key    string
	Label  string
}

// Menu is an insertion-ordered set of items. Header, when set, renders
// above the title each time the menu is shown.
type Menu struct {
	Header func(ctx context.Context) error
	Title  string
	Items  []Item
}

// Lookup returns the item bound to key.
func (m *Menu) Lookup(key string) (Item, bool) {
	for _, item := range m.Items {
		if item.Key == key {
			return item, true
		}
	}
	return Item{}, false
}

func (m *Menu) entries() []cli.MenuEntry {
	entries := make([]cli.MenuEntry, 0, len(m.Items))
	for _, item := range m.Items {
		entries = append(entries, cli.MenuEntry{Key: item.Key, Label: item.Label})
	}
	return entries
}

// Renderer draws menus and errors.
type Renderer interface {
	Clear()
	ShowMenu(title string, entries []cli.MenuEntry)
	Error(msg string)
}

// Input reads menu choices and shows transient messages.
type Input interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
	Notify(ctx context.Context, msg string) error
}

// Manager owns the menus and runs the read-dispatch-resolve loop.
type Manager struct {
	display Renderer
	input   Input
	exit    func(ctx context.Context) error
	menus   map[State]*Menu
}

// NewManager creates a manager. exit runs when the session ends by the exit
// keyword, an Exit token or closed input.
func NewManager(display Renderer, input Input, exit func(ctx context.Context) error) *Manager {
	return &Manager{
		display: display,
		input:   input,
		exit:    exit,
		menus:   make(map[State]*Menu),
	}
}

// Register binds a menu to a state, replacing any previous binding.
func (m *Manager) Register(state State, menu *Menu) {
	m.menus[state] = menu
}

// Menu returns the menu bound to state.
func (m *Manager) Menu(state State) (*Menu, bool) {
	menu, ok := m.menus[state]
	return menu, ok
}

// Run shows start and loops until the session ends. Closed input ends the
// session like the exit keyword; context cancellation returns its error.
func (m *Manager) Run(ctx context.Context, start State) error {
	state := start

	for {
		menu, ok := m.menus[state]
		if !ok {
			return fmt.Errorf("no menu registered for state %s", state)
		}

		if err := m.render(ctx, menu); err != nil {
			return err
		}

		key, err := m.input.ReadLine(ctx, choicePrompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				slog.Debug("input closed, leaving menu loop")
				return m.exit(ctx)
			}
			return err
		}

		next, done, err := m.Step(ctx, state, key)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return m.exit(ctx)
			}
			return err
		}
		if done {
			return nil
		}
		state = next
	}
}

// Step handles a single keystroke entered while state was showing.
func (m *Manager) Step(ctx context.Context, state State, key string) (State, bool, error) {
	if key == ExitKeyword {
		return state, true, m.exit(ctx)
	}

	menu, ok := m.menus[state]
	if !ok {
		return state, true, fmt.Errorf("no menu registered for state %s", state)
	}

	item, found := menu.Lookup(key)
	if !isDigits(key) || !found {
		return state, false, m.input.Notify(ctx, cli.FormatError("Invalid choice. Please try again."))
	}

	tok, err := item.Action(ctx)
	if err != nil {
		if isTerminal(err) {
			return state, true, err
		}
		if !errors.Is(err, cli.ErrCancelled) && !errors.Is(err, cli.ErrTooManyAttempts) {
			slog.Error("menu action failed", "menu", state, "item", item.Label, "error", err)
			if nerr := m.input.Notify(ctx, cli.FormatError(common.UserMessage(err))); nerr != nil {
				return state, true, nerr
			}
		}
		return state, false, nil
	}

	next, done := Resolve(state, tok)
	slog.Debug("menu transition", "from", state, "token", tok, "to", next, "done", done)

	if tok.kind == kindExit {
		return next, true, m.exit(ctx)
	}
	return next, done, nil
}

func (m *Manager) render(ctx context.Context, menu *Menu) error {
	m.display.Clear()
	if menu.Header != nil {
		if err := menu.Header(ctx); err != nil {
			if isTerminal(err) {
				return err
			}
			slog.Error("failed to render menu header", "menu", menu.Title, "error", err)
			m.display.Error(common.UserMessage(err))
		}
	}
	m.display.ShowMenu(menu.Title, menu.entries())
	return nil
}

func isTerminal(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

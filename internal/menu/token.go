// Package menu implements the navigation state machine: numbered menus,
// keystroke dispatch, and resolution of the tokens actions return.
package menu

// State identifies a menu screen.
type State int

// Menu screens.
const (
	StateMain State = iota
	StateManageTransactions
	StateViewReports
	StateManageCategories
)

func (s State) String() string {
	switch s {
	case StateMain:
		return "main"
	case StateManageTransactions:
		return "manage_transactions"
	case StateViewReports:
		return "view_reports"
	case StateManageCategories:
		return "manage_categories"
	default:
		return "unknown"
	}
}

type tokenKind int

const (
	kindStay tokenKind = iota
	kindParent
	kindMain
	kindCaller
	kindGoto
	kindExit
)

// Token is the logical destination an action returns. The zero value is Stay.
type Token struct {
	kind   tokenKind
	target State
}

// Stay re-renders the current menu.
func Stay() Token { return Token{kind: kindStay} }

// ToParent returns to the menu the action was launched from.
func ToParent() Token { return Token{kind: kindParent} }

// ToMain jumps to the main menu from anywhere.
func ToMain() Token { return Token{kind: kindMain} }

// ToCaller unwinds out of the running manager.
func ToCaller() Token { return Token{kind: kindCaller} }

// Goto enters the given menu.
func Goto(s State) Token { return Token{kind: kindGoto, target: s} }

// Exit ends the session.
func Exit() Token { return Token{kind: kindExit} }

func (t Token) String() string {
	switch t.kind {
	case kindStay:
		return "stay"
	case kindParent:
		return "to_parent"
	case kindMain:
		return "to_main"
	case kindCaller:
		return "to_caller"
	case kindGoto:
		return "goto:" + t.target.String()
	case kindExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Resolve picks the next state for tok returned while current was showing.
// done reports that the manager should stop and hand control back.
func Resolve(current State, tok Token) (next State, done bool) {
	switch tok.kind {
	case kindStay, kindParent:
		return current, false
	case kindMain:
		return StateMain, false
	case kindGoto:
		return tok.target, false
	case kindCaller, kindExit:
		return current, true
	default:
		return current, true
	}
}

// Package ofx reads OFX/QFX bank statements and turns their lines into
// budget entries: debits become expenses, credits become income.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/budget/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

// DateLayout is the DD/MM/YYYY layout budget dates are stored in.
const DateLayout = "02/01/2006"

var (
	severityPattern = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening SGML tags missing their closing bracket at end of line.
	openTagPattern = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

var descriptionPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"ACH CREDIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

var genericDescriptions = map[string]bool{
	"DEBIT":           true,
	"CREDIT":          true,
	"PURCHASE":        true,
	"PAYMENT":         true,
	"DEPOSIT":         true,
	"POS TRANSACTION": true,
	"CARD PURCHASE":   true,
}

// Entry is one statement line ready to be stored as a transaction.
type Entry struct {
	Amount  decimal.Decimal // absolute value, rounded to cents
	FITID   string
	Date    string
	Remarks string
	Type    model.TransactionType
}

// Statement is the parsed content of one OFX document.
type Statement struct {
	Accounts []string
	Entries  []Entry
}

// Parser converts OFX documents into budget entries.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads an OFX/QFX document. Zero-amount lines are skipped.
func (p *Parser) Parse(ctx context.Context, reader io.Reader) (Statement, error) {
	if err := ctx.Err(); err != nil {
		return Statement{}, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return Statement{}, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return Statement{}, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	accounts := make(map[string]bool)
	var stmt Statement

	for _, msg := range resp.Bank {
		bank, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			continue
		}
		accounts[string(bank.BankAcctFrom.AcctID)] = true
		if bank.BankTranList != nil {
			stmt.Entries = append(stmt.Entries, p.convertAll(bank.BankTranList.Transactions)...)
		}
	}

	for _, msg := range resp.CreditCard {
		card, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			continue
		}
		accounts[string(card.CCAcctFrom.AcctID)] = true
		if card.BankTranList != nil {
			stmt.Entries = append(stmt.Entries, p.convertAll(card.BankTranList.Transactions)...)
		}
	}

	for account := range accounts {
		if account != "" {
			stmt.Accounts = append(stmt.Accounts, account)
		}
	}
	sort.Strings(stmt.Accounts)

	slog.Info("Parsed OFX file",
		"entries", len(stmt.Entries),
		"accounts", len(stmt.Accounts))

	return stmt, nil
}

func (p *Parser) convertAll(transactions []ofxgo.Transaction) []Entry {
	entries := make([]Entry, 0, len(transactions))
	for _, tx := range transactions {
		entry, ok := p.convert(tx)
		if !ok {
			slog.Debug("Skipping zero-amount OFX line", "fitid", tx.FiTID)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// convert maps one OFX line. OFX signs debits negative.
func (p *Parser) convert(tx ofxgo.Transaction) (Entry, bool) {
	amount := decimal.NewFromBigRat(&tx.TrnAmt.Rat, 2)
	if amount.IsZero() {
		return Entry{}, false
	}

	txType := model.TransactionTypeIncome
	if amount.IsNegative() {
		txType = model.TransactionTypeExpense
	}

	return Entry{
		Amount:  amount.Abs(),
		FITID:   string(tx.FiTID),
		Date:    tx.DtPosted.Format(DateLayout),
		Remarks: describe(tx),
		Type:    txType,
	}, true
}

// describe picks a readable description for the remark field.
func describe(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && genericDescriptions[strings.ToUpper(name)] {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range descriptionPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " left by some banks.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// preprocess fixes formatting that ofxgo rejects.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityPattern.ReplaceAllStringFunc(content, strings.ToUpper)
	return openTagPattern.ReplaceAllString(content, "$1>")
}

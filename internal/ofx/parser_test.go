package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/budget/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Statements in the SGML dialect most banks still export.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240402090000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>021000021
<ACCTID>000987654321
<ACCTTYPE>SAVINGS
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240301120000[0:GMT]
<DTEND>20240331120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240304120000[0:GMT]
<TRNAMT>-18.40
<FITID>SAV0304A
<NAME>POS PURCHASE GREEN GROCER
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240309120000[0:GMT]
<TRNAMT>-950.00
<FITID>SAV0309A
<NAME>Riverside Lettings
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240317120000[0:GMT]
<TRNAMT>-60.00
<FITID>SAV0317A
<CHECKNUM>2051
<NAME>CHECK #2051
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240329120000[0:GMT]
<TRNAMT>2450.75
<FITID>SAV0329A
<NAME>ACH CREDIT NORTHWIND PAYROLL
</STMTTRN>
<STMTTRN>
<TRNTYPE>OTHER
<DTPOSTED>20240331120000[0:GMT]
<TRNAMT>0.00
<FITID>SAV0331A
<NAME>INTEREST ADJUSTMENT
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>3120.35
<DTASOF>20240331120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240402090000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>5500000000000004
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240301120000[0:GMT]
<DTEND>20240331120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240305120000[0:GMT]
<TRNAMT>-32.19
<FITID>CC0305A
<NAME>BOOKSHOP*ORDER 88123
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240312120000[0:GMT]
<TRNAMT>-11.99
<FITID>CC0312A
<NAME>STREAMFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-44.18
<DTASOF>20240331120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParse(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{name: "bank statement", ofxData: sampleBankOFX, expectedCount: 4},
		{name: "credit card statement", ofxData: sampleCreditCardOFX, expectedCount: 2},
		{name: "leading blank lines", ofxData: "\n\n  " + sampleCreditCardOFX, expectedCount: 2},
		{name: "invalid OFX data", ofxData: "not valid OFX", expectedError: true},
		{name: "empty OFX", ofxData: "", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := NewParser().Parse(context.Background(), strings.NewReader(tt.ofxData))
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, stmt.Entries, tt.expectedCount)
		})
	}
}

func TestParse_BankEntries(t *testing.T) {
	stmt, err := NewParser().Parse(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, stmt.Entries, 4)
	assert.Equal(t, []string{"000987654321"}, stmt.Accounts)

	tests := []struct {
		fitid   string
		amount  string
		date    string
		remarks string
		txType  model.TransactionType
	}{
		{fitid: "SAV0304A", amount: "18.40", date: "04/03/2024", remarks: "GREEN GROCER", txType: model.TransactionTypeExpense},
		{fitid: "SAV0309A", amount: "950.00", date: "09/03/2024", remarks: "Riverside Lettings", txType: model.TransactionTypeExpense},
		{fitid: "SAV0317A", amount: "60.00", date: "17/03/2024", remarks: "CHECK #2051", txType: model.TransactionTypeExpense},
		{fitid: "SAV0329A", amount: "2450.75", date: "29/03/2024", remarks: "NORTHWIND PAYROLL", txType: model.TransactionTypeIncome},
	}

	for i, want := range tests {
		got := stmt.Entries[i]
		assert.Equal(t, want.fitid, got.FITID)
		assert.True(t, decimal.RequireFromString(want.amount).Equal(got.Amount), "entry %s amount %s", want.fitid, got.Amount)
		assert.Equal(t, want.date, got.Date)
		assert.Equal(t, want.remarks, got.Remarks)
		assert.Equal(t, want.txType, got.Type)
	}
}

func TestParse_CreditCardEntries(t *testing.T) {
	stmt, err := NewParser().Parse(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, stmt.Entries, 2)
	assert.Equal(t, []string{"5500000000000004"}, stmt.Accounts)

	assert.Equal(t, "BOOKSHOP*ORDER 88123", stmt.Entries[0].Remarks)
	assert.True(t, decimal.RequireFromString("32.19").Equal(stmt.Entries[0].Amount))
	assert.Equal(t, "05/03/2024", stmt.Entries[0].Date)
	assert.Equal(t, model.TransactionTypeExpense, stmt.Entries[1].Type)
}

func TestParse_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser().Parse(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		tx       ofxgo.Transaction
		expected string
	}{
		{name: "remove POS prefix", tx: ofxgo.Transaction{Name: "POS PURCHASE HILLTOP BAKERY"}, expected: "HILLTOP BAKERY"},
		{name: "remove DEBIT CARD prefix", tx: ofxgo.Transaction{Name: "DEBIT CARD PURCHASE FARM STAND"}, expected: "FARM STAND"},
		{name: "keep clean name", tx: ofxgo.Transaction{Name: "CITYTRANSIT.GOV"}, expected: "CITYTRANSIT.GOV"},
		{name: "trim whitespace", tx: ofxgo.Transaction{Name: "  PHARMACY 22  "}, expected: "PHARMACY 22"},
		{name: "strip leading date", tx: ofxgo.Transaction{Name: "01/15 CORNER DELI"}, expected: "CORNER DELI"},
		{name: "generic name falls back to memo", tx: ofxgo.Transaction{Name: "DEBIT", Memo: "CITY WATER"}, expected: "CITY WATER"},
		{name: "payee wins", tx: ofxgo.Transaction{Name: "ACH DEBIT 123", Payee: &ofxgo.Payee{Name: "Landlord LLC"}}, expected: "Landlord LLC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, describe(tt.tx))
		})
	}
}

func TestPreprocess(t *testing.T) {
	in := "\n\n<STATUS>\n<SEVERITY>Info</SEVERITY>\n<CODE\n</STATUS>"
	out := preprocess(in)
	assert.True(t, strings.HasPrefix(out, "<STATUS>"))
	assert.Contains(t, out, "<SEVERITY>INFO</SEVERITY>")
	assert.Contains(t, out, "<CODE>")
}

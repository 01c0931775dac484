// Package export writes transactions in interchange formats for use
// outside the app.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/model"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

var csvHeader = []string{"id", "date", "amount", "category", "remarks", "type"}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: export format %q", common.ErrInvalidConfig, s)
	}
}

// Record is the exported shape of a transaction. Amounts keep two decimals.
type Record struct {
	Date     string `json:"date" yaml:"date"`
	Amount   string `json:"amount" yaml:"amount"`
	Category string `json:"category" yaml:"category"`
	Remarks  string `json:"remarks" yaml:"remarks"`
	Type     string `json:"type" yaml:"type"`
	ID       int    `json:"id" yaml:"id"`
}

// NewRecord converts a transaction.
func NewRecord(t model.Transaction) Record {
	return Record{
		ID:       t.ID,
		Date:     t.Date,
		Amount:   t.FormattedAmount(),
		Category: t.Category,
		Remarks:  t.Remarks,
		Type:     string(t.Type),
	}
}

// Write encodes transactions to w in the given format.
func Write(w io.Writer, format Format, transactions []model.Transaction) error {
	records := make([]Record, len(transactions))
	for i, t := range transactions {
		records[i] = NewRecord(t)
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatCSV:
		return writeCSV(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	default:
		return fmt.Errorf("%w: export format %q", common.ErrInvalidConfig, format)
	}
}

func writeJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range records {
		row := []string{strconv.Itoa(r.ID), r.Date, r.Amount, r.Category, r.Remarks, r.Type}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, records []Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing yaml encoder: %w", err)
	}
	return nil
}

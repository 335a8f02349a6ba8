package services

import (
	"strconv"
	"strings"
)

// csvHeader is the first line of every export, present even when no
// transaction matches the filter.
const csvHeader = "ID,Category,Amount,Type,Description,Date"

// exportService serializes transactions to CSV.
type exportService struct {
	transactions TransactionServicer
}

// NewExportService creates a new ExportServicer.
func NewExportService(transactions TransactionServicer) ExportServicer {
	return &exportService{transactions: transactions}
}

// ExportCSV renders the transactions matching the filter as a CSV document,
// one row per transaction in list order. Text fields are always quoted with
// embedded quotes doubled, so commas, quotes, and newlines in values cannot
// break the row structure.
func (s *exportService) ExportCSV(filter TransactionFilter) (string, error) {
	transactions, err := s.transactions.GetTransactions(filter)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, t := range transactions {
		b.WriteString(strconv.FormatUint(uint64(t.ID), 10))
		b.WriteByte(',')
		b.WriteString(quoteField(t.Category))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(t.Amount, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(quoteField(string(t.Type)))
		b.WriteByte(',')
		b.WriteString(quoteField(t.Description))
		b.WriteByte(',')
		b.WriteString(quoteField(t.Date))
		b.WriteByte('\n')
	}

	return b.String(), nil
}

func quoteField(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

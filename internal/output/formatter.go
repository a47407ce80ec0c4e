// Package output renders calculator reports for the console, files and the API.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(report *domain.Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *domain.Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.Report) ([]byte, error) { return f.F(report) }

// FormatterNames lists the names accepted by GetFormatterByName
func FormatterNames() []string {
	return []string{"console", "console-lite", "csv", "html", "json"}
}

// GetFormatterByName returns the formatter registered under name
func GetFormatterByName(name string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "console", "verbose":
		return ConsoleFormatter{}, nil
	case "console-lite", "summary":
		return ConsoleLiteFormatter{}, nil
	case "csv":
		return CSVFormatter{}, nil
	case "html":
		return HTMLFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (expected one of %s)", name, strings.Join(FormatterNames(), ", "))
	}
}

// WriteFormatted renders the report and writes it to a timestamped file in
// the working directory, returning the filename.
func WriteFormatted(f Formatter, report *domain.Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("maplemetrics_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return filename, nil
}

// FormatCurrency formats a decimal as currency with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

func reportTitle(r *domain.Report) string {
	if r.Title != "" {
		return r.Title
	}
	return "MapleMetrics Report"
}

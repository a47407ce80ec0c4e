package output

import (
	"encoding/json"

	"github.com/maplemetrics/maplemetrics/internal/domain"
)

// JSONFormatter renders the report as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *domain.Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

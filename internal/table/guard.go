package table

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports every required column absent from a table.
type MissingColumnsError struct {
	Table   string
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("table %q missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// RequireColumns confirms every required column is present by exact name.
// All missing columns are reported at once. No side effects.
func RequireColumns(t *Table, name string, required []string) error {
	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Table: name, Missing: missing}
	}
	return nil
}

package checks

import (
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// HistoryReport describes the schema of the pass history table.
type HistoryReport struct {
	Table          string   `json:"table"`
	Exists         bool     `json:"exists"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckHistory compares the table of model against its GORM schema.
func CheckHistory(db *gorm.DB, model interface{}) (*HistoryReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, fmt.Errorf("failed to parse model schema: %w", err)
	}

	report := &HistoryReport{
		Table:          stmt.Schema.Table,
		MissingColumns: []string{},
		Status:         "ok",
	}

	m := db.Migrator()
	if !m.HasTable(model) {
		report.Status = "error"
		return report, nil
	}
	report.Exists = true

	for _, col := range stmt.Schema.DBNames {
		if !m.HasColumn(model, col) {
			report.MissingColumns = append(report.MissingColumns, col)
		}
	}
	sort.Strings(report.MissingColumns)
	if len(report.MissingColumns) > 0 {
		report.Status = "error"
	}
	return report, nil
}

package checks

import (
	"fmt"

	"order-manager/core/database"
	"order-manager/core/models"

	"gorm.io/gorm"
)

// SchemaReport lists, per table, the model columns the database lacks.
type SchemaReport struct {
	Matched bool                `json:"matched"`
	Missing map[string][]string `json:"missing,omitempty"`
}

// CheckSchema compares every migrated model against the live table columns.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{Matched: true}
	for _, model := range models.All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}

		missing, err := database.MissingColumns(db, stmt.Schema.Table, stmt.Schema.DBNames)
		if err != nil {
			return nil, err
		}
		if len(missing) == 0 {
			continue
		}
		if report.Missing == nil {
			report.Missing = make(map[string][]string)
		}
		report.Missing[stmt.Schema.Table] = missing
		report.Matched = false
	}
	return report, nil
}

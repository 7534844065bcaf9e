package models

import "time"

// Run represents one execution instance under an experiment.
// It corresponds to the 'runs' table.
type Run struct {
	ID           int64     `gorm:"column:run_id;primaryKey;autoIncrement" json:"run_id"`
	ExperimentID int64     `gorm:"column:experiment_id;not null;index" json:"experiment_id"`
	RunDate      time.Time `gorm:"not null" json:"run_date"` // stored as UTC
	Accuracy     *float64  `json:"accuracy,omitempty"`       // Nullable, within [0.0, 1.0]
	Flagged      *bool     `json:"flagged,omitempty"`        // Nullable

	// Relationships
	Images []Image `gorm:"foreignKey:RunID;references:ID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Run) TableName() string {
	return "runs"
}

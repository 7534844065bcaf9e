package models

import "time"

// Experiment represents a named grouping of runs in the database using GORM.
// It corresponds to the 'experiments' table.
type Experiment struct {
	ID          int64     `gorm:"column:experiment_id;primaryKey;autoIncrement" json:"experiment_id"`
	Name        string    `gorm:"size:255;not null;unique" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"` // Nullable
	CreatedDate time.Time `gorm:"type:date;not null" json:"created_date"`

	// Relationships
	Runs []Run `gorm:"foreignKey:ExperimentID;references:ID;constraint:OnDelete:CASCADE" json:"runs,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Experiment) TableName() string {
	return "experiments"
}

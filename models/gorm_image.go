package models

import "time"

// Image represents an annotated image record belonging to a run.
// It corresponds to the 'images' table. The attack type is constrained at the
// storage level too, as defense in depth with the schemas package.
type Image struct {
	ID           int64       `gorm:"column:image_id;primaryKey;autoIncrement" json:"image_id"`
	RunID        int64       `gorm:"column:run_id;not null;index" json:"run_id"`
	FilePath     string      `gorm:"size:500;not null;unique" json:"file_path"`
	OriginalName *string     `gorm:"size:255" json:"original_name,omitempty"` // Nullable
	AttackType   AttackType  `gorm:"size:20;not null;check:attack_type IN ('no_attack','blur','noise','adversarial','other')" json:"attack_type"`
	AddedDate    time.Time   `gorm:"not null" json:"added_date"` // UTC, truncated to the second
	Coordinates  Coordinates `json:"coordinates,omitempty"`      // Nullable

	// best-effort metadata recovered from the file at FilePath, if readable
	Width   *int   `json:"width,omitempty"`    // Nullable
	Height  *int   `json:"height,omitempty"`   // Nullable
	TakenAt *int64 `json:"taken_at,omitempty"` // Nullable, Unix timestamp from EXIF
}

// TableName explicitly sets the table name for GORM.
func (Image) TableName() string {
	return "images"
}

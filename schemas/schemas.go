package schemas

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/FireFly4ik/db-kr-1/models"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// todayUTC is the current UTC day at midnight, the reference point for
// date-only "not in the future" checks.
func todayUTC() time.Time {
	return nowUTC().Truncate(24 * time.Hour)
}

// normalizeOptionalText trims an optional string and collapses the empty
// result to absent.
func normalizeOptionalText(v *string) *string {
	if v == nil {
		return nil
	}
	vv := strings.TrimSpace(*v)
	if vv == "" {
		return nil
	}
	return &vv
}

// ExperimentCreate carries the input for creating or editing an experiment.
// Validate normalizes the fields in place.
type ExperimentCreate struct {
	Name        string
	Description *string
	CreatedDate *time.Time
}

func (s *ExperimentCreate) Validate() error {
	ve := &ValidationError{}

	name := strings.TrimSpace(s.Name)
	switch {
	case name == "":
		ve.add("name", s.Name, "name must not be an empty string")
	case utf8.RuneCountInString(name) > 255:
		ve.add("name", s.Name, "name is longer than 255 characters")
	default:
		s.Name = name
	}

	s.Description = normalizeOptionalText(s.Description)

	if s.CreatedDate != nil {
		d := s.CreatedDate.UTC().Truncate(24 * time.Hour)
		if d.After(todayUTC()) {
			ve.add("created_date", *s.CreatedDate, "created_date must not be in the future")
		} else {
			*s.CreatedDate = d
		}
	}

	return ve.orNil()
}

// RunCreate carries the input for creating a run.
type RunCreate struct {
	ExperimentID int64
	RunDate      *time.Time
	Accuracy     *float64
	Flagged      *bool
}

func (s *RunCreate) Validate() error {
	ve := &ValidationError{}

	if s.RunDate != nil {
		dt := s.RunDate.UTC()
		if dt.After(nowUTC()) {
			ve.add("run_date", *s.RunDate, "run_date must not be in the future")
		} else {
			*s.RunDate = dt
		}
	}

	if s.Accuracy != nil {
		validateAccuracy(ve, *s.Accuracy)
	}

	return ve.orNil()
}

// RunEdit carries the input for editing a run. Unlike RunCreate, every field
// is required.
type RunEdit struct {
	ExperimentID int64
	Accuracy     float64
	Flagged      bool
}

func (s *RunEdit) Validate() error {
	ve := &ValidationError{}
	validateAccuracy(ve, s.Accuracy)
	return ve.orNil()
}

func validateAccuracy(ve *ValidationError, v float64) {
	if math.IsNaN(v) || v < 0.0 || v > 1.0 {
		ve.add("accuracy", v, "accuracy must be within [0.0, 1.0]")
	}
}

// ImageCreate carries the input for creating an image record.
type ImageCreate struct {
	RunID        int64
	FilePath     string
	OriginalName *string
	AttackType   models.AttackType
	AddedDate    *time.Time
	Coordinates  models.Coordinates
}

func (s *ImageCreate) Validate() error {
	ve := &ValidationError{}

	fp := strings.TrimSpace(s.FilePath)
	switch {
	case fp == "":
		ve.add("file_path", s.FilePath, "file_path must not be an empty string")
	case utf8.RuneCountInString(fp) > 500:
		ve.add("file_path", s.FilePath, "file_path is longer than 500 characters")
	default:
		s.FilePath = fp
	}

	s.OriginalName = normalizeOptionalText(s.OriginalName)
	if s.OriginalName != nil && utf8.RuneCountInString(*s.OriginalName) > 255 {
		ve.add("original_name", *s.OriginalName, "original_name is longer than 255 characters")
	}

	validateAttackType(ve, s.AttackType)

	if s.AddedDate != nil {
		dt := s.AddedDate.UTC()
		if dt.After(nowUTC()) {
			ve.add("added_date", *s.AddedDate, "added_date must not be in the future")
		} else {
			*s.AddedDate = dt
		}
	}

	if s.Coordinates != nil && len(s.Coordinates) != 4 {
		ve.add("coordinates", s.Coordinates, "coordinates must contain exactly 4 integers")
	}

	return ve.orNil()
}

// ImageEdit carries the input for editing an image.
type ImageEdit struct {
	RunID      int64
	AttackType models.AttackType
}

func (s *ImageEdit) Validate() error {
	ve := &ValidationError{}
	validateAttackType(ve, s.AttackType)
	return ve.orNil()
}

func validateAttackType(ve *ValidationError, v models.AttackType) {
	if !v.Valid() {
		ve.add("attack_type", v, fmt.Sprintf("attack_type must be one of %v", models.AttackTypes()))
	}
}

// CoordinatesFromFloats coerces a JSON-decoded number sequence into image
// coordinates. Floats carrying an integral value are accepted; anything
// fractional or non-finite is rejected. A nil input stays absent.
func CoordinatesFromFloats(vals []float64) (models.Coordinates, error) {
	if vals == nil {
		return nil, nil
	}
	coords := make(models.Coordinates, 0, len(vals))
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Trunc(v) != v {
			ve := &ValidationError{}
			ve.add("coordinates", vals, "all coordinates elements must be integers")
			return nil, ve
		}
		coords = append(coords, int64(v))
	}
	return coords, nil
}

package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/FireFly4ik/db-kr-1/database"
	"github.com/FireFly4ik/db-kr-1/models"
	"github.com/FireFly4ik/db-kr-1/schemas"
)

// RunRepository handles database operations for Run entities
type RunRepository struct {
	DB *gorm.DB
}

// NewRunRepository creates a new instance of RunRepository
func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{DB: db}
}

// Create validates and stores a new run under an existing experiment. The
// run date is set to the current UTC time.
func (r *RunRepository) Create(experimentID int64, accuracy *float64, flagged *bool) error {
	now := time.Now().UTC()
	input := schemas.RunCreate{
		ExperimentID: experimentID,
		RunDate:      &now,
		Accuracy:     accuracy,
		Flagged:      flagged,
	}
	if err := input.Validate(); err != nil {
		return err
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		var exp models.Experiment
		if err := tx.First(&exp, "experiment_id = ?", experimentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Experiment", ID: experimentID}
			}
			return fmt.Errorf("failed to look up experiment %d: %w", experimentID, err)
		}

		run := models.Run{
			ExperimentID: experimentID,
			RunDate:      *input.RunDate,
			Accuracy:     input.Accuracy,
			Flagged:      input.Flagged,
		}
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("failed to create run for experiment %d: %w", experimentID, err)
		}
		return nil
	})
}

// ListAll retrieves all runs in storage order.
func (r *RunRepository) ListAll() ([]models.Run, error) {
	var runs []models.Run
	if err := r.DB.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetByID returns the run with the given id, or nil when it does not exist.
func (r *RunRepository) GetByID(id int64) (*models.Run, error) {
	var run models.Run
	err := r.DB.First(&run, "run_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run by ID %d: %w", id, err)
	}
	return &run, nil
}

// Update replaces the accuracy, flagged state and owning experiment of an
// existing run. All fields are required; updating a missing run is a no-op.
// The new experiment id is not re-checked here, the FK constraint rejects
// dangling references at the storage level.
func (r *RunRepository) Update(experimentID, runID int64, accuracy float64, flagged bool) error {
	input := schemas.RunEdit{ExperimentID: experimentID, Accuracy: accuracy, Flagged: flagged}
	if err := input.Validate(); err != nil {
		return err
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Run{}).Where("run_id = ?", runID).Updates(map[string]interface{}{
			"experiment_id": input.ExperimentID,
			"accuracy":      input.Accuracy,
			"flagged":       input.Flagged,
		})
		if result.Error != nil {
			return fmt.Errorf("failed to update run ID %d: %w", runID, result.Error)
		}
		return nil
	})
}

// Delete removes a run and, through the FK constraints, its images. Deleting
// a missing run is a no-op.
func (r *RunRepository) Delete(id int64) error {
	result := r.DB.Delete(&models.Run{}, "run_id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete run ID %d: %w", id, result.Error)
	}
	return nil
}

// MaxID returns the highest run id in use, or 0 on an empty table. Display
// hint only, never an id reservation.
func (r *RunRepository) MaxID() (int64, error) {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}
	return database.MaxID(sqlDB, "runs", "run_id")
}

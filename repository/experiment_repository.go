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

// ExperimentRepository handles database operations for Experiment entities
type ExperimentRepository struct {
	DB *gorm.DB
}

// NewExperimentRepository creates a new instance of ExperimentRepository
func NewExperimentRepository(db *gorm.DB) *ExperimentRepository {
	return &ExperimentRepository{DB: db}
}

// Create validates and stores a new experiment. The creation date is set to
// the current UTC day; the identifier is assigned by the database.
func (r *ExperimentRepository) Create(name string, description *string) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	input := schemas.ExperimentCreate{Name: name, Description: description, CreatedDate: &today}
	if err := input.Validate(); err != nil {
		return err
	}

	exp := models.Experiment{
		Name:        input.Name,
		Description: input.Description,
		CreatedDate: *input.CreatedDate,
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&exp).Error; err != nil {
			return fmt.Errorf("failed to create experiment %s: %w", exp.Name, err)
		}
		return nil
	})
}

// ListAll retrieves all experiments in storage order.
func (r *ExperimentRepository) ListAll() ([]models.Experiment, error) {
	var experiments []models.Experiment
	if err := r.DB.Find(&experiments).Error; err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	return experiments, nil
}

// GetByID returns the experiment with the given id, or nil when it does not exist.
func (r *ExperimentRepository) GetByID(id int64) (*models.Experiment, error) {
	var exp models.Experiment
	err := r.DB.First(&exp, "experiment_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get experiment by ID %d: %w", id, err)
	}
	return &exp, nil
}

// Update replaces the name and description of an existing experiment.
// Updating a missing experiment is a no-op.
func (r *ExperimentRepository) Update(id int64, name string, description *string) error {
	input := schemas.ExperimentCreate{Name: name, Description: description}
	if err := input.Validate(); err != nil {
		return err
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Experiment{}).Where("experiment_id = ?", id).Updates(map[string]interface{}{
			"name":        input.Name,
			"description": input.Description,
		})
		if result.Error != nil {
			return fmt.Errorf("failed to update experiment ID %d: %w", id, result.Error)
		}
		return nil
	})
}

// Delete removes an experiment; the FK constraints cascade the delete to its
// runs and their images. Deleting a missing experiment is a no-op.
func (r *ExperimentRepository) Delete(id int64) error {
	result := r.DB.Delete(&models.Experiment{}, "experiment_id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete experiment ID %d: %w", id, result.Error)
	}
	return nil
}

// MaxID returns the highest experiment id in use, or 0 on an empty table.
// Display hint only, never an id reservation.
func (r *ExperimentRepository) MaxID() (int64, error) {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}
	return database.MaxID(sqlDB, "experiments", "experiment_id")
}

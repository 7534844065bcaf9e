package repository

import (
	"time"

	"github.com/FireFly4ik/db-kr-1/media"
	"github.com/FireFly4ik/db-kr-1/models"
)

// ExperimentRepositoryInterface defines the methods for experiment data operations
type ExperimentRepositoryInterface interface {
	Create(name string, description *string) error
	ListAll() ([]models.Experiment, error)
	GetByID(id int64) (*models.Experiment, error)
	Update(id int64, name string, description *string) error
	Delete(id int64) error
	MaxID() (int64, error)
}

// RunRepositoryInterface defines the methods for run data operations
type RunRepositoryInterface interface {
	Create(experimentID int64, accuracy *float64, flagged *bool) error
	ListAll() ([]models.Run, error)
	GetByID(id int64) (*models.Run, error)
	Update(experimentID, runID int64, accuracy float64, flagged bool) error
	Delete(id int64) error
	MaxID() (int64, error)
}

// ImageRepositoryInterface defines the methods for image data operations
type ImageRepositoryInterface interface {
	Create(runID int64, filePath string, attackType models.AttackType, originalName *string, addedDate *time.Time, coordinates models.Coordinates) error
	ListAll() ([]models.Image, error)
	ListFiltered(filters ImageFilters) ([]ImageWithExperiment, error)
	GetByID(id int64) (*models.Image, error)
	GetByPath(filePath string) (*models.Image, error)
	Update(imageID, runID int64, attackType models.AttackType) error
	UpdateMetadata(imageID int64, meta *media.Metadata) error
	Delete(id int64) error
}

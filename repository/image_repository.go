package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/facette/natsort"
	"gorm.io/gorm"

	"github.com/FireFly4ik/db-kr-1/database"
	"github.com/FireFly4ik/db-kr-1/media"
	"github.com/FireFly4ik/db-kr-1/models"
	"github.com/FireFly4ik/db-kr-1/schemas"
)

// ImageRepository handles database operations for Image entities
type ImageRepository struct {
	DB *gorm.DB
}

// NewImageRepository creates a new instance of ImageRepository
func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{DB: db}
}

// ImageFilters narrows and orders the filtered image listing. Nil fields are
// ignored.
type ImageFilters struct {
	AttackType *models.AttackType // exact match
	FileType   *string            // literal, case-sensitive path suffix
	SortID     *string            // database.SortIDAsc / SortIDDesc; absent means ascending
	SortPath   *string            // database.SortPathNatural reorders by path after the query
}

// ImageWithExperiment is an image annotated with the id of the experiment
// owning its parent run. The experiment id is computed by a join, not stored
// on the image row.
type ImageWithExperiment struct {
	models.Image
	ExperimentID int64 `gorm:"column:experiment_id" json:"experiment_id"`
}

// Create validates and stores a new image record under an existing run. When
// no added date is supplied it defaults to the current UTC time truncated to
// the second.
func (r *ImageRepository) Create(runID int64, filePath string, attackType models.AttackType, originalName *string, addedDate *time.Time, coordinates models.Coordinates) error {
	input := schemas.ImageCreate{
		RunID:        runID,
		FilePath:     filePath,
		OriginalName: originalName,
		AttackType:   attackType,
		AddedDate:    addedDate,
		Coordinates:  coordinates,
	}
	if err := input.Validate(); err != nil {
		return err
	}

	added := time.Now().UTC().Truncate(time.Second)
	if input.AddedDate != nil {
		added = input.AddedDate.Truncate(time.Second)
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		var run models.Run
		if err := tx.First(&run, "run_id = ?", runID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Run", ID: runID}
			}
			return fmt.Errorf("failed to look up run %d: %w", runID, err)
		}

		img := models.Image{
			RunID:        runID,
			FilePath:     input.FilePath,
			OriginalName: input.OriginalName,
			AttackType:   input.AttackType,
			AddedDate:    added,
			Coordinates:  input.Coordinates,
		}
		if err := tx.Create(&img).Error; err != nil {
			return fmt.Errorf("failed to create image %s: %w", img.FilePath, err)
		}
		return nil
	})
}

// ListAll retrieves all images in storage order.
func (r *ImageRepository) ListAll() ([]models.Image, error) {
	var images []models.Image
	if err := r.DB.Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

// ListFiltered retrieves images matching the filters, each annotated with the
// id of the experiment owning its parent run. Results are ordered by image id
// (ascending unless SortID asks for descending); the suffix filter is applied
// after the query because it is a literal, case-sensitive match.
func (r *ImageRepository) ListFiltered(filters ImageFilters) ([]ImageWithExperiment, error) {
	query := r.DB.Model(&models.Image{}).
		Select("images.*, runs.experiment_id AS experiment_id").
		Joins("JOIN runs ON runs.run_id = images.run_id")

	if filters.AttackType != nil {
		query = query.Where("images.attack_type = ?", *filters.AttackType)
	}

	if filters.SortID != nil && *filters.SortID == database.SortIDDesc {
		query = query.Order("images.image_id DESC")
	} else {
		query = query.Order("images.image_id ASC")
	}

	var rows []ImageWithExperiment
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list filtered images: %w", err)
	}

	if filters.FileType != nil && *filters.FileType != "" {
		kept := rows[:0]
		for _, row := range rows {
			if strings.HasSuffix(row.FilePath, *filters.FileType) {
				kept = append(kept, row)
			}
		}
		rows = kept
	}

	if filters.SortPath != nil && *filters.SortPath == database.SortPathNatural {
		sort.SliceStable(rows, func(i, j int) bool {
			return natsort.Compare(rows[i].FilePath, rows[j].FilePath)
		})
	}

	return rows, nil
}

// GetByID returns the image with the given id, or nil when it does not exist.
func (r *ImageRepository) GetByID(id int64) (*models.Image, error) {
	var img models.Image
	err := r.DB.First(&img, "image_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image by ID %d: %w", id, err)
	}
	return &img, nil
}

// GetByPath returns the image with the given file path, or nil when it does
// not exist.
func (r *ImageRepository) GetByPath(filePath string) (*models.Image, error) {
	var img models.Image
	err := r.DB.First(&img, "file_path = ?", filePath).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image by path %s: %w", filePath, err)
	}
	return &img, nil
}

// Update replaces the attack type and owning run of an existing image.
// Updating a missing image is a no-op. The new run id is not re-checked here,
// the FK constraint rejects dangling references at the storage level.
func (r *ImageRepository) Update(imageID, runID int64, attackType models.AttackType) error {
	input := schemas.ImageEdit{RunID: runID, AttackType: attackType}
	if err := input.Validate(); err != nil {
		return err
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Image{}).Where("image_id = ?", imageID).Updates(map[string]interface{}{
			"run_id":      input.RunID,
			"attack_type": input.AttackType,
		})
		if result.Error != nil {
			return fmt.Errorf("failed to update image ID %d: %w", imageID, result.Error)
		}
		return nil
	})
}

// UpdateMetadata stores a best-effort file probe result on an existing image.
// Updating a missing image is a no-op.
func (r *ImageRepository) UpdateMetadata(imageID int64, meta *media.Metadata) error {
	if meta == nil {
		return nil
	}
	result := r.DB.Model(&models.Image{}).Where("image_id = ?", imageID).Updates(map[string]interface{}{
		"width":    meta.Width,
		"height":   meta.Height,
		"taken_at": meta.TakenAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update metadata for image ID %d: %w", imageID, result.Error)
	}
	return nil
}

// Delete removes an image by its id. Deleting a missing image is a no-op.
func (r *ImageRepository) Delete(id int64) error {
	result := r.DB.Delete(&models.Image{}, "image_id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete image ID %d: %w", id, result.Error)
	}
	return nil
}

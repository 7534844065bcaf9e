package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/FireFly4ik/db-kr-1/database"
	"github.com/FireFly4ik/db-kr-1/logging"
	"github.com/FireFly4ik/db-kr-1/media"
	"github.com/FireFly4ik/db-kr-1/models"
	"github.com/FireFly4ik/db-kr-1/repository"
	"github.com/FireFly4ik/db-kr-1/schemas"
)

type ImageHandler struct {
	Repo repository.ImageRepositoryInterface
}

func (h *ImageHandler) CreateImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RunID        int64             `json:"run_id"`
		FilePath     string            `json:"file_path"`
		OriginalName *string           `json:"original_name"`
		AttackType   models.AttackType `json:"attack_type"`
		AddedDate    *time.Time        `json:"added_date"`
		Coordinates  []float64         `json:"coordinates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "invalid request body: "+err.Error())
		return
	}

	coords, err := schemas.CoordinatesFromFloats(req.Coordinates)
	if err != nil {
		writeOperationError(w, err)
		return
	}

	if err := h.Repo.Create(req.RunID, req.FilePath, req.AttackType, req.OriginalName, req.AddedDate, coords); err != nil {
		writeOperationError(w, err)
		return
	}

	h.captureMetadata(req.FilePath)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "image created"})
}

// captureMetadata probes the stored file and attaches dimensions/EXIF data to
// the freshly created record. Strictly best-effort: any failure is logged to
// the media channel and the create stands.
func (h *ImageHandler) captureMetadata(filePath string) {
	img, err := h.Repo.GetByPath(filePath)
	if err != nil || img == nil {
		return
	}
	meta, err := media.ExtractMetadata(img.FilePath)
	if err != nil {
		logging.Named("media").Debug("no metadata for %s: %v", img.FilePath, err)
		return
	}
	if err := h.Repo.UpdateMetadata(img.ID, meta); err != nil {
		logging.Named("media").Warn("failed to store metadata for %s: %v", img.FilePath, err)
	}
}

// ListImages serves the filtered listing. Recognized query parameters:
// attack_type, file_type (literal suffix), sort_id (asc|desc) and sort_path
// (natural). Without parameters it returns every image, ascending by id, each
// annotated with its experiment id.
func (h *ImageHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	var filters repository.ImageFilters

	if v := r.URL.Query().Get("attack_type"); v != "" {
		at := models.AttackType(v)
		if !at.Valid() {
			WriteAPIError(w, http.StatusBadRequest, "invalid_filter", "unknown attack_type: "+v)
			return
		}
		filters.AttackType = &at
	}
	if v := r.URL.Query().Get("file_type"); v != "" {
		filters.FileType = &v
	}
	if v := r.URL.Query().Get("sort_id"); v != "" {
		if !database.IsValidSortID(v) {
			WriteAPIError(w, http.StatusBadRequest, "invalid_filter", "sort_id must be 'asc' or 'desc'")
			return
		}
		filters.SortID = &v
	}
	if v := r.URL.Query().Get("sort_path"); v != "" {
		if !database.IsValidSortPath(v) {
			WriteAPIError(w, http.StatusBadRequest, "invalid_filter", "sort_path must be 'natural'")
			return
		}
		filters.SortPath = &v
	}

	images, err := h.Repo.ListFiltered(filters)
	if err != nil {
		writeOperationError(w, err)
		return
	}
	if images == nil {
		images = []repository.ImageWithExperiment{}
	}
	writeJSON(w, http.StatusOK, images)
}

func (h *ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "image_id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "image id must be an integer")
		return
	}

	img, err := h.Repo.GetByID(id)
	if err != nil {
		writeOperationError(w, err)
		return
	}
	if img == nil {
		WriteAPIError(w, http.StatusNotFound, "not_found", "image not found")
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (h *ImageHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "image_id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "image id must be an integer")
		return
	}

	var req struct {
		RunID      *int64             `json:"run_id"`
		AttackType *models.AttackType `json:"attack_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "invalid request body: "+err.Error())
		return
	}
	if req.RunID == nil || req.AttackType == nil {
		WriteAPIError(w, http.StatusBadRequest, "missing_field", "run_id and attack_type are required")
		return
	}

	if err := h.Repo.Update(id, *req.RunID, *req.AttackType); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "image updated"})
}

func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "image_id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "image id must be an integer")
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		writeOperationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/FireFly4ik/db-kr-1/models"
	"github.com/FireFly4ik/db-kr-1/repository"
)

type RunHandler struct {
	Repo repository.RunRepositoryInterface
}

func (h *RunHandler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ExperimentID int64    `json:"experiment_id"`
		Accuracy     *float64 `json:"accuracy"`
		Flagged      *bool    `json:"flagged"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "invalid request body: "+err.Error())
		return
	}

	if err := h.Repo.Create(req.ExperimentID, req.Accuracy, req.Flagged); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "run created"})
}

func (h *RunHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Repo.ListAll()
	if err != nil {
		writeOperationError(w, err)
		return
	}
	if runs == nil {
		runs = []models.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (h *RunHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "run_id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "run id must be an integer")
		return
	}

	run, err := h.Repo.GetByID(id)
	if err != nil {
		writeOperationError(w, err)
		return
	}
	if run == nil {
		WriteAPIError(w, http.StatusNotFound, "not_found", "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (h *RunHandler) UpdateRun(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "run_id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "run id must be an integer")
		return
	}

	// every edit field is required, so pointers distinguish absent from zero
	var req struct {
		ExperimentID *int64   `json:"experiment_id"`
		Accuracy     *float64 `json:"accuracy"`
		Flagged      *bool    `json:"flagged"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "invalid request body: "+err.Error())
		return
	}
	if req.ExperimentID == nil || req.Accuracy == nil || req.Flagged == nil {
		WriteAPIError(w, http.StatusBadRequest, "missing_field", "experiment_id, accuracy and flagged are required")
		return
	}

	if err := h.Repo.Update(*req.ExperimentID, id, *req.Accuracy, *req.Flagged); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "run updated"})
}

func (h *RunHandler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "run_id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "run id must be an integer")
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		writeOperationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RunHandler) GetMaxID(w http.ResponseWriter, r *http.Request) {
	maxID, err := h.Repo.MaxID()
	if err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"max_id": maxID})
}

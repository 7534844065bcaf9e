package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/FireFly4ik/db-kr-1/models"
	"github.com/FireFly4ik/db-kr-1/repository"
)

type ExperimentHandler struct {
	Repo repository.ExperimentRepositoryInterface
}

func parseIDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

func (h *ExperimentHandler) CreateExperiment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "invalid request body: "+err.Error())
		return
	}

	if err := h.Repo.Create(req.Name, req.Description); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "experiment created"})
}

func (h *ExperimentHandler) ListExperiments(w http.ResponseWriter, r *http.Request) {
	experiments, err := h.Repo.ListAll()
	if err != nil {
		writeOperationError(w, err)
		return
	}
	if experiments == nil {
		experiments = []models.Experiment{}
	}
	writeJSON(w, http.StatusOK, experiments)
}

func (h *ExperimentHandler) GetExperiment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "experiment_id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "experiment id must be an integer")
		return
	}

	exp, err := h.Repo.GetByID(id)
	if err != nil {
		writeOperationError(w, err)
		return
	}
	if exp == nil {
		WriteAPIError(w, http.StatusNotFound, "not_found", "experiment not found")
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

func (h *ExperimentHandler) UpdateExperiment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "experiment_id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "experiment id must be an integer")
		return
	}

	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "invalid request body: "+err.Error())
		return
	}

	// updating a missing experiment deliberately reports success: the
	// operation is a no-op, not an error
	if err := h.Repo.Update(id, req.Name, req.Description); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "experiment updated"})
}

func (h *ExperimentHandler) DeleteExperiment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "experiment_id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "experiment id must be an integer")
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		writeOperationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ExperimentHandler) GetMaxID(w http.ResponseWriter, r *http.Request) {
	maxID, err := h.Repo.MaxID()
	if err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"max_id": maxID})
}

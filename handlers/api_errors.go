package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/FireFly4ik/db-kr-1/logging"
	"github.com/FireFly4ik/db-kr-1/repository"
	"github.com/FireFly4ik/db-kr-1/schemas"
)

// APIErrorDetail represents a single error in the standardized error response.
type APIErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIErrorResponse represents the standardized error response body.
type APIErrorResponse struct {
	Errors []APIErrorDetail `json:"errors"`
}

func writeJSON(w http.ResponseWriter, httpStatus int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteAPIError writes a standardized error response with the given HTTP status, code, and detail.
func WriteAPIError(w http.ResponseWriter, httpStatus int, code string, detail string) {
	resp := APIErrorResponse{
		Errors: []APIErrorDetail{
			{
				Code:   code,
				Status: strconv.Itoa(httpStatus),
				Detail: detail,
			},
		},
	}
	writeJSON(w, httpStatus, resp)
}

// writeOperationError maps repository/schema errors onto HTTP statuses:
// validation failures become 400, missing parents 404, everything else 500.
func writeOperationError(w http.ResponseWriter, err error) {
	var ve *schemas.ValidationError
	if errors.As(err, &ve) {
		WriteAPIError(w, http.StatusBadRequest, "validation_error", ve.Error())
		return
	}
	if repository.IsNotFound(err) {
		WriteAPIError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	logging.Default().Error("request failed: %v", err)
	WriteAPIError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

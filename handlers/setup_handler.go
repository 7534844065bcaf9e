package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/FireFly4ik/db-kr-1/database"
	"github.com/FireFly4ik/db-kr-1/logging"
	"github.com/FireFly4ik/db-kr-1/seed"
)

// SetupHandler exposes the destructive reset/seed workflows. Both endpoints
// answer with an ok flag instead of an error status: callers are expected to
// check the flag, mirroring the boolean contract of the persistence bootstrap.
type SetupHandler struct {
	DB *gorm.DB
}

func (h *SetupHandler) RecreateSchema(w http.ResponseWriter, r *http.Request) {
	if err := database.RecreateSchema(h.DB); err != nil {
		logging.Named("database").Error("schema recreation failed: %v", err)
		writeJSON(w, http.StatusOK, map[string]bool{"ok": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *SetupHandler) SeedData(w http.ResponseWriter, r *http.Request) {
	if err := seed.Insert(h.DB); err != nil {
		logging.Named("database").Error("seeding failed: %v", err)
		writeJSON(w, http.StatusOK, map[string]bool{"ok": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

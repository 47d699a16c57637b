package http

import (
	"encoding/json"
	"net/http"
	"time"

	"tally/internal/ledger"
)

type backupSettingsResponse struct {
	AutoBackupEnabled bool    `json:"auto_backup_enabled"`
	LastBackupAt      *string `json:"last_backup_at"`
}

func toBackupSettingsResponse(st ledger.AppState) backupSettingsResponse {
	resp := backupSettingsResponse{AutoBackupEnabled: st.AutoBackupEnabled}
	if st.LastBackupAt != nil {
		s := st.LastBackupAt.UTC().Format(time.RFC3339)
		resp.LastBackupAt = &s
	}
	return resp
}

func (s *Server) handleGetBackupSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toBackupSettingsResponse(s.engine.AppState()))
}

type backupSettingsRequest struct {
	AutoBackupEnabled *bool `json:"auto_backup_enabled"`
}

// handlePutBackupSettings toggles automatic backups. Enabling them kicks off
// a backup in the background; the response never waits on it.
func (s *Server) handlePutBackupSettings(w http.ResponseWriter, r *http.Request) {
	var req backupSettingsRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil || req.AutoBackupEnabled == nil {
		writeError(w, r, http.StatusBadRequest, "validation", "body must set auto_backup_enabled")
		return
	}

	st, err := s.engine.SetAutoBackup(r.Context(), *req.AutoBackupEnabled)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBackupSettingsResponse(st))
}

package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bilancio/internal/advisor"
	"bilancio/internal/core"
	"bilancio/internal/export"
	"bilancio/internal/log"
	"bilancio/internal/storage"
)

func (s *Server) handleSavePeriod(w http.ResponseWriter, r *http.Request) {
	var p core.BudgetPeriod
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid period payload: "+err.Error())
		return
	}

	var (
		saved core.BudgetPeriod
		err   error
	)
	if sourceID := strings.TrimSpace(r.URL.Query().Get("rollover_from")); sourceID != "" {
		saved, err = s.service.CreateWithRollover(r.Context(), p, sourceID)
	} else {
		saved, err = s.service.SavePeriod(r.Context(), p)
	}
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "rollover source not found")
			return
		}
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to save period", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// A write can shift any period's anomaly baseline, so drop every
	// cached report.
	s.reportCache.Purge()

	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := s.service.ListPeriods(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list periods", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if periods == nil {
		periods = []core.BudgetPeriod{}
	}
	respondJSON(w, http.StatusOK, periods)
}

func (s *Server) handleGetPeriod(w http.ResponseWriter, r *http.Request) {
	p, err := s.service.GetPeriod(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePeriod(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeletePeriod(r.Context(), r.PathValue("id")); err != nil {
		respondStorageError(w, err)
		return
	}
	s.reportCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetCurrentPeriod(w http.ResponseWriter, r *http.Request) {
	p, err := s.service.CurrentPeriod(r.Context())
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleSetCurrentPeriod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.ID) == "" {
		respondError(w, http.StatusBadRequest, "body must be {\"id\": \"<period id>\"}")
		return
	}

	if err := s.service.SetCurrentPeriod(r.Context(), req.ID); err != nil {
		respondStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if report, ok := s.reportCache.Get(id); ok {
		respondJSON(w, http.StatusOK, report)
		return
	}

	report, err := s.service.BuildReport(r.Context(), id, time.Now())
	if err != nil {
		respondStorageError(w, err)
		return
	}

	s.reportCache.Set(id, report)
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := s.service.GetPeriod(r.Context(), id); err != nil {
		respondStorageError(w, err)
		return
	}

	text, err := s.service.LatestAdvisory(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		text = advisor.UnavailableMessage
	} else if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load advisory",
			log.FieldComponent, log.ComponentHTTP,
			log.FieldPeriodID, id,
			log.FieldError, err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"advice": text})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Format string `json:"format"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid export request: "+err.Error())
		return
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.service.BuildReport(r.Context(), id, time.Now())
	if err != nil {
		respondStorageError(w, err)
		return
	}

	path, err := s.exporter.Export(report, format)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to export report",
			log.FieldComponent, log.ComponentExport,
			log.FieldPeriodID, id,
			log.FieldFormat, string(format),
			log.FieldError, err)
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}

	// The spreadsheet leg is best effort; the file already exists.
	sheetsExported := false
	if s.appender != nil {
		if err := s.appender.AppendReport(r.Context(), report); err != nil {
			slog.WarnContext(r.Context(), "Spreadsheet export failed",
				log.FieldComponent, log.ComponentSheets,
				log.FieldPeriodID, id,
				log.FieldError, err)
		} else {
			sheetsExported = true
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"path":            path,
		"format":          format,
		"sheets_exported": sheetsExported,
	})
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidPeriod,
		core.ErrInvalidYear,
		core.ErrInvalidMonth,
		core.ErrInvalidDay,
		core.ErrInvalidRange,
		core.ErrInvalidAmount,
		core.ErrEmptyName,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return strings.Contains(err.Error(), "invalid")
}

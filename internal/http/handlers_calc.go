package http

import (
	"log/slog"
	"net/http"
	"strings"

	"bilancio/internal/engine"
	"bilancio/internal/jurisdiction"
)

func (s *Server) handleCalcLoan(w http.ResponseWriter, r *http.Request) {
	var in engine.LoanInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid loan input: "+err.Error())
		return
	}
	if in.Principal <= 0 || in.TermMonths <= 0 {
		respondError(w, http.StatusBadRequest, "principal and term_months must be positive")
		return
	}

	respondJSON(w, http.StatusOK, engine.Amortize(in))
}

func (s *Server) handleCalcGrowth(w http.ResponseWriter, r *http.Request) {
	var in engine.GrowthInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid growth input: "+err.Error())
		return
	}
	if in.Years <= 0 {
		respondError(w, http.StatusBadRequest, "years must be positive")
		return
	}

	respondJSON(w, http.StatusOK, engine.ProjectGrowth(in))
}

type taxRequest struct {
	Gross        float64          `json:"gross"`
	Deductions   float64          `json:"deductions"`
	Jurisdiction string           `json:"jurisdiction"`
	Brackets     []engine.Bracket `json:"brackets"`
}

// handleCalcTax computes progressive income tax from either an explicit
// bracket table or a jurisdiction code. A jurisdiction brings its standard
// deduction, which stacks on top of the itemized deductions in the request.
func (s *Server) handleCalcTax(w http.ResponseWriter, r *http.Request) {
	var req taxRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid tax input: "+err.Error())
		return
	}

	brackets := req.Brackets
	deductions := req.Deductions

	if len(brackets) == 0 {
		code := strings.ToUpper(strings.TrimSpace(req.Jurisdiction))
		if code == "" {
			respondError(w, http.StatusBadRequest, "either brackets or a jurisdiction code is required")
			return
		}
		j, err := jurisdiction.Get(code)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		brackets = j.Brackets
		deductions += j.StandardDeduction
	}

	if !engine.ValidateBrackets(brackets) {
		respondError(w, http.StatusBadRequest, "bracket table must be ascending with an unbounded last bracket")
		return
	}

	respondJSON(w, http.StatusOK, engine.IncomeTax(req.Gross, brackets, deductions))
}

type vatRequest struct {
	Amount    float64              `json:"amount"`
	RatePct   float64              `json:"rate_pct"`
	Inclusive bool                 `json:"inclusive"`
	Lines     []engine.InvoiceLine `json:"lines"`
}

// handleCalcVAT converts a single amount, or an itemized invoice where each
// line carries its own rate and direction.
func (s *Server) handleCalcVAT(w http.ResponseWriter, r *http.Request) {
	var req vatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid VAT input: "+err.Error())
		return
	}

	if len(req.Lines) > 0 {
		respondJSON(w, http.StatusOK, engine.InvoiceTotals(req.Lines))
		return
	}

	respondJSON(w, http.StatusOK, engine.VAT(req.Amount, req.RatePct, req.Inclusive))
}

type scenarioRequest struct {
	engine.ScenarioInput
	// PeriodID fills surplus and liquid assets from a stored period when
	// set, so clients don't have to recompute the totals themselves.
	PeriodID string `json:"period_id"`
}

func (s *Server) handleCalcScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario input: "+err.Error())
		return
	}

	in := req.ScenarioInput
	if req.PeriodID != "" {
		p, err := s.service.GetPeriod(r.Context(), req.PeriodID)
		if err != nil {
			respondStorageError(w, err)
			return
		}
		in.MonthlySurplus = p.Totals().MonthlySurplus().Value()
		in.LiquidAssets = p.LiquidAssets().Value()
	}

	respondJSON(w, http.StatusOK, engine.ProjectScenario(in))
}

func (s *Server) handleJurisdictions(w http.ResponseWriter, r *http.Request) {
	list, err := jurisdiction.List()
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load jurisdictions", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Dan9191/revenue-service/internal/export"
	"github.com/Dan9191/revenue-service/internal/repository"
	"github.com/Dan9191/revenue-service/internal/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Login handles admin authentication for the reporting endpoints
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// RevenueAnalytics runs the analytics engine and returns the JSON report
func (h *Handler) RevenueAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.GenerateReport(r.Context(), time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrLedgerUnavailable) {
			http.Error(w, "Ledger snapshot unavailable", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// RevenueAnalyticsXML returns the same report rendered as XML
func (h *Handler) RevenueAnalyticsXML(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.GenerateReport(r.Context(), time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrLedgerUnavailable) {
			http.Error(w, "Ledger snapshot unavailable", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	body, err := export.ReportXML(report)
	if err != nil {
		http.Error(w, "Failed to render report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write(body)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/dto"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/middleware"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
)

type InternetHandler struct {
	db *gorm.DB
}

func NewInternetHandler(db *gorm.DB) *InternetHandler {
	return &InternetHandler{db: db}
}

func (h *InternetHandler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	var req dto.InternetIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	issue := models.InternetIssue{
		UserID:      middleware.UserID(r.Context()),
		Description: req.Description,
		Status:      "Open",
	}
	if err := h.db.WithContext(r.Context()).Create(&issue).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to report issue"})
		return
	}

	writeJSON(w, http.StatusCreated, issue)
}

func (h *InternetHandler) MyIssues(w http.ResponseWriter, r *http.Request) {
	var issues []models.InternetIssue
	if err := h.db.WithContext(r.Context()).
		Where("user_id = ?", middleware.UserID(r.Context())).
		Order("created_at DESC").
		Find(&issues).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list issues"})
		return
	}
	writeJSON(w, http.StatusOK, issues)
}

func (h *InternetHandler) AllIssues(w http.ResponseWriter, r *http.Request) {
	q := h.db.WithContext(r.Context()).Order("created_at DESC")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var issues []models.InternetIssue
	if err := q.Find(&issues).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list issues"})
		return
	}
	writeJSON(w, http.StatusOK, issues)
}

func (h *InternetHandler) SetIssueStatus(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if id == 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid issue id"})
		return
	}

	var req dto.InternetIssueStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	result := h.db.WithContext(r.Context()).
		Model(&models.InternetIssue{}).
		Where("issue_id = ?", id).
		Update("status", req.Status)
	if result.Error != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update issue"})
		return
	}
	if result.RowsAffected == 0 {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Issue not found"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Issue updated"})
}

// ActiveOutages is readable by every signed-in user; announcing downtime
// is the whole point of the table.
func (h *InternetHandler) ActiveOutages(w http.ResponseWriter, r *http.Request) {
	var outages []models.InternetOutage
	if err := h.db.WithContext(r.Context()).
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&outages).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list outages"})
		return
	}
	writeJSON(w, http.StatusOK, outages)
}

func (h *InternetHandler) AnnounceOutage(w http.ResponseWriter, r *http.Request) {
	var req dto.InternetOutageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	outage := models.InternetOutage{Message: req.Message, Active: true}
	if err := h.db.WithContext(r.Context()).Create(&outage).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to announce outage"})
		return
	}

	writeJSON(w, http.StatusCreated, outage)
}

func (h *InternetHandler) DeactivateOutage(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if id == 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid outage id"})
		return
	}

	result := h.db.WithContext(r.Context()).
		Model(&models.InternetOutage{}).
		Where("outage_id = ?", id).
		Update("active", false)
	if result.Error != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to deactivate outage"})
		return
	}
	if result.RowsAffected == 0 {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Outage not found"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Outage deactivated"})
}

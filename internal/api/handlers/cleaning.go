package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/dto"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/middleware"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
)

type CleaningHandler struct {
	db *gorm.DB
}

func NewCleaningHandler(db *gorm.DB) *CleaningHandler {
	return &CleaningHandler{db: db}
}

func (h *CleaningHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CleaningRequestCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	request := models.CleaningRequest{
		UserID:      middleware.UserID(r.Context()),
		RoomNo:      req.RoomNo,
		Description: req.Description,
		Status:      "Pending",
	}
	if err := h.db.WithContext(r.Context()).Create(&request).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create cleaning request"})
		return
	}

	writeJSON(w, http.StatusCreated, request)
}

func (h *CleaningHandler) Mine(w http.ResponseWriter, r *http.Request) {
	var requests []models.CleaningRequest
	if err := h.db.WithContext(r.Context()).
		Where("user_id = ?", middleware.UserID(r.Context())).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list cleaning requests"})
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *CleaningHandler) All(w http.ResponseWriter, r *http.Request) {
	q := h.db.WithContext(r.Context()).Order("created_at DESC")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var requests []models.CleaningRequest
	if err := q.Find(&requests).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list cleaning requests"})
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *CleaningHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if id == 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request id"})
		return
	}

	var req dto.CleaningStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == "Completed" {
		updates["completed_at"] = time.Now()
	}

	result := h.db.WithContext(r.Context()).
		Model(&models.CleaningRequest{}).
		Where("request_id = ?", id).
		Updates(updates)
	if result.Error != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update cleaning request"})
		return
	}
	if result.RowsAffected == 0 {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Cleaning request not found"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Cleaning request updated"})
}

// Assign hands the request to a staff member and moves it to In Progress.
func (h *CleaningHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if id == 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request id"})
		return
	}

	var req dto.CleaningAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result := h.db.WithContext(r.Context()).
		Model(&models.CleaningRequest{}).
		Where("request_id = ?", id).
		Updates(map[string]interface{}{
			"assigned_to": req.AssignedTo,
			"status":      "In Progress",
		})
	if result.Error != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to assign cleaning request"})
		return
	}
	if result.RowsAffected == 0 {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Cleaning request not found"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Cleaning request assigned"})
}

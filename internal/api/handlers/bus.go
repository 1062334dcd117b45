package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/dto"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
)

type BusHandler struct {
	db *gorm.DB
}

func NewBusHandler(db *gorm.DB) *BusHandler {
	return &BusHandler{db: db}
}

func (h *BusHandler) GetTimetable(w http.ResponseWriter, r *http.Request) {
	var entries []models.BusTimetableEntry
	if err := h.db.WithContext(r.Context()).
		Order("route_name ASC, start_time ASC").
		Find(&entries).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to load bus timetable"})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// UpdateTimetable replaces the whole table in one transaction. The bus
// schedule is small and edited as a unit, so replace-all is simpler and
// safer than diffing rows.
func (h *BusHandler) UpdateTimetable(w http.ResponseWriter, r *http.Request) {
	var req dto.BusTimetableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	err := h.db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.BusTimetableEntry{}).Error; err != nil {
			return err
		}
		for _, e := range req.Entries {
			entry := models.BusTimetableEntry{
				RouteName: e.RouteName,
				StartTime: e.StartTime,
				EndTime:   e.EndTime,
				Stops:     e.Stops,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update bus timetable"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Bus timetable updated"})
}

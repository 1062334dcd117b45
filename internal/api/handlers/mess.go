package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/dto"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/middleware"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
)

var (
	dayOrder  = map[string]int{"Monday": 0, "Tuesday": 1, "Wednesday": 2, "Thursday": 3, "Friday": 4, "Saturday": 5, "Sunday": 6}
	mealOrder = map[string]int{"Breakfast": 0, "Lunch": 1, "Snacks": 2, "Dinner": 3}
)

type MessHandler struct {
	db *gorm.DB
}

func NewMessHandler(db *gorm.DB) *MessHandler {
	return &MessHandler{db: db}
}

func (h *MessHandler) GetTimetable(w http.ResponseWriter, r *http.Request) {
	var entries []models.MessTimetableEntry
	if err := h.db.WithContext(r.Context()).Find(&entries).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to load mess timetable"})
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		if dayOrder[entries[i].DayOfWeek] != dayOrder[entries[j].DayOfWeek] {
			return dayOrder[entries[i].DayOfWeek] < dayOrder[entries[j].DayOfWeek]
		}
		return mealOrder[entries[i].MealType] < mealOrder[entries[j].MealType]
	})

	writeJSON(w, http.StatusOK, entries)
}

// UpdateTimetable upserts every submitted (day, meal) slot in one
// transaction, so a half-applied edit never becomes visible.
func (h *MessHandler) UpdateTimetable(w http.ResponseWriter, r *http.Request) {
	var req dto.MessTimetableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	editor := middleware.UserID(r.Context())
	now := time.Now()

	err := h.db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		for _, e := range req.Entries {
			entry := models.MessTimetableEntry{
				DayOfWeek: e.DayOfWeek,
				MealType:  e.MealType,
				MenuItems: e.MenuItems,
				UpdatedBy: &editor,
				UpdatedAt: now,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "day_of_week"}, {Name: "meal_type"}},
				DoUpdates: clause.AssignmentColumns([]string{"menu_items", "updated_by", "updated_at"}),
			}).Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update mess timetable"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Mess timetable updated"})
}

func (h *MessHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req dto.MessFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	feedback := models.MessFeedback{
		UserID:    middleware.UserID(r.Context()),
		DayOfWeek: req.DayOfWeek,
		MealType:  req.MealType,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.db.WithContext(r.Context()).Create(&feedback).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to submit feedback"})
		return
	}

	writeJSON(w, http.StatusCreated, feedback)
}

func (h *MessHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	q := h.db.WithContext(r.Context()).Order("created_at DESC").Limit(200)
	if day := r.URL.Query().Get("day_of_week"); day != "" {
		q = q.Where("day_of_week = ?", day)
	}
	if meal := r.URL.Query().Get("meal_type"); meal != "" {
		q = q.Where("meal_type = ?", meal)
	}

	var feedback []models.MessFeedback
	if err := q.Find(&feedback).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list feedback"})
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

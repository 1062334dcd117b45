package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/dto"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/middleware"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
)

type LogHandler struct {
	db *gorm.DB
}

func NewLogHandler(db *gorm.DB) *LogHandler {
	return &LogHandler{db: db}
}

func (h *LogHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.EntryExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	log := models.EntryExitLog{
		UserID:    middleware.UserID(r.Context()),
		Action:    req.Action,
		Reason:    req.Reason,
		Timestamp: time.Now(),
	}
	if err := h.db.WithContext(r.Context()).Create(&log).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to record log"})
		return
	}

	writeJSON(w, http.StatusCreated, log)
}

func (h *LogHandler) Mine(w http.ResponseWriter, r *http.Request) {
	var logs []models.EntryExitLog
	if err := h.db.WithContext(r.Context()).
		Where("user_id = ?", middleware.UserID(r.Context())).
		Order("timestamp DESC").
		Limit(100).
		Find(&logs).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list logs"})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

type logRow struct {
	models.EntryExitLog
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

func (h *LogHandler) filtered(r *http.Request) (*gorm.DB, error) {
	q := h.db.WithContext(r.Context()).
		Table("entry_exit_log").
		Select("entry_exit_log.*, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.user_id = entry_exit_log.user_id").
		Order("entry_exit_log.timestamp DESC")

	query := r.URL.Query()
	if raw := query.Get("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid user_id")
		}
		q = q.Where("entry_exit_log.user_id = ?", uint(id))
	}
	if action := query.Get("action"); action != "" {
		q = q.Where("entry_exit_log.action = ?", action)
	}
	if raw := query.Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("invalid from date, expected YYYY-MM-DD")
		}
		q = q.Where("entry_exit_log.timestamp >= ?", t)
	}
	if raw := query.Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("invalid to date, expected YYYY-MM-DD")
		}
		q = q.Where("entry_exit_log.timestamp < ?", t.AddDate(0, 0, 1))
	}
	return q, nil
}

// All lists the register. Staff and admins see every row; everyone else
// is scoped to their own entries regardless of the filters they pass.
func (h *LogHandler) All(w http.ResponseWriter, r *http.Request) {
	q, err := h.filtered(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	switch middleware.UserRole(r.Context()) {
	case models.RoleStaff, models.RoleAdmin:
	default:
		q = q.Where("entry_exit_log.user_id = ?", middleware.UserID(r.Context()))
	}

	var rows []logRow
	if err := q.Limit(500).Scan(&rows).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list logs"})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Export streams the filtered log as CSV for the warden's records.
func (h *LogHandler) Export(w http.ResponseWriter, r *http.Request) {
	q, err := h.filtered(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var rows []logRow
	if err := q.Scan(&rows).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to export logs"})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="entry_exit_log.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"log_id", "user_id", "name", "email", "action", "reason", "timestamp"})
	for _, row := range rows {
		reason := ""
		if row.Reason != nil {
			reason = *row.Reason
		}
		_ = cw.Write([]string{
			strconv.FormatUint(uint64(row.LogID), 10),
			strconv.FormatUint(uint64(row.UserID), 10),
			row.UserName,
			row.UserEmail,
			row.Action,
			reason,
			row.Timestamp.Format(time.RFC3339),
		})
	}
	cw.Flush()
}

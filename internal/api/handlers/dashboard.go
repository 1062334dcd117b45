package handlers

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/dto"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/middleware"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Student summarises the caller's own open items.
func (h *DashboardHandler) Student(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	db := h.db.WithContext(r.Context())

	var stats struct {
		TotalComplaints      int64 `json:"total_complaints"`
		PendingComplaints    int64 `json:"pending_complaints"`
		InProgressComplaints int64 `json:"in_progress_complaints"`
		ResolvedComplaints   int64 `json:"resolved_complaints"`
		CleaningRequests     int64 `json:"cleaning_requests"`
		OpenInternetIssues   int64 `json:"open_internet_issues"`
		ActiveOutages        int64 `json:"active_outages"`
	}

	db.Table("complaints").Where("user_id = ?", userID).Count(&stats.TotalComplaints)
	db.Table("complaints").Where("user_id = ? AND status = 'Pending'", userID).Count(&stats.PendingComplaints)
	db.Table("complaints").Where("user_id = ? AND status = 'In Progress'", userID).Count(&stats.InProgressComplaints)
	db.Table("complaints").Where("user_id = ? AND status = 'Resolved'", userID).Count(&stats.ResolvedComplaints)
	db.Table("cleaning_requests").Where("user_id = ? AND status != 'Completed'", userID).Count(&stats.CleaningRequests)
	db.Table("internet_issues").Where("user_id = ? AND status != 'Resolved'", userID).Count(&stats.OpenInternetIssues)
	db.Table("internet_outages").Where("active = ?", true).Count(&stats.ActiveOutages)

	var recent []models.Complaint
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to load dashboard"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stats":             stats,
		"recent_complaints": recent,
	})
}

// Admin summarises the whole hostel for the warden's overview page.
func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	db := h.db.WithContext(r.Context())

	var stats struct {
		TotalUsers           int64 `json:"total_users"`
		VerifiedUsers        int64 `json:"verified_users"`
		TotalComplaints      int64 `json:"total_complaints"`
		PendingComplaints    int64 `json:"pending_complaints"`
		InProgressComplaints int64 `json:"in_progress_complaints"`
		ResolvedComplaints   int64 `json:"resolved_complaints"`
		PendingCleaning      int64 `json:"pending_cleaning"`
		OpenInternetIssues   int64 `json:"open_internet_issues"`
		ActiveOutages        int64 `json:"active_outages"`
	}

	db.Table("users").Count(&stats.TotalUsers)
	db.Table("users").Where("verified = ?", true).Count(&stats.VerifiedUsers)
	db.Table("complaints").Count(&stats.TotalComplaints)
	db.Table("complaints").Where("status = 'Pending'").Count(&stats.PendingComplaints)
	db.Table("complaints").Where("status = 'In Progress'").Count(&stats.InProgressComplaints)
	db.Table("complaints").Where("status = 'Resolved'").Count(&stats.ResolvedComplaints)
	db.Table("cleaning_requests").Where("status = 'Pending'").Count(&stats.PendingCleaning)
	db.Table("internet_issues").Where("status != 'Resolved'").Count(&stats.OpenInternetIssues)
	db.Table("internet_outages").Where("active = ?", true).Count(&stats.ActiveOutages)

	var byCategory []struct {
		Category string `json:"category"`
		Count    int64  `json:"count"`
	}
	if err := db.Table("complaints").
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&byCategory).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to load dashboard"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stats":                  stats,
		"avg_resolution_hours":   avgResolutionHours(db),
		"complaints_by_category": byCategory,
	})
}

// avgResolutionHours averages created_at..resolved_at over resolved
// complaints. Computed in Go so it works on both postgres and sqlite.
func avgResolutionHours(db *gorm.DB) float64 {
	var windows []struct {
		CreatedAt  time.Time
		ResolvedAt *time.Time
	}
	db.Model(&models.Complaint{}).
		Select("created_at, resolved_at").
		Where("status = ? AND resolved_at IS NOT NULL", models.StatusResolved).
		Scan(&windows)
	if len(windows) == 0 {
		return 0
	}

	var total float64
	for _, w := range windows {
		total += w.ResolvedAt.Sub(w.CreatedAt).Hours()
	}
	return total / float64(len(windows))
}

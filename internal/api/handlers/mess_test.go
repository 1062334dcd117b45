package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/handlers"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/middleware"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/auth"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/testutil"
)

func setupMessRouter(t *testing.T) (*chi.Mux, *gorm.DB, *auth.JWTService) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	jwtService := testutil.CreateTestJWTService()
	handler := handlers.NewMessHandler(db)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthRequired(jwtService))
		r.Get("/api/mess/timetable", handler.GetTimetable)
		r.Post("/api/mess/feedback", handler.SubmitFeedback)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Put("/api/mess/timetable", handler.UpdateTimetable)
			r.Get("/api/mess/feedback", handler.ListFeedback)
		})
	})

	return r, db, jwtService
}

func TestMessHandler_Timetable(t *testing.T) {
	router, db, jwtService := setupMessRouter(t)

	student := testutil.CreateTestUser(t, db, models.RoleStudent)
	admin := testutil.CreateTestUser(t, db, models.RoleAdmin)
	studentToken := testutil.GenerateTestToken(t, jwtService, student)
	adminToken := testutil.GenerateTestToken(t, jwtService, admin)

	update := map[string]interface{}{
		"entries": []map[string]string{
			{"day_of_week": "Monday", "meal_type": "Lunch", "menu_items": "Dal, Rice"},
			{"day_of_week": "Monday", "meal_type": "Breakfast", "menu_items": "Poha"},
		},
	}

	t.Run("students cannot edit the timetable", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "PUT", "/api/mess/timetable", update, studentToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("admin bulk edit inserts slots", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "PUT", "/api/mess/timetable", update, adminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var count int64
		db.Model(&models.MessTimetableEntry{}).Count(&count)
		assert.EqualValues(t, 2, count)
	})

	t.Run("repeated edit upserts instead of duplicating", func(t *testing.T) {
		again := map[string]interface{}{
			"entries": []map[string]string{
				{"day_of_week": "Monday", "meal_type": "Lunch", "menu_items": "Chole, Rice"},
			},
		}
		req := testutil.AuthenticatedRequest(t, "PUT", "/api/mess/timetable", again, adminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var count int64
		db.Model(&models.MessTimetableEntry{}).Count(&count)
		assert.EqualValues(t, 2, count)

		var entry models.MessTimetableEntry
		require.NoError(t, db.Where("day_of_week = ? AND meal_type = ?", "Monday", "Lunch").First(&entry).Error)
		assert.Equal(t, "Chole, Rice", entry.MenuItems)
	})

	t.Run("timetable comes back day-and-meal ordered", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/mess/timetable", nil, studentToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var entries []models.MessTimetableEntry
		testutil.ParseJSONResponse(t, rr, &entries)
		require.Len(t, entries, 2)
		assert.Equal(t, "Breakfast", entries[0].MealType)
		assert.Equal(t, "Lunch", entries[1].MealType)
	})

	t.Run("unknown day is rejected", func(t *testing.T) {
		bad := map[string]interface{}{
			"entries": []map[string]string{
				{"day_of_week": "Funday", "meal_type": "Lunch", "menu_items": "Cake"},
			},
		}
		req := testutil.AuthenticatedRequest(t, "PUT", "/api/mess/timetable", bad, adminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestMessHandler_Feedback(t *testing.T) {
	router, db, jwtService := setupMessRouter(t)

	student := testutil.CreateTestUser(t, db, models.RoleStudent)
	admin := testutil.CreateTestUser(t, db, models.RoleAdmin)
	studentToken := testutil.GenerateTestToken(t, jwtService, student)
	adminToken := testutil.GenerateTestToken(t, jwtService, admin)

	t.Run("student submits feedback", func(t *testing.T) {
		body := map[string]interface{}{
			"day_of_week": "Monday",
			"meal_type":   "Lunch",
			"rating":      4,
			"comment":     "Pretty good today",
		}
		req := testutil.AuthenticatedRequest(t, "POST", "/api/mess/feedback", body, studentToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusCreated, rr.Code)

		var row models.MessFeedback
		require.NoError(t, db.First(&row).Error)
		assert.Equal(t, student.UserID, row.UserID)
	})

	t.Run("rating out of range is rejected", func(t *testing.T) {
		body := map[string]interface{}{
			"day_of_week": "Monday",
			"meal_type":   "Lunch",
			"rating":      9,
		}
		req := testutil.AuthenticatedRequest(t, "POST", "/api/mess/feedback", body, studentToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("admin lists feedback", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/mess/feedback?meal_type=Lunch", nil, adminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var rows []models.MessFeedback
		testutil.ParseJSONResponse(t, rr, &rows)
		assert.Len(t, rows, 1)
	})

	t.Run("students cannot list feedback", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/mess/feedback", nil, studentToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

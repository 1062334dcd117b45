package handlers_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/handlers"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/middleware"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/auth"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/complaints"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/testutil"
)

type stubUploader struct{ calls int }

func (s *stubUploader) Upload(ctx context.Context, data []byte, key, contentType string) (string, error) {
	s.calls++
	return "https://bucket.s3.ap-south-1.amazonaws.com/" + key, nil
}

type stubAnchorer struct{}

func (stubAnchorer) AnchorJSON(ctx context.Context, v interface{}) (string, error) {
	return "QmStubCID", nil
}

func setupComplaintRouter(t *testing.T) (*chi.Mux, *gorm.DB, *auth.JWTService, *stubUploader) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	jwtService := testutil.CreateTestJWTService()
	uploader := &stubUploader{}
	service := complaints.NewService(db, uploader, stubAnchorer{}, "IMAGE", discardLogger())
	handler := handlers.NewComplaintHandler(service)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthRequired(jwtService))
		r.Post("/api/complaints", handler.Create)
		r.Get("/api/complaints/mine", handler.Mine)
		r.Patch("/api/complaints/{id}/rating", handler.Rate)
		r.Get("/api/complaints/all", handler.All)
		r.With(middleware.RequireRole(models.RoleStaff, models.RoleAdmin)).
			Patch("/api/complaints/{id}/status", handler.SetStatus)
		r.With(middleware.RequireRole(models.RoleAdmin)).
			Patch("/api/complaints/{id}/assign", handler.Assign)
	})

	return r, db, jwtService, uploader
}

func multipartComplaint(t *testing.T, fields map[string]string, imageName, imageType string, imageData []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageName != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="`+imageName+`"`)
		header.Set("Content-Type", imageType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(imageData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func postComplaint(t *testing.T, router *chi.Mux, token string, fields map[string]string, imageName, imageType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartComplaint(t, fields, imageName, imageType, data)
	req := httptest.NewRequest("POST", "/api/complaints", body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestComplaintHandler_Create(t *testing.T) {
	router, db, jwtService, uploader := setupComplaintRouter(t)

	student := testutil.CreateTestUser(t, db, models.RoleStudent)
	token := testutil.GenerateTestToken(t, jwtService, student)

	t.Run("requires authentication", func(t *testing.T) {
		rr := postComplaint(t, router, "", map[string]string{"category": "mess", "title": "Cold food"}, "", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("creates a complaint without image", func(t *testing.T) {
		rr := postComplaint(t, router, token, map[string]string{
			"category": "electricity",
			"title":    "Fan not working",
			"room_no":  "A-101",
		}, "", "", nil)
		require.Equal(t, http.StatusCreated, rr.Code)

		var resp complaints.CreateResult
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.NotZero(t, resp.ComplaintID)
		assert.Nil(t, resp.ImageURL)
		require.NotNil(t, resp.CID)
		assert.Equal(t, "QmStubCID", *resp.CID)
		assert.Zero(t, uploader.calls)
	})

	t.Run("creates a complaint with image", func(t *testing.T) {
		rr := postComplaint(t, router, token, map[string]string{
			"category": "plumbing",
			"title":    "Leaking tap",
		}, "tap.png", "image/png", []byte("png-bytes"))
		require.Equal(t, http.StatusCreated, rr.Code)

		var resp complaints.CreateResult
		testutil.ParseJSONResponse(t, rr, &resp)
		require.NotNil(t, resp.ImageURL)
		assert.Contains(t, *resp.ImageURL, "IMAGE/")
		assert.Equal(t, 1, uploader.calls)
	})

	t.Run("rejects non-image file", func(t *testing.T) {
		rr := postComplaint(t, router, token, map[string]string{
			"category": "other",
			"title":    "Weird file",
		}, "doc.pdf", "application/pdf", []byte("%PDF"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects bad category", func(t *testing.T) {
		rr := postComplaint(t, router, token, map[string]string{
			"category": "astrology",
			"title":    "Bad vibes",
		}, "", "", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		rr := postComplaint(t, router, token, map[string]string{"category": "mess"}, "", "", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestComplaintHandler_ListsAndRoles(t *testing.T) {
	router, db, jwtService, _ := setupComplaintRouter(t)

	student := testutil.CreateTestUser(t, db, models.RoleStudent)
	other := testutil.CreateTestUser(t, db, models.RoleStudent)
	staff := testutil.CreateTestUser(t, db, models.RoleStaff)
	admin := testutil.CreateTestUser(t, db, models.RoleAdmin)

	studentToken := testutil.GenerateTestToken(t, jwtService, student)
	staffToken := testutil.GenerateTestToken(t, jwtService, staff)
	adminToken := testutil.GenerateTestToken(t, jwtService, admin)

	mine := testutil.CreateTestComplaint(t, db, student.UserID)
	testutil.CreateTestComplaint(t, db, other.UserID)

	t.Run("mine returns only the caller's complaints", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/complaints/mine", nil, studentToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var list []models.Complaint
		testutil.ParseJSONResponse(t, rr, &list)
		require.Len(t, list, 1)
		assert.Equal(t, mine.ComplaintID, list[0].ComplaintID)
	})

	t.Run("any signed-in user lists all complaints", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/complaints/all", nil, studentToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var list []complaints.WithFiler
		testutil.ParseJSONResponse(t, rr, &list)
		assert.Len(t, list, 2)
	})

	t.Run("staff list all complaints", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/complaints/all", nil, staffToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var list []complaints.WithFiler
		testutil.ParseJSONResponse(t, rr, &list)
		assert.Len(t, list, 2)
	})

	t.Run("only admins assign", func(t *testing.T) {
		body := map[string]uint{"assigned_to": staff.UserID}

		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/complaints/1/assign", body, staffToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)

		req = testutil.AuthenticatedRequest(t, "PATCH", "/api/complaints/1/assign", body, adminToken)
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("staff update status", func(t *testing.T) {
		body := map[string]string{"status": "Resolved"}
		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/complaints/1/status", body, staffToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var row models.Complaint
		require.NoError(t, db.First(&row, 1).Error)
		assert.Equal(t, models.StatusResolved, row.Status)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		body := map[string]string{"status": "Escalated"}
		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/complaints/1/status", body, staffToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("owner rates, others cannot", func(t *testing.T) {
		body := map[string]int{"rating": 5}

		otherToken := testutil.GenerateTestToken(t, jwtService, other)
		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/complaints/1/rating", body, otherToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)

		req = testutil.AuthenticatedRequest(t, "PATCH", "/api/complaints/1/rating", body, studentToken)
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unknown complaint is 404", func(t *testing.T) {
		body := map[string]string{"status": "Resolved"}
		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/complaints/9999/status", body, staffToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/dto"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/handlers"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/middleware"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/auth"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupAuthRouter(t *testing.T) (*chi.Mux, *gorm.DB, *auth.JWTService) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	jwtService := testutil.CreateTestJWTService()
	authService := auth.NewService(db, jwtService, "iiitn.ac.in", nil, discardLogger())
	handler := handlers.NewAuthHandler(authService, nil, "http://localhost:5173", false, discardLogger())

	r := chi.NewRouter()
	r.Post("/api/auth/register", handler.Register)
	r.Get("/api/auth/verify", handler.VerifyEmail)
	r.Post("/api/auth/login", handler.Login)
	r.Post("/api/auth/refresh", handler.Refresh)
	r.Post("/api/auth/logout", handler.Logout)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthRequired(jwtService))
		r.Get("/api/auth/me", handler.Me)
		r.Patch("/api/auth/profile", handler.UpdateProfile)
	})

	return r, db, jwtService
}

func TestAuthHandler_Register(t *testing.T) {
	router, db, _ := setupAuthRouter(t)

	t.Run("successful registration", func(t *testing.T) {
		body := map[string]string{
			"name":     "New Student",
			"email":    "student@iiitn.ac.in",
			"password": "securepassword",
		}
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/register", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp dto.RegisterResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.NotZero(t, resp.UserID)

		var user models.User
		require.NoError(t, db.First(&user, resp.UserID).Error)
		assert.False(t, user.Verified)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		body := map[string]string{
			"name":     "Same Student",
			"email":    "student@iiitn.ac.in",
			"password": "securepassword",
		}
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/register", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("outside domain is rejected", func(t *testing.T) {
		body := map[string]string{
			"name":     "Outsider",
			"email":    "outsider@gmail.com",
			"password": "securepassword",
		}
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/register", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("validation failure reports fields", func(t *testing.T) {
		body := map[string]string{"email": "not-an-email"}
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/register", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Contains(t, resp.Details, "email")
		assert.Contains(t, resp.Details, "password")
	})
}

func TestAuthHandler_VerifyAndLogin(t *testing.T) {
	router, db, _ := setupAuthRouter(t)

	body := map[string]string{
		"name":     "Asha",
		"email":    "asha@iiitn.ac.in",
		"password": "securepassword",
	}
	req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/register", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	login := func() *httptest.ResponseRecorder {
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/login", map[string]string{
			"email":    "asha@iiitn.ac.in",
			"password": "securepassword",
		})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("login before verification is forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, login().Code)
	})

	var verification models.EmailVerification
	require.NoError(t, db.First(&verification).Error)

	t.Run("verification link flips the flag", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/api/auth/verify?token="+verification.Token, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("login after verification sets cookies", func(t *testing.T) {
		rr := login()
		require.Equal(t, http.StatusOK, rr.Code)

		var resp dto.AuthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "asha@iiitn.ac.in", resp.User.Email)

		names := map[string]bool{}
		for _, c := range rr.Result().Cookies() {
			names[c.Name] = c.HttpOnly
		}
		assert.True(t, names["token"])
		assert.True(t, names["refreshToken"])
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/login", map[string]string{
			"email":    "asha@iiitn.ac.in",
			"password": "wrong",
		})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("refresh rotates tokens", func(t *testing.T) {
		var resp dto.AuthResponse
		lrr := login()
		testutil.ParseJSONResponse(t, lrr, &resp)

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/refresh", map[string]string{
			"refreshToken": resp.RefreshToken,
		})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var rotated dto.AuthResponse
		testutil.ParseJSONResponse(t, rr, &rotated)
		assert.NotEmpty(t, rotated.Token)
	})

	t.Run("refresh without token is unauthorized", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/refresh", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("logout clears cookies", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/logout", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		for _, c := range rr.Result().Cookies() {
			assert.Equal(t, -1, c.MaxAge)
		}
	})
}

func TestAuthHandler_MeAndProfile(t *testing.T) {
	router, db, jwtService := setupAuthRouter(t)

	user := testutil.CreateTestUser(t, db, models.RoleStudent)
	token := testutil.GenerateTestToken(t, jwtService, user)

	t.Run("me returns the caller", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/auth/me", nil, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp dto.UserDTO
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("me without token is unauthorized", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/api/auth/me", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("profile patch updates room", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/auth/profile", map[string]string{
			"room_no": "B-204",
		}, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp dto.UserDTO
		testutil.ParseJSONResponse(t, rr, &resp)
		require.NotNil(t, resp.RoomNo)
		assert.Equal(t, "B-204", *resp.RoomNo)
	})

	t.Run("empty patch is a bad request", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/auth/profile", map[string]string{}, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

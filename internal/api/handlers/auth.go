package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/dto"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/middleware"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/auth"
)

const (
	accessCookieMaxAge  = 7 * 24 * 60 * 60
	refreshCookieMaxAge = 30 * 24 * 60 * 60
	stateCookieMaxAge   = 10 * 60
)

type AuthHandler struct {
	authService  *auth.Service
	google       *auth.GoogleOAuth
	clientOrigin string
	secure       bool
	logger       *slog.Logger
}

func NewAuthHandler(authService *auth.Service, google *auth.GoogleOAuth, clientOrigin string, secure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		google:       google,
		clientOrigin: clientOrigin,
		secure:       secure,
		logger:       logger,
	}
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, tokens *auth.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    tokens.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   accessCookieMaxAge,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    tokens.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   refreshCookieMaxAge,
	})
}

func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{"token", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   h.secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	input := auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.HostelBlock != nil {
		input.HostelBlock = *req.HostelBlock
	}
	if req.RoomNo != nil {
		input.RoomNo = *req.RoomNo
	}

	resp, err := h.authService.Register(r.Context(), input)
	if err != nil {
		switch err {
		case auth.ErrUserExists:
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "Email already registered"})
		case auth.ErrEmailDomain:
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Email must belong to the college domain"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Registration failed"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterResponse{
		Message: "Registered. Check your email to verify your account.",
		UserID:  resp.UserID,
	})
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Missing verification token"})
		return
	}

	if err := h.authService.VerifyEmail(r.Context(), token); err != nil {
		switch err {
		case auth.ErrInvalidVerifyToken:
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid or expired verification token"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Verification failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Email verified"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	resp, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case auth.ErrInvalidCredentials:
			writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid credentials"})
		case auth.ErrOAuthOnlyAccount:
			writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "This account uses Google sign-in"})
		case auth.ErrEmailNotVerified:
			writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "Email not verified"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Login failed"})
		}
		return
	}

	h.setAuthCookies(w, resp.Tokens)
	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Token:        resp.Tokens.AccessToken,
		RefreshToken: resp.Tokens.RefreshToken,
		User:         dto.NewUserDTO(resp.User),
	})
}

// GoogleStart redirects the browser to Google's consent screen. The
// state nonce round-trips through a short-lived cookie.
func (h *AuthHandler) GoogleStart(w http.ResponseWriter, r *http.Request) {
	if h.google == nil || !h.google.Enabled() {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Google sign-in is not configured"})
		return
	}

	state, err := auth.GenerateState()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to start Google sign-in"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   stateCookieMaxAge,
	})

	http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil || !h.google.Enabled() {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Google sign-in is not configured"})
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		h.redirectWithError(w, r, "invalid_state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectWithError(w, r, "missing_code")
		return
	}

	profile, err := h.google.FetchProfile(r.Context(), code)
	if err != nil {
		h.logger.Error("google profile fetch failed", "error", err)
		h.redirectWithError(w, r, "google_exchange_failed")
		return
	}

	resp, err := h.authService.LoginWithGoogle(r.Context(), *profile)
	if err != nil {
		if err == auth.ErrEmailDomain {
			h.redirectWithError(w, r, "email_domain")
			return
		}
		h.logger.Error("google login failed", "error", err)
		h.redirectWithError(w, r, "login_failed")
		return
	}

	h.setAuthCookies(w, resp.Tokens)
	http.Redirect(w, r, h.clientOrigin+"/auth/callback", http.StatusTemporaryRedirect)
}

func (h *AuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, h.clientOrigin+"/login?error="+url.QueryEscape(code), http.StatusTemporaryRedirect)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	token := req.RefreshToken
	if token == "" {
		if c, err := r.Cookie("refreshToken"); err == nil {
			token = c.Value
		}
	}
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "Missing refresh token"})
		return
	}

	resp, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		switch err {
		case auth.ErrInvalidToken, auth.ErrExpiredToken, auth.ErrUserNotFound:
			writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid refresh token"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Token refresh failed"})
		}
		return
	}

	h.setAuthCookies(w, resp.Tokens)
	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Token:        resp.Tokens.AccessToken,
		RefreshToken: resp.Tokens.RefreshToken,
		User:         dto.NewUserDTO(resp.User),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookies(w)
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUserByID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		if err == auth.ErrUserNotFound {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to load profile"})
		return
	}

	writeJSON(w, http.StatusOK, dto.NewUserDTO(user))
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), middleware.UserID(r.Context()), auth.UpdateProfileInput{
		Name:        req.Name,
		HostelBlock: req.HostelBlock,
		RoomNo:      req.RoomNo,
	})
	if err != nil {
		switch err {
		case auth.ErrNoFieldsToUpdate:
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "No fields to update"})
		case auth.ErrUserNotFound:
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Profile update failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.NewUserDTO(user))
}

package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/dto"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api/middleware"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/complaints"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
)

// multipart forms are parsed with a little headroom over the image cap
// for the text fields.
const maxFormBytes = complaints.MaxImageBytes + 1<<20

type ComplaintHandler struct {
	service *complaints.Service
}

func NewComplaintHandler(service *complaints.Service) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid multipart form"})
		return
	}

	req := dto.CreateComplaintRequest{
		Category:    r.FormValue("category"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if v := r.FormValue("room_no"); v != "" {
		req.RoomNo = &v
	}
	if v := r.FormValue("floor"); v != "" {
		req.Floor = &v
	}
	if v := r.FormValue("block"); v != "" {
		req.Block = &v
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	input := complaints.CreateInput{
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.RoomNo != nil {
		input.RoomNo = *req.RoomNo
	}
	if req.Floor != nil {
		input.Floor = *req.Floor
	}
	if req.Block != nil {
		input.Block = *req.Block
	}

	var image *complaints.Image
	file, header, err := r.FormFile("image")
	switch err {
	case nil:
		defer file.Close()
		data, readErr := io.ReadAll(io.LimitReader(file, complaints.MaxImageBytes+1))
		if readErr != nil {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Failed to read image"})
			return
		}
		image = &complaints.Image{
			Data:        data,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		}
	case http.ErrMissingFile:
		// image is optional
	default:
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid image upload"})
		return
	}

	result, err := h.service.Create(r.Context(), middleware.UserID(r.Context()), input, image)
	if err != nil {
		switch err {
		case complaints.ErrInvalidCategory:
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid complaint category"})
		case complaints.ErrMissingTitle:
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Title is required"})
		case complaints.ErrNotAnImage:
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Uploaded file must be an image"})
		case complaints.ErrImageTooLarge:
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Image exceeds the 5MB limit"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to file complaint"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *ComplaintHandler) Mine(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListMine(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list complaints"})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ComplaintHandler) All(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := complaints.ListFilters{
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Query:    q.Get("q"),
	}
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		filters.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid to date, expected YYYY-MM-DD"})
			return
		}
		filters.To = &t
	}

	list, err := h.service.ListAll(r.Context(), filters)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list complaints"})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ComplaintHandler) RecentResolved(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.RecentResolved(r.Context(), 20)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list resolved complaints"})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ComplaintHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if id == 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid complaint id"})
		return
	}

	var req dto.AssignComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Assign(r.Context(), id, req.AssignedTo); err != nil {
		switch err {
		case complaints.ErrNotFound:
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Complaint not found"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to assign complaint"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Complaint assigned"})
}

func (h *ComplaintHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if id == 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid complaint id"})
		return
	}

	var req dto.ComplaintStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	if err := h.service.SetStatus(r.Context(), id, models.ComplaintStatus(req.Status)); err != nil {
		switch err {
		case complaints.ErrInvalidStatus:
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid complaint status"})
		case complaints.ErrNotFound:
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Complaint not found"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update status"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Status updated"})
}

func (h *ComplaintHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if id == 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid complaint id"})
		return
	}

	var req dto.ComplaintRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Rate(r.Context(), id, middleware.UserID(r.Context()), req.Rating); err != nil {
		switch err {
		case complaints.ErrInvalidRating:
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Rating must be between 1 and 5"})
		case complaints.ErrNotFound:
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Complaint not found"})
		case complaints.ErrNotOwner:
			writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "Only the complaint owner may rate it"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to rate complaint"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Thanks for the feedback"})
}

// Package complaints implements the complaint intake pipeline and its
// lifecycle operations. Creation is multi-step: validate, optionally upload
// the image, persist the row (the durability point), then best-effort anchor
// a snapshot to the content-addressed store.
package complaints

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/anchor"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/storage"
)

var (
	ErrInvalidCategory = errors.New("invalid complaint category")
	ErrMissingTitle    = errors.New("title is required")
	ErrNotAnImage      = errors.New("uploaded file is not an image")
	ErrImageTooLarge   = errors.New("image exceeds the size limit")
	ErrImageUpload     = errors.New("failed to upload image")
	ErrInvalidStatus   = errors.New("invalid complaint status")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrNotFound        = errors.New("complaint not found")
	ErrNotOwner        = errors.New("only the complaint owner may do this")
)

// MaxImageBytes caps buffered complaint images.
const MaxImageBytes = 5 << 20 // 5MB

type Service struct {
	db          *gorm.DB
	uploader    storage.Uploader
	anchorer    anchor.Anchorer
	imageFolder string
	logger      *slog.Logger
}

func NewService(db *gorm.DB, uploader storage.Uploader, anchorer anchor.Anchorer, imageFolder string, logger *slog.Logger) *Service {
	return &Service{
		db:          db,
		uploader:    uploader,
		anchorer:    anchorer,
		imageFolder: imageFolder,
		logger:      logger,
	}
}

type CreateInput struct {
	Category    string
	Title       string
	Description string
	RoomNo      string
	Floor       string
	Block       string
}

// Image is a buffered upload from the multipart form.
type Image struct {
	Data        []byte
	Filename    string
	ContentType string
}

// CreateResult reports what the pipeline achieved. CID is nil whenever
// anchoring did not happen; that is not an error.
type CreateResult struct {
	ComplaintID uint    `json:"complaint_id"`
	ImageURL    *string `json:"image_url"`
	CID         *string `json:"cid"`
}

// Create runs the intake pipeline. Steps up to the row insert are fatal;
// anchoring is enrichment and its failure is logged and discarded.
func (s *Service) Create(ctx context.Context, userID uint, input CreateInput, image *Image) (*CreateResult, error) {
	if !models.ValidComplaintCategory(input.Category) {
		return nil, ErrInvalidCategory
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrMissingTitle
	}
	if image != nil {
		if !strings.HasPrefix(image.ContentType, "image/") {
			return nil, ErrNotAnImage
		}
		if len(image.Data) > MaxImageBytes {
			return nil, ErrImageTooLarge
		}
	}

	// An image was supplied: its upload must succeed before any row exists.
	var imageURL *string
	if image != nil {
		if s.uploader == nil {
			return nil, fmt.Errorf("%w: image storage is not configured", ErrImageUpload)
		}
		url, err := s.uploader.Upload(ctx, image.Data, s.imageKey(image.Filename), image.ContentType)
		if err != nil {
			s.logger.Error("image upload failed", "user_id", userID, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrImageUpload, err)
		}
		imageURL = &url
	}

	complaint := models.Complaint{
		UserID:      userID,
		Category:    input.Category,
		Title:       input.Title,
		Description: input.Description,
		Status:      models.StatusPending,
		ImageURL:    imageURL,
	}
	if input.RoomNo != "" {
		complaint.RoomNo = &input.RoomNo
	}
	if input.Floor != "" {
		complaint.Floor = &input.Floor
	}
	if input.Block != "" {
		complaint.Block = &input.Block
	}

	if err := s.db.WithContext(ctx).Create(&complaint).Error; err != nil {
		return nil, err
	}

	// Durability point reached: the id is authoritative from here on.
	result := &CreateResult{ComplaintID: complaint.ComplaintID, ImageURL: imageURL}

	cid, err := s.anchorComplaint(ctx, &complaint)
	if err != nil {
		s.logger.Warn("anchoring skipped", "complaint_id", complaint.ComplaintID, "error", err)
		return result, nil
	}
	result.CID = &cid

	return result, nil
}

func (s *Service) imageKey(filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%s/%d_%s%s", s.imageFolder, time.Now().UnixMilli(), uuid.NewString(), ext)
}

// snapshot is the canonical document pinned to the content store.
type snapshot struct {
	Complaint struct {
		ComplaintID uint    `json:"complaint_id"`
		Category    string  `json:"category"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		RoomNo      *string `json:"room_no"`
		Floor       *string `json:"floor"`
		Block       *string `json:"block"`
		ImageURL    *string `json:"image_url"`
		Status      string  `json:"status"`
		CreatedAt   string  `json:"created_at"`
	} `json:"complaint"`
	FiledBy struct {
		UserID      uint    `json:"user_id"`
		Name        string  `json:"name"`
		Email       string  `json:"email"`
		RoomNo      *string `json:"room_no"`
		HostelBlock *string `json:"hostel_block"`
	} `json:"filed_by"`
	Metadata struct {
		Timestamp string `json:"timestamp"`
		Platform  string `json:"platform"`
		Version   string `json:"version"`
	} `json:"metadata"`
}

// anchorComplaint builds the snapshot, pins it and stamps the CID on the
// row. Every failure path here is non-fatal to the caller.
func (s *Service) anchorComplaint(ctx context.Context, complaint *models.Complaint) (string, error) {
	if s.anchorer == nil {
		return "", anchor.ErrNotConfigured
	}

	var filer models.User
	if err := s.db.WithContext(ctx).First(&filer, complaint.UserID).Error; err != nil {
		return "", fmt.Errorf("loading filer: %w", err)
	}

	var doc snapshot
	doc.Complaint.ComplaintID = complaint.ComplaintID
	doc.Complaint.Category = complaint.Category
	doc.Complaint.Title = complaint.Title
	doc.Complaint.Description = complaint.Description
	doc.Complaint.RoomNo = complaint.RoomNo
	doc.Complaint.Floor = complaint.Floor
	doc.Complaint.Block = complaint.Block
	doc.Complaint.ImageURL = complaint.ImageURL
	doc.Complaint.Status = string(complaint.Status)
	doc.Complaint.CreatedAt = complaint.CreatedAt.UTC().Format(time.RFC3339)
	doc.FiledBy.UserID = filer.UserID
	doc.FiledBy.Name = filer.Name
	doc.FiledBy.Email = filer.Email
	doc.FiledBy.RoomNo = filer.RoomNo
	doc.FiledBy.HostelBlock = filer.HostelBlock
	doc.Metadata.Timestamp = time.Now().UTC().Format(time.RFC3339)
	doc.Metadata.Platform = "Hostel Complaint Portal"
	doc.Metadata.Version = "1.0"

	cid, err := s.anchorer.AnchorJSON(ctx, doc)
	if err != nil {
		return "", err
	}

	if err := s.db.WithContext(ctx).Model(&models.Complaint{}).
		Where("complaint_id = ?", complaint.ComplaintID).
		Update("lighthouse_cid", cid).Error; err != nil {
		return "", fmt.Errorf("stamping cid: %w", err)
	}

	s.logger.Info("anchored complaint", "complaint_id", complaint.ComplaintID, "cid", cid)
	return cid, nil
}

func (s *Service) ListMine(ctx context.Context, userID uint) ([]models.Complaint, error) {
	var rows []models.Complaint
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListFilters narrow the staff/admin listing. Date bounds are inclusive.
type ListFilters struct {
	Status   string
	Category string
	Query    string
	From     *time.Time
	To       *time.Time
}

// WithFiler is a complaint row joined with the filer's name and room.
type WithFiler struct {
	models.Complaint
	UserName string  `json:"user_name"`
	UserRoom *string `json:"user_room"`
}

func (s *Service) ListAll(ctx context.Context, filters ListFilters) ([]WithFiler, error) {
	query := s.db.WithContext(ctx).Model(&models.Complaint{}).
		Select("complaints.*, users.name AS user_name, users.room_no AS user_room").
		Joins("JOIN users ON users.user_id = complaints.user_id")

	if filters.Status != "" {
		query = query.Where("complaints.status = ?", filters.Status)
	}
	if filters.Category != "" {
		query = query.Where("complaints.category = ?", filters.Category)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("complaints.title LIKE ? OR complaints.description LIKE ?", like, like)
	}
	if filters.From != nil {
		query = query.Where("complaints.created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("complaints.created_at <= ?", *filters.To)
	}

	var rows []WithFiler
	err := query.Order("complaints.created_at DESC").Find(&rows).Error
	return rows, err
}

func (s *Service) RecentResolved(ctx context.Context, limit int) ([]WithFiler, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []WithFiler
	err := s.db.WithContext(ctx).Model(&models.Complaint{}).
		Select("complaints.*, users.name AS user_name").
		Joins("JOIN users ON users.user_id = complaints.user_id").
		Where("complaints.status = ?", models.StatusResolved).
		Order("complaints.resolved_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// Assign hands a complaint to a staff member and moves it to In Progress.
func (s *Service) Assign(ctx context.Context, complaintID uint, staffID *uint) error {
	res := s.db.WithContext(ctx).Model(&models.Complaint{}).
		Where("complaint_id = ?", complaintID).
		Updates(map[string]interface{}{
			"assigned_to": staffID,
			"status":      models.StatusInProgress,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus moves a complaint between lifecycle states. Backward moves are
// allowed; concurrent writers are last-write-wins. Resolving stamps
// resolved_at.
func (s *Service) SetStatus(ctx context.Context, complaintID uint, status models.ComplaintStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	updates := map[string]interface{}{"status": status}
	if status == models.StatusResolved {
		updates["resolved_at"] = time.Now()
	}

	res := s.db.WithContext(ctx).Model(&models.Complaint{}).
		Where("complaint_id = ?", complaintID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Rate records the owner's satisfaction score on their own complaint.
func (s *Service) Rate(ctx context.Context, complaintID, userID uint, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	var complaint models.Complaint
	err := s.db.WithContext(ctx).First(&complaint, complaintID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if complaint.UserID != userID {
		return ErrNotOwner
	}

	return s.db.WithContext(ctx).Model(&models.Complaint{}).
		Where("complaint_id = ?", complaintID).
		Update("rating", rating).Error
}

package complaints

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
)

type fakeUploader struct {
	calls int
	url   string
	fail  error
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, key, contentType string) (string, error) {
	f.calls++
	if f.fail != nil {
		return "", f.fail
	}
	if f.url != "" {
		return f.url, nil
	}
	return "https://bucket.s3.ap-south-1.amazonaws.com/" + key, nil
}

type fakeAnchorer struct {
	calls int
	cid   string
	fail  error
}

func (f *fakeAnchorer) AnchorJSON(ctx context.Context, v interface{}) (string, error) {
	f.calls++
	if f.fail != nil {
		return "", f.fail
	}
	return f.cid, nil
}

func setupComplaints(t *testing.T) (*Service, *gorm.DB, *fakeUploader, *fakeAnchorer) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Complaint{}))

	uploader := &fakeUploader{}
	anchorer := &fakeAnchorer{cid: "QmTestCID"}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewService(db, uploader, anchorer, "IMAGE", log), db, uploader, anchorer
}

func createFiler(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	room := "A-101"
	user := &models.User{
		Name:         "Asha",
		Email:        "asha@iiitn.ac.in",
		AuthProvider: models.ProviderLocal,
		Role:         models.RoleStudent,
		Verified:     true,
		RoomNo:       &room,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("without image skips the uploader entirely", func(t *testing.T) {
		svc, db, uploader, anchorer := setupComplaints(t)
		user := createFiler(t, db)

		result, err := svc.Create(ctx, user.UserID, CreateInput{
			Category: "electricity",
			Title:    "Fan not working",
		}, nil)
		require.NoError(t, err)
		assert.NotZero(t, result.ComplaintID)
		assert.Nil(t, result.ImageURL)
		assert.Zero(t, uploader.calls)
		assert.Equal(t, 1, anchorer.calls)

		require.NotNil(t, result.CID)
		assert.Equal(t, "QmTestCID", *result.CID)

		var row models.Complaint
		require.NoError(t, db.First(&row, result.ComplaintID).Error)
		assert.Equal(t, models.StatusPending, row.Status)
		require.NotNil(t, row.LighthouseCID)
		assert.Equal(t, "QmTestCID", *row.LighthouseCID)
	})

	t.Run("with image stores the uploaded URL", func(t *testing.T) {
		svc, db, uploader, _ := setupComplaints(t)
		user := createFiler(t, db)
		uploader.url = "https://bucket.s3.ap-south-1.amazonaws.com/IMAGE/test.png"

		result, err := svc.Create(ctx, user.UserID, CreateInput{
			Category: "plumbing",
			Title:    "Leaking tap",
		}, &Image{Data: []byte("png-bytes"), Filename: "tap.png", ContentType: "image/png"})
		require.NoError(t, err)
		assert.Equal(t, 1, uploader.calls)
		require.NotNil(t, result.ImageURL)
		assert.Equal(t, uploader.url, *result.ImageURL)
	})

	t.Run("upload failure aborts before any row exists", func(t *testing.T) {
		svc, db, uploader, _ := setupComplaints(t)
		user := createFiler(t, db)
		uploader.fail = errors.New("s3 unreachable")

		_, err := svc.Create(ctx, user.UserID, CreateInput{
			Category: "plumbing",
			Title:    "Leaking tap",
		}, &Image{Data: []byte("png-bytes"), Filename: "tap.png", ContentType: "image/png"})
		assert.ErrorIs(t, err, ErrImageUpload)

		var count int64
		db.Model(&models.Complaint{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("image without a configured uploader is rejected", func(t *testing.T) {
		_, db, _, anchorer := setupComplaints(t)
		user := createFiler(t, db)
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := NewService(db, nil, anchorer, "IMAGE", log)

		_, err := svc.Create(ctx, user.UserID, CreateInput{
			Category: "plumbing",
			Title:    "Leaking tap",
		}, &Image{Data: []byte("png-bytes"), Filename: "tap.png", ContentType: "image/png"})
		assert.ErrorIs(t, err, ErrImageUpload)

		var count int64
		db.Model(&models.Complaint{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("anchor failure still succeeds without a CID", func(t *testing.T) {
		svc, db, _, anchorer := setupComplaints(t)
		user := createFiler(t, db)
		anchorer.fail = errors.New("lighthouse down")

		result, err := svc.Create(ctx, user.UserID, CreateInput{
			Category: "internet",
			Title:    "No wifi in block B",
		}, nil)
		require.NoError(t, err)
		assert.Nil(t, result.CID)

		var row models.Complaint
		require.NoError(t, db.First(&row, result.ComplaintID).Error)
		assert.Nil(t, row.LighthouseCID)
	})

	t.Run("invalid category", func(t *testing.T) {
		svc, db, _, _ := setupComplaints(t)
		user := createFiler(t, db)

		_, err := svc.Create(ctx, user.UserID, CreateInput{Category: "astrology", Title: "x"}, nil)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("blank title", func(t *testing.T) {
		svc, db, _, _ := setupComplaints(t)
		user := createFiler(t, db)

		_, err := svc.Create(ctx, user.UserID, CreateInput{Category: "mess", Title: "   "}, nil)
		assert.ErrorIs(t, err, ErrMissingTitle)
	})

	t.Run("non-image upload is rejected", func(t *testing.T) {
		svc, db, uploader, _ := setupComplaints(t)
		user := createFiler(t, db)

		_, err := svc.Create(ctx, user.UserID, CreateInput{
			Category: "other",
			Title:    "Weird file",
		}, &Image{Data: []byte("%PDF"), Filename: "doc.pdf", ContentType: "application/pdf"})
		assert.ErrorIs(t, err, ErrNotAnImage)
		assert.Zero(t, uploader.calls)
	})

	t.Run("oversized image is rejected before upload", func(t *testing.T) {
		svc, db, uploader, _ := setupComplaints(t)
		user := createFiler(t, db)

		_, err := svc.Create(ctx, user.UserID, CreateInput{
			Category: "other",
			Title:    "Huge photo",
		}, &Image{Data: make([]byte, MaxImageBytes+1), Filename: "big.jpg", ContentType: "image/jpeg"})
		assert.ErrorIs(t, err, ErrImageTooLarge)
		assert.Zero(t, uploader.calls)
	})
}

func TestListAll(t *testing.T) {
	svc, db, _, _ := setupComplaints(t)
	user := createFiler(t, db)
	ctx := context.Background()

	mk := func(category, title string, status models.ComplaintStatus) {
		require.NoError(t, db.Create(&models.Complaint{
			UserID:   user.UserID,
			Category: category,
			Title:    title,
			Status:   status,
		}).Error)
	}
	mk("electricity", "Fan broken", models.StatusPending)
	mk("plumbing", "Tap leaking", models.StatusResolved)
	mk("electricity", "Light flickering", models.StatusInProgress)

	t.Run("no filters returns everything with filer name", func(t *testing.T) {
		rows, err := svc.ListAll(ctx, ListFilters{})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Asha", rows[0].UserName)
	})

	t.Run("status filter", func(t *testing.T) {
		rows, err := svc.ListAll(ctx, ListFilters{Status: "Pending"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Fan broken", rows[0].Title)
	})

	t.Run("category filter", func(t *testing.T) {
		rows, err := svc.ListAll(ctx, ListFilters{Category: "electricity"})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("text search", func(t *testing.T) {
		rows, err := svc.ListAll(ctx, ListFilters{Query: "leaking"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Tap leaking", rows[0].Title)
	})

	t.Run("date window excludes old complaints", func(t *testing.T) {
		from := time.Now().Add(24 * time.Hour)
		rows, err := svc.ListAll(ctx, ListFilters{From: &from})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestLifecycle(t *testing.T) {
	svc, db, _, _ := setupComplaints(t)
	user := createFiler(t, db)
	ctx := context.Background()

	complaint := models.Complaint{
		UserID:   user.UserID,
		Category: "cleaning",
		Title:    "Corridor not cleaned",
		Status:   models.StatusPending,
	}
	require.NoError(t, db.Create(&complaint).Error)

	t.Run("assign moves to In Progress", func(t *testing.T) {
		staff := uint(99)
		require.NoError(t, svc.Assign(ctx, complaint.ComplaintID, &staff))

		var row models.Complaint
		require.NoError(t, db.First(&row, complaint.ComplaintID).Error)
		assert.Equal(t, models.StatusInProgress, row.Status)
		require.NotNil(t, row.AssignedTo)
		assert.Equal(t, staff, *row.AssignedTo)
	})

	t.Run("assign unknown complaint", func(t *testing.T) {
		assert.ErrorIs(t, svc.Assign(ctx, 9999, nil), ErrNotFound)
	})

	t.Run("resolving stamps resolved_at", func(t *testing.T) {
		require.NoError(t, svc.SetStatus(ctx, complaint.ComplaintID, models.StatusResolved))

		var row models.Complaint
		require.NoError(t, db.First(&row, complaint.ComplaintID).Error)
		assert.Equal(t, models.StatusResolved, row.Status)
		assert.NotNil(t, row.ResolvedAt)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.SetStatus(ctx, complaint.ComplaintID, "Escalated"), ErrInvalidStatus)
	})

	t.Run("owner rates a resolved complaint", func(t *testing.T) {
		require.NoError(t, svc.Rate(ctx, complaint.ComplaintID, user.UserID, 4))

		var row models.Complaint
		require.NoError(t, db.First(&row, complaint.ComplaintID).Error)
		require.NotNil(t, row.Rating)
		assert.Equal(t, 4, *row.Rating)
	})

	t.Run("rating bounds", func(t *testing.T) {
		assert.ErrorIs(t, svc.Rate(ctx, complaint.ComplaintID, user.UserID, 0), ErrInvalidRating)
		assert.ErrorIs(t, svc.Rate(ctx, complaint.ComplaintID, user.UserID, 6), ErrInvalidRating)
	})

	t.Run("non-owner cannot rate", func(t *testing.T) {
		assert.ErrorIs(t, svc.Rate(ctx, complaint.ComplaintID, user.UserID+1, 5), ErrNotOwner)
	})

	t.Run("recent resolved includes the complaint", func(t *testing.T) {
		rows, err := svc.RecentResolved(ctx, 10)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, complaint.ComplaintID, rows[0].ComplaintID)
	})
}

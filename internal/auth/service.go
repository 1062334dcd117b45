package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
	"github.com/Vedant-Rajput22/hostel-complain-info/pkg/crypto"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("email already registered")
	ErrEmailDomain        = errors.New("email outside the college domain")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOAuthOnlyAccount   = errors.New("account uses Google sign-in")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidVerifyToken = errors.New("invalid or expired verification token")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
)

const (
	verifyTokenBytes = 32
	verifyTokenTTL   = 24 * time.Hour
)

// MailEnqueuer hands verification mail off to the background queue.
// Delivery is the worker's job; enqueue failures never fail registration.
type MailEnqueuer interface {
	EnqueueVerificationEmail(ctx context.Context, email, name, verifyURL string) error
}

type Service struct {
	db     *gorm.DB
	jwt    *JWTService
	domain string
	mail   MailEnqueuer
	logger *slog.Logger
}

func NewService(db *gorm.DB, jwt *JWTService, collegeDomain string, mail MailEnqueuer, logger *slog.Logger) *Service {
	return &Service{db: db, jwt: jwt, domain: collegeDomain, mail: mail, logger: logger}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	HostelBlock string
	RoomNo      string
}

type RegisterResult struct {
	UserID    uint
	VerifyURL string
}

type AuthResult struct {
	Tokens *TokenPair
	User   *models.User
}

// normalizeEmail lower-cases at every write and read path so the unique
// index sees one spelling per address.
func (s *Service) normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) domainAllowed(email string) bool {
	return strings.HasSuffix(email, "@"+s.domain)
}

// Register creates an unverified student account and its single-use
// verification token in one transaction, then enqueues the verification
// mail. The returned VerifyURL is relative; the caller knows its host.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	email := s.normalizeEmail(input.Email)
	if !s.domainAllowed(email) {
		return nil, ErrEmailDomain
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	token, err := crypto.GenerateToken(verifyTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generating verification token: %w", err)
	}

	user := models.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: &hash,
		AuthProvider: models.ProviderLocal,
		Role:         models.RoleStudent,
		Verified:     false,
	}
	if input.HostelBlock != "" {
		user.HostelBlock = &input.HostelBlock
	}
	if input.RoomNo != "" {
		user.RoomNo = &input.RoomNo
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		verification := models.EmailVerification{
			UserID:    user.UserID,
			Token:     token,
			ExpiresAt: time.Now().Add(verifyTokenTTL),
		}
		return tx.Create(&verification).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	verifyURL := "/api/auth/verify?token=" + token

	if s.mail != nil {
		if err := s.mail.EnqueueVerificationEmail(ctx, email, input.Name, verifyURL); err != nil {
			s.logger.Warn("failed to enqueue verification mail", "user_id", user.UserID, "error", err)
		}
	}

	return &RegisterResult{UserID: user.UserID, VerifyURL: verifyURL}, nil
}

// VerifyEmail consumes a verification token. Verifying an already-verified
// account is a no-op success; the token row is deleted on first use.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidVerifyToken
	}

	var verification models.EmailVerification
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidVerifyToken
		}
		return err
	}
	if verification.Expired(time.Now()) {
		return ErrInvalidVerifyToken
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, verification.UserID).Error; err != nil {
		return ErrInvalidVerifyToken
	}
	if user.Verified {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("user_id = ?", user.UserID).
			Update("verified", true).Error; err != nil {
			return err
		}
		return tx.Where("token = ?", token).Delete(&models.EmailVerification{}).Error
	})
}

// Login authenticates a password account and issues a token pair. The
// distinct errors matter: OAuth-only accounts and unverified accounts must
// not collapse into the generic invalid-credentials response.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", s.normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.OAuthOnly() {
		return nil, ErrOAuthOnlyAccount
	}
	if !user.Verified {
		return nil, ErrEmailNotVerified
	}
	if !CheckPassword(password, *user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.jwt.GenerateTokenPair(&user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Tokens: pair, User: &user}, nil
}

// GoogleProfile is the subset of the provider profile the service consumes.
type GoogleProfile struct {
	Email string
	Name  string
}

// LoginWithGoogle signs in (or creates) an account from a verified provider
// profile. New accounts are auto-verified students with no password.
func (s *Service) LoginWithGoogle(ctx context.Context, profile GoogleProfile) (*AuthResult, error) {
	email := s.normalizeEmail(profile.Email)
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	if !s.domainAllowed(email) {
		return nil, ErrEmailDomain
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		if !user.Verified {
			if err := s.db.WithContext(ctx).Model(&models.User{}).
				Where("user_id = ?", user.UserID).Update("verified", true).Error; err != nil {
				return nil, err
			}
			user.Verified = true
		}
		s.logger.Info("oauth login", "user_id", user.UserID, "email", email)

	case errors.Is(err, gorm.ErrRecordNotFound):
		name := profile.Name
		if name == "" {
			name = strings.SplitN(email, "@", 2)[0]
		}
		user = models.User{
			Name:         name,
			Email:        email,
			AuthProvider: models.ProviderGoogle,
			Role:         models.RoleStudent,
			Verified:     true,
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		s.logger.Info("new oauth user created", "user_id", user.UserID, "email", email)

	default:
		return nil, err
	}

	pair, err := s.jwt.GenerateTokenPair(&user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Tokens: pair, User: &user}, nil
}

// Refresh rotates a token pair. The user is reloaded so revoked accounts
// and role changes take effect on the next refresh.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	pair, err := s.jwt.GenerateTokenPair(&user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Tokens: pair, User: &user}, nil
}

func (s *Service) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

type UpdateProfileInput struct {
	Name        *string
	HostelBlock *string
	RoomNo      *string
}

// UpdateProfile applies a partial update built from only the supplied fields.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.HostelBlock != nil {
		updates["hostel_block"] = *input.HostelBlock
	}
	if input.RoomNo != nil {
		updates["room_no"] = *input.RoomNo
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ?", userID).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetUserByID(ctx, userID)
}

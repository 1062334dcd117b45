package dto

import "github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"

// UserDTO is the user shape returned by auth and admin endpoints.
// Password hashes never leave the service layer.
type UserDTO struct {
	UserID      uint    `json:"user_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	Verified    bool    `json:"verified"`
	HostelBlock *string `json:"hostel_block,omitempty"`
	RoomNo      *string `json:"room_no,omitempty"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		UserID:      u.UserID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Verified:    u.Verified,
		HostelBlock: u.HostelBlock,
		RoomNo:      u.RoomNo,
	}
}

type AuthResponse struct {
	Token        string  `json:"token"`
	RefreshToken string  `json:"refreshToken"`
	User         UserDTO `json:"user"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"user_id"`
}

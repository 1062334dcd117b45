package dto

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	HostelBlock *string `json:"hostel_block" validate:"omitempty,max=20"`
	RoomNo      *string `json:"room_no" validate:"omitempty,max=20"`
}

// Validate returns per-field messages, or nil when the body is well formed.
func (r *RegisterRequest) Validate() map[string]string { return checkStruct(r) }

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() map[string]string { return checkStruct(r) }

// RefreshRequest carries an optional body token; the handler falls back
// to the refreshToken cookie when the body is empty.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	HostelBlock *string `json:"hostel_block" validate:"omitempty,max=20"`
	RoomNo      *string `json:"room_no" validate:"omitempty,max=20"`
}

func (r *UpdateProfileRequest) Validate() map[string]string { return checkStruct(r) }

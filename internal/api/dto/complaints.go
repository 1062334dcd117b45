package dto

// CreateComplaintRequest carries the non-file fields of the multipart
// complaint form. Category and status closed sets are enforced by the
// service, not here, so the sentinel errors map to the right responses.
type CreateComplaintRequest struct {
	Category    string  `json:"category" validate:"required"`
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	RoomNo      *string `json:"room_no" validate:"omitempty,max=20"`
	Floor       *string `json:"floor" validate:"omitempty,max=20"`
	Block       *string `json:"block" validate:"omitempty,max=20"`
}

func (r *CreateComplaintRequest) Validate() map[string]string { return checkStruct(r) }

type AssignComplaintRequest struct {
	AssignedTo *uint `json:"assigned_to"`
}

type ComplaintStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (r *ComplaintStatusRequest) Validate() map[string]string { return checkStruct(r) }

type ComplaintRatingRequest struct {
	Rating int `json:"rating" validate:"required"`
}

func (r *ComplaintRatingRequest) Validate() map[string]string { return checkStruct(r) }

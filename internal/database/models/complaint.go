package models

import "time"

type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "Pending"
	StatusInProgress ComplaintStatus = "In Progress"
	StatusResolved   ComplaintStatus = "Resolved"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// ComplaintCategories is the closed set accepted at intake.
var ComplaintCategories = []string{
	"electricity", "plumbing", "cleaning", "internet", "furniture", "mess", "other",
}

func ValidComplaintCategory(c string) bool {
	for _, v := range ComplaintCategories {
		if v == c {
			return true
		}
	}
	return false
}

type Complaint struct {
	ComplaintID   uint            `gorm:"column:complaint_id;primaryKey" json:"complaint_id"`
	UserID        uint            `gorm:"column:user_id;index;not null" json:"user_id"`
	Category      string          `gorm:"not null" json:"category"`
	Title         string          `gorm:"not null" json:"title"`
	Description   string          `json:"description"`
	RoomNo        *string         `json:"room_no,omitempty"`
	Floor         *string         `json:"floor,omitempty"`
	Block         *string         `json:"block,omitempty"`
	ImageURL      *string         `json:"image_url"`
	LighthouseCID *string         `gorm:"column:lighthouse_cid" json:"lighthouse_cid"`
	Status        ComplaintStatus `gorm:"default:'Pending'" json:"status"`
	AssignedTo    *uint           `gorm:"column:assigned_to" json:"assigned_to,omitempty"`
	Rating        *int            `json:"rating,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	ResolvedAt    *time.Time      `json:"resolved_at,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Complaint) TableName() string {
	return "complaints"
}

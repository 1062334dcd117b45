package models

import "time"

type CleaningRequest struct {
	RequestID   uint       `gorm:"column:request_id;primaryKey" json:"request_id"`
	UserID      uint       `gorm:"column:user_id;index;not null" json:"user_id"`
	RoomNo      string     `json:"room_no"`
	Description string     `json:"description"`
	Status      string     `gorm:"default:'Pending'" json:"status"`
	AssignedTo  *uint      `gorm:"column:assigned_to" json:"assigned_to,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (CleaningRequest) TableName() string {
	return "cleaning_requests"
}

type InternetIssue struct {
	IssueID     uint      `gorm:"column:issue_id;primaryKey" json:"issue_id"`
	UserID      uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	Description string    `json:"description"`
	Status      string    `gorm:"default:'Open'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (InternetIssue) TableName() string {
	return "internet_issues"
}

type InternetOutage struct {
	OutageID  uint      `gorm:"column:outage_id;primaryKey" json:"outage_id"`
	Message   string    `gorm:"not null" json:"message"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func (InternetOutage) TableName() string {
	return "internet_outages"
}

type EntryExitLog struct {
	LogID     uint      `gorm:"column:log_id;primaryKey" json:"log_id"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	Action    string    `gorm:"not null" json:"action"` // entry | exit
	Reason    *string   `json:"reason,omitempty"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (EntryExitLog) TableName() string {
	return "entry_exit_log"
}

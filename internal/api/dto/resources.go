package dto

// MessEntryRequest is one menu slot of the mess timetable bulk update.
type MessEntryRequest struct {
	DayOfWeek string `json:"day_of_week" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	MealType  string `json:"meal_type" validate:"required,oneof=Breakfast Lunch Snacks Dinner"`
	MenuItems string `json:"menu_items" validate:"required"`
}

type MessTimetableRequest struct {
	Entries []MessEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

func (r *MessTimetableRequest) Validate() map[string]string { return checkStruct(r) }

type MessFeedbackRequest struct {
	DayOfWeek string  `json:"day_of_week" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	MealType  string  `json:"meal_type" validate:"required,oneof=Breakfast Lunch Snacks Dinner"`
	Rating    *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment   *string `json:"comment" validate:"omitempty,max=1000"`
}

func (r *MessFeedbackRequest) Validate() map[string]string { return checkStruct(r) }

type BusEntryRequest struct {
	RouteName string `json:"route_name" validate:"required,max=100"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"omitempty"`
	Stops     string `json:"stops" validate:"omitempty"`
}

type BusTimetableRequest struct {
	Entries []BusEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

func (r *BusTimetableRequest) Validate() map[string]string { return checkStruct(r) }

type CleaningRequestCreate struct {
	RoomNo      string `json:"room_no" validate:"required,max=20"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func (r *CleaningRequestCreate) Validate() map[string]string { return checkStruct(r) }

type CleaningStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending 'In Progress' Completed Cancelled"`
}

func (r *CleaningStatusRequest) Validate() map[string]string { return checkStruct(r) }

type CleaningAssignRequest struct {
	AssignedTo *uint `json:"assigned_to"`
}

type InternetIssueRequest struct {
	Description string `json:"description" validate:"required,max=1000"`
}

func (r *InternetIssueRequest) Validate() map[string]string { return checkStruct(r) }

type InternetIssueStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Open Investigating Resolved"`
}

func (r *InternetIssueStatusRequest) Validate() map[string]string { return checkStruct(r) }

type InternetOutageRequest struct {
	Message string `json:"message" validate:"required,max=500"`
}

func (r *InternetOutageRequest) Validate() map[string]string { return checkStruct(r) }

type EntryExitRequest struct {
	Action string  `json:"action" validate:"required,oneof=entry exit"`
	Reason *string `json:"reason" validate:"omitempty,max=200"`
}

func (r *EntryExitRequest) Validate() map[string]string { return checkStruct(r) }

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student staff admin"`
}

func (r *UpdateRoleRequest) Validate() map[string]string { return checkStruct(r) }

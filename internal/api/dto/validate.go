package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkStruct runs validator tags and flattens the result into the
// field -> message map the error response carries.
func checkStruct(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"request": "invalid request"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fieldName(fe)] = fieldMessage(fe)
	}
	return out
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "HostelBlock":
		return "hostel_block"
	case "RoomNo":
		return "room_no"
	case "Category":
		return "category"
	case "Title":
		return "title"
	case "Role":
		return "role"
	case "Rating":
		return "rating"
	case "Status":
		return "status"
	case "Action":
		return "action"
	default:
		return fe.Field()
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fieldName(fe) + " is required"
	case "email":
		return "Invalid email"
	case "min":
		return fieldName(fe) + " must be at least " + fe.Param() + " characters"
	case "max":
		return fieldName(fe) + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return fieldName(fe) + " must be one of: " + fe.Param()
	default:
		return fieldName(fe) + " is invalid"
	}
}

package dto

// SelectSemesterRequest switches the active semester.
type SelectSemesterRequest struct {
	ID string `json:"id" validate:"required"`
}

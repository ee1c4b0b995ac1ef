package dto

// StudentRequest carries the writable student profile fields, used by the
// administrative create and update endpoints.
type StudentRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"`
}

// StudentSummary is the reduced student shape nested inside enrollment
// responses.
type StudentSummary struct {
	ID        int64  `json:"id" example:"3"`
	FirstName string `json:"firstName" example:"John"`
	LastName  string `json:"lastName" example:"Doe"`
}

package dto

// ProfileResponse is the flattened account + profile shape returned by the
// self-service profile endpoints. BirthDate is rendered as a plain
// "yyyy-MM-dd" date with no time component.
type ProfileResponse struct {
	ID        int64  `json:"id" example:"5"`
	Email     string `json:"email" example:"student@example.com"`
	Role      string `json:"role" example:"STUDENT"`
	FirstName string `json:"firstName" example:"John"`
	LastName  string `json:"lastName" example:"Doe"`
	BirthDate string `json:"birthDate" example:"2000-01-01"`
}

// UpdateProfileRequest carries the self-service profile update fields. All
// three are required.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"`
}

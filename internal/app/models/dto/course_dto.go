package dto

import "time"

// CourseRequest carries the writable course fields.
type CourseRequest struct {
	Name string `json:"name"`
}

// CourseSummary is the reduced course shape nested inside enrollment
// responses.
type CourseSummary struct {
	ID   int64  `json:"id" example:"7"`
	Name string `json:"name" example:"Mathematics"`
}

// CourseEnrollment is one roster entry in a course detail response.
type CourseEnrollment struct {
	ID        int64          `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	Student   StudentSummary `json:"student"`
}

// CourseDetailResponse is a course together with its roster.
type CourseDetailResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	CreatedAt   time.Time          `json:"createdAt"`
	Enrollments []CourseEnrollment `json:"enrollments"`
}

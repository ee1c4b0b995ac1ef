package dto

import "time"

// CreateEnrollmentRequest is the administrative enrollment body. Pointers
// distinguish a missing id from a zero one.
type CreateEnrollmentRequest struct {
	StudentID *int64 `json:"studentId"`
	CourseID  *int64 `json:"courseId"`
}

// EnrollSelfRequest is the student self-enrollment body.
type EnrollSelfRequest struct {
	CourseID int64 `json:"courseId"`
}

// EnrollmentResponse is an enrollment with its student and course summaries.
type EnrollmentResponse struct {
	ID        int64           `json:"id"`
	StudentID int64           `json:"studentId"`
	CourseID  int64           `json:"courseId"`
	CreatedAt time.Time       `json:"createdAt"`
	Student   *StudentSummary `json:"student,omitempty"`
	Course    *CourseSummary  `json:"course,omitempty"`
}

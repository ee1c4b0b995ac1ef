package models

import "time"

// Enrollment links a student to a course. The (StudentID, CourseID) pair is
// unique: a student cannot be enrolled twice in the same course.
type Enrollment struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	StudentID int64     `json:"studentId" db:"student_id" example:"3"`
	CourseID  int64     `json:"courseId" db:"course_id" example:"7"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}

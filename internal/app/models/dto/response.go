package dto

// ErrorResponse is the body of every failed request. The API contract keeps
// this to a single message field regardless of the failure class.
type ErrorResponse struct {
	Message string `json:"message" example:"Course not found"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}

// PagedResponse is the envelope for every paged list endpoint. Total is the
// filtered-by-query but unfiltered-by-page item count.
type PagedResponse struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total" example:"42"`
	Page     int         `json:"page" example:"1"`
	PageSize int         `json:"pageSize" example:"10"`
}

// ItemsResponse wraps unpaged collections such as a student's own courses.
type ItemsResponse struct {
	Items interface{} `json:"items"`
}

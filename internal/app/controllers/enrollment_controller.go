package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/oguzk/enrollhub/internal/app/models/dto"
	"github.com/oguzk/enrollhub/internal/app/services"
	"github.com/oguzk/enrollhub/internal/middleware"
	"github.com/oguzk/enrollhub/internal/pkg/helpers"
)

// EnrollmentController handles the administrative enrollment endpoints
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// List returns a page of enrollments
// @Summary List enrollments
// @Description Returns enrollments ordered newest first with student and course summaries.
// @Tags enrollments
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 10, max 100)"
// @Success 200 {object} dto.PagedResponse
// @Security BearerAuth
// @Router /enrollments [get]
func (c *EnrollmentController) List(ctx *gin.Context) {
	page, pageSize := helpers.ParsePageParams(ctx)

	resp, err := c.enrollmentService.List(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Get returns one enrollment
// @Summary Get an enrollment
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Security BearerAuth
// @Router /enrollments/{id} [get]
func (c *EnrollmentController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, enrollment)
}

// Create enrolls a student in a course
// @Summary Create an enrollment
// @Description Enrolls any student in any course on the student's behalf.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.CreateEnrollmentRequest true "Student and course ids"
// @Success 201 {object} dto.EnrollmentResponse
// @Failure 400 {object} dto.ErrorResponse "Missing studentId or courseId"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Student already enrolled in the course"
// @Security BearerAuth
// @Router /enrollments [post]
func (c *EnrollmentController) Create(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid enrollment payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body"))
		return
	}

	if req.StudentID == nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("studentId is required"))
		return
	}
	if req.CourseID == nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("courseId is required"))
		return
	}

	enrollment, err := c.enrollmentService.Create(ctx.Request.Context(), *req.StudentID, *req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, enrollment)
}

// Delete removes an enrollment
// @Summary Delete an enrollment
// @Tags enrollments
// @Param id path int true "Enrollment ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Security BearerAuth
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.enrollmentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

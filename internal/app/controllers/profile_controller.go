package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/oguzk/enrollhub/internal/app/models/dto"
	"github.com/oguzk/enrollhub/internal/app/services"
	"github.com/oguzk/enrollhub/internal/middleware"
)

// ProfileController handles the student self-service endpoints
type ProfileController struct {
	profileService    *services.ProfileService
	enrollmentService *services.EnrollmentService
	logger            zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService, enrollmentService *services.EnrollmentService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService:    profileService,
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// Me returns the caller's profile
// @Summary Get own profile
// @Description Returns the caller's account and student profile as one flat object.
// @Tags me
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Security BearerAuth
// @Router /me [get]
func (c *ProfileController) Me(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized"))
		return
	}

	resp, err := c.profileService.Me(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateMe updates the caller's profile
// @Summary Update own profile
// @Tags me
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid fields"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Security BearerAuth
// @Router /me [put]
func (c *ProfileController) UpdateMe(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized"))
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid profile payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body"))
		return
	}

	resp, err := c.profileService.UpdateMe(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// MyCourses returns the caller's enrolled courses
// @Summary List own courses
// @Description Returns the caller's courses ordered by enrollment recency. An account without a profile gets an empty list.
// @Tags me
// @Produce json
// @Success 200 {object} dto.ItemsResponse
// @Security BearerAuth
// @Router /me/courses [get]
func (c *ProfileController) MyCourses(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized"))
		return
	}

	courses, err := c.enrollmentService.MyCourses(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ItemsResponse{Items: courses})
}

// Enroll enrolls the caller in a course
// @Summary Enroll in a course
// @Tags me
// @Accept json
// @Produce json
// @Param request body dto.EnrollSelfRequest true "Course id"
// @Success 201 {object} models.Enrollment
// @Failure 400 {object} dto.ErrorResponse "courseId is required"
// @Failure 404 {object} dto.ErrorResponse "Student profile or course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Security BearerAuth
// @Router /me/enroll [post]
func (c *ProfileController) Enroll(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized"))
		return
	}

	var req dto.EnrollSelfRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.CourseID <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("courseId is required"))
		return
	}

	enrollment, err := c.enrollmentService.EnrollSelf(ctx.Request.Context(), userID, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, enrollment)
}

// Drop removes the caller's enrollment in a course
// @Summary Drop a course
// @Tags me
// @Param courseId path int true "Course ID"
// @Success 204 "Dropped"
// @Failure 404 {object} dto.ErrorResponse "Student profile or enrollment not found"
// @Security BearerAuth
// @Router /me/enroll/{courseId} [delete]
func (c *ProfileController) Drop(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized"))
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	if err := c.enrollmentService.DropSelf(ctx.Request.Context(), userID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

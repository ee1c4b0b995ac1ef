package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/enrollhub/internal/app/controllers"
	"github.com/oguzk/enrollhub/internal/app/models"
	"github.com/oguzk/enrollhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	profileController *controllers.ProfileController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Administrative routes ---
	admin := api.Group("")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
	{
		students := admin.Group("/students")
		{
			students.GET("", studentController.List)
			students.GET("/:id", studentController.Get)
			students.POST("", studentController.Create)
			students.PUT("/:id", studentController.Update)
			students.DELETE("/:id", studentController.Delete)
		}

		courses := admin.Group("/courses")
		{
			courses.GET("", courseController.List)
			courses.GET("/:id", courseController.Get)
			courses.POST("", courseController.Create)
			courses.PUT("/:id", courseController.Update)
			courses.DELETE("/:id", courseController.Delete)
		}

		enrollments := admin.Group("/enrollments")
		{
			enrollments.GET("", enrollmentController.List)
			enrollments.GET("/:id", enrollmentController.Get)
			enrollments.POST("", enrollmentController.Create)
			enrollments.DELETE("/:id", enrollmentController.Delete)
		}
	}

	// --- Student self-service routes ---
	me := api.Group("/me")
	me.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleStudent))
	{
		me.GET("", profileController.Me)
		me.PUT("", profileController.UpdateMe)
		me.GET("/courses", profileController.MyCourses)
		me.POST("/enroll", profileController.Enroll)
		me.DELETE("/enroll/:courseId", profileController.Drop)
	}
}

package routes

import (
	"carelink-be/controllers"
	"carelink-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue lifecycle routes. Paths are kept flat because
// the frontend calls them directly as /report and /issues.
func IssueRoutes(r *gin.Engine) {
	r.POST("/report", middlewares.IssueRateLimiter(10), controllers.CreateIssue)
	r.GET("/issues", controllers.GetAllIssues)
	r.GET("/issues/:issueId", controllers.GetIssue)
	r.POST("/issues/:issueId/verify", middlewares.AuthMiddleware(), controllers.VerifyIssue)
}

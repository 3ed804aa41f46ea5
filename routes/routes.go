package routes

import (
	"os"
	"strings"

	"glowbook-backend/config"
	"glowbook-backend/controllers"
	"glowbook-backend/crm"
	"glowbook-backend/repository"
	"glowbook-backend/services"
	"glowbook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func allowedOrigins() []string {
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return []string{"http://localhost:3000"}
}

func SetupRouter(repo repository.LeadRepository, notify *services.NotifyService) *gin.Engine {
	r := gin.Default()

	origins := allowedOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	dash := crm.NewDashboard(repo, repository.NewDemoStore())

	leadController := controllers.NewLeadController(repo, dash)
	dashboardController := controllers.NewDashboardController(repo, dash)
	contactController := controllers.NewContactController(repo, notify)
	collaboratorController := controllers.NewCollaboratorController(repo)

	// public booking form
	r.POST("/contact", contactController.SubmitContact)

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		leads := api.Group("/leads")
		{
			leads.GET("", leadController.GetLeads)
			leads.POST("", leadController.CreateLead)
			leads.POST("/:id/open", leadController.OpenLead)
			leads.PATCH("/:id", leadController.UpdateLead)
			leads.POST("/:id/save", leadController.SaveLead)
			leads.POST("/:id/close", leadController.CloseLead)
			leads.DELETE("/:id", leadController.DeleteLead)
		}

		api.GET("/appointments", collaboratorController.GetAppointments)
		api.GET("/sales", collaboratorController.GetSales)

		api.GET("/dashboard", dashboardController.GetDashboard)
		api.GET("/search", dashboardController.SearchLeads)
	}

	return r
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/http/handlers"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	authenticated := cfg.AuthMiddleware.Handle
	employer := auth.RequireRole(domain.RoleEmployer)
	jobSeeker := auth.RequireRole(domain.RoleJobSeeker)

	user := api.Group("/user")
	user.Post("/register", cfg.Users.Register)
	user.Post("/login", cfg.Users.Login)
	user.Get("/logout", authenticated, cfg.Users.Logout)
	user.Get("/getuser", authenticated, cfg.Users.GetUser)

	// Literal paths go before /:id.
	job := api.Group("/job")
	job.Get("/getall", cfg.Jobs.GetAll)
	job.Get("/categories", cfg.Jobs.Categories)
	job.Post("/post", authenticated, employer, cfg.Jobs.Post)
	job.Get("/myjobs", authenticated, employer, cfg.Jobs.MyJobs)
	job.Put("/update/:id", authenticated, employer, cfg.Jobs.Update)
	job.Delete("/delete/:id", authenticated, employer, cfg.Jobs.Delete)
	job.Get("/:id", authenticated, auth.RequireAnyRole(), cfg.Jobs.GetOne)

	application := api.Group("/application", authenticated)
	application.Get("/employer/getall", employer, cfg.Applications.EmployerGetAll)
	application.Get("/jobSeeker/getall", jobSeeker, cfg.Applications.JobSeekerGetAll)
	application.Post("/post", jobSeeker, cfg.Applications.Post)
	application.Delete("/delete/:id", jobSeeker, cfg.Applications.Delete)
}

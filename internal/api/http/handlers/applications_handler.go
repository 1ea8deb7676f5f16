package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/service"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

const resumeField = "resume"

// ApplicationsHandler exposes job application endpoints.
type ApplicationsHandler struct {
	applications *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applications *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications}
}

// Post handles POST /api/application/post as multipart/form-data.
func (h *ApplicationsHandler) Post(c *fiber.Ctx) error {
	var form dto.ApplicationFormFields
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var resume *service.ResumeUpload
	if header, err := c.FormFile(resumeField); err == nil {
		file, err := header.Open()
		if err != nil {
			return apperrors.NewValidationError("unreadable resume file", nil)
		}
		defer file.Close()
		resume = &service.ResumeUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get(fiber.HeaderContentType),
			Body:        file,
		}
	}

	app, err := h.applications.Submit(c.UserContext(), actorFrom(c), service.ApplicationInput{
		JobID:       form.JobID,
		Name:        form.Name,
		Email:       form.Email,
		Phone:       form.Phone,
		Address:     form.Address,
		CoverLetter: form.CoverLetter,
	}, resume)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"message":     "application submitted",
		"application": dto.NewApplicationResponse(service.ApplicationView{Application: *app}),
	})
}

// EmployerGetAll handles GET /api/application/employer/getall.
func (h *ApplicationsHandler) EmployerGetAll(c *fiber.Ctx) error {
	views, err := h.applications.ListForEmployer(c.UserContext(), actorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "applications": dto.NewApplicationResponses(views)})
}

// JobSeekerGetAll handles GET /api/application/jobSeeker/getall.
func (h *ApplicationsHandler) JobSeekerGetAll(c *fiber.Ctx) error {
	views, err := h.applications.ListForJobSeeker(c.UserContext(), actorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "applications": dto.NewApplicationResponses(views)})
}

// Delete handles DELETE /api/application/delete/:id.
func (h *ApplicationsHandler) Delete(c *fiber.Ctx) error {
	if err := h.applications.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "application deleted"})
}

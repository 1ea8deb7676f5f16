package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// JobsHandler exposes job posting endpoints.
type JobsHandler struct {
	jobs *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobs *service.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

// GetAll handles GET /api/job/getall.
func (h *JobsHandler) GetAll(c *fiber.Ctx) error {
	filter := service.JobListFilter{
		Category:   c.Query("category"),
		SearchTerm: c.Query("search"),
	}
	if raw := c.Query("expired"); raw != "" {
		expired, err := strconv.ParseBool(raw)
		if err != nil {
			return apperrors.NewValidationError("expired must be true or false", nil)
		}
		filter.Expired = &expired
	}

	jobs, err := h.jobs.ListAll(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "jobs": dto.NewJobResponses(jobs)})
}

// Categories handles GET /api/job/categories.
func (h *JobsHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "categories": domain.JobCategories})
}

// GetOne handles GET /api/job/:id.
func (h *JobsHandler) GetOne(c *fiber.Ctx) error {
	job, err := h.jobs.GetOne(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "job": dto.NewJobResponse(job)})
}

// Post handles POST /api/job/post.
func (h *JobsHandler) Post(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	salary, err := domain.SalaryFromParts(req.FixedSalary, req.SalaryFrom, req.SalaryTo)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	job, err := h.jobs.Create(c.UserContext(), actorFrom(c), service.JobInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Country:     req.Country,
		City:        req.City,
		Location:    req.Location,
		Salary:      salary,
		Expired:     req.Expired,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "job posted successfully",
		"job":     dto.NewJobResponse(job),
	})
}

// MyJobs handles GET /api/job/myjobs.
func (h *JobsHandler) MyJobs(c *fiber.Ctx) error {
	jobs, err := h.jobs.ListMine(c.UserContext(), actorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "myJobs": dto.NewJobResponses(jobs)})
}

// Update handles PUT /api/job/update/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	patch := service.JobPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Country:     req.Country,
		City:        req.City,
		Location:    req.Location,
		Expired:     req.Expired,
	}
	if req.HasSalary() {
		salary, err := domain.SalaryFromParts(req.FixedSalary, req.SalaryFrom, req.SalaryTo)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		patch.Salary = &salary
	}

	job, err := h.jobs.Update(c.UserContext(), actorFrom(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "job updated",
		"job":     dto.NewJobResponse(job),
	})
}

// Delete handles DELETE /api/job/delete/:id.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	if err := h.jobs.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "job deleted"})
}

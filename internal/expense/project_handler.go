package expense

import (
	"strings"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProjectResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type CreateProjectRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type UpdateProjectRequest struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

// GET /api/projects
func ListProjectsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var projects []models.Project
		if err := database.DB.Order("name asc").Find(&projects).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Projeler listelenemedi")
		}

		resp := make([]ProjectResponse, 0, len(projects))
		for _, p := range projects {
			resp = append(resp, ProjectResponse{ID: p.ID, Name: p.Name, Code: p.Code})
		}
		return c.JSON(resp)
	}
}

// POST /api/projects
func CreateProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProjectRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Code = strings.TrimSpace(body.Code)
		if body.Name == "" || body.Code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name ve code zorunlu")
		}

		project := models.Project{Name: body.Name, Code: body.Code}
		if err := database.DB.Create(&project).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Proje oluşturulamadı (kod kullanımda olabilir)")
		}

		return c.Status(fiber.StatusCreated).JSON(ProjectResponse{ID: project.ID, Name: project.Name, Code: project.Code})
	}
}

// PUT /api/projects/:id
func UpdateProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var project models.Project
		if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proje bulunamadı")
		}

		var body UpdateProjectRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			project.Name = name
		}
		if body.Code != nil {
			code := strings.TrimSpace(*body.Code)
			if code == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Code boş olamaz")
			}
			project.Code = code
		}

		if err := database.DB.Save(&project).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proje güncellenemedi")
		}

		return c.JSON(ProjectResponse{ID: project.ID, Name: project.Name, Code: project.Code})
	}
}

// DELETE /api/projects/:id
func DeleteProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var count int64
		database.DB.Model(&models.Expense{}).Where("project_id = ?", id).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Gider kaydı olan proje silinemez")
		}

		if err := database.DB.Delete(&models.Project{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proje silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

package controller

import (
	"fmt"

	"lesson-notes-be/internal/dto"
	"lesson-notes-be/internal/pkg/serverutils"
	"lesson-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IExportController interface {
	RegisterRoutes(r fiber.Router)
	Export(ctx *fiber.Ctx) error
}

type exportController struct {
	exportService service.IExportService
}

func NewExportController(exportService service.IExportService) IExportController {
	return &exportController{exportService: exportService}
}

func (c *exportController) RegisterRoutes(r fiber.Router) {
	r.Post("/export", c.Export)
}

func (c *exportController) Export(ctx *fiber.Ctx) error {
	var req dto.ExportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid payload", err)
	}

	out, err := c.exportService.Export(ctx.UserContext(), &req, ctx.BaseURL())
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, out.ContentType)
	if out.Filename != "" {
		ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	}
	return ctx.Send(out.Body)
}

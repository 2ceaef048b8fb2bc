package controller

import (
	"io"

	"lesson-notes-be/internal/pkg/serverutils"
	"lesson-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITablesController interface {
	RegisterRoutes(r fiber.Router)
	ExtractTables(ctx *fiber.Ctx) error
}

type tablesController struct {
	tablesService service.ITablesService
}

func NewTablesController(tablesService service.ITablesService) ITablesController {
	return &tablesController{tablesService: tablesService}
}

func (c *tablesController) RegisterRoutes(r fiber.Router) {
	r.Post("/extract-tables", c.ExtractTables)
}

func (c *tablesController) ExtractTables(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.BadRequest("No file uploaded.", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return serverutils.Internal("Failed to process PDF.", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return serverutils.Internal("Failed to process PDF.", err)
	}

	res, err := c.tablesService.Extract(ctx.UserContext(), fileHeader.Filename, data)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

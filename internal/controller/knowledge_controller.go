package controller

import (
	"lesson-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	knowledgeService service.IKnowledgeService
}

func NewKnowledgeController(knowledgeService service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{knowledgeService: knowledgeService}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	r.Get("/knowledge", c.List)
}

func (c *knowledgeController) List(ctx *fiber.Ctx) error {
	return ctx.JSON(c.knowledgeService.List(ctx.UserContext()))
}

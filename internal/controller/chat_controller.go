package controller

import (
	"bufio"
	"context"
	"iter"

	"lesson-notes-be/internal/dto"
	"lesson-notes-be/internal/pkg/logger"
	"lesson-notes-be/internal/pkg/serverutils"
	"lesson-notes-be/internal/service"
	internalWS "lesson-notes-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	ChatSocket(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	hub         *internalWS.Hub
	logger      logger.ILogger
}

func NewChatController(chatService service.IChatService, hub *internalWS.Hub, log logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		hub:         hub,
		logger:      log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
	r.Get("/chat/ws", c.ChatSocket)
}

// ChatSocket upgrades to a websocket and streams one note as JSON frames.
func (c *chatController) ChatSocket(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		c.logger.Info("CHAT", "Starting websocket session", nil)
		internalWS.ServeChat(c.hub, conn, c.chatService, c.logger)
		c.logger.Info("CHAT", "Websocket session ended", nil)
	})(ctx)
}

// Chat streams the generated note as plain text. Errors found before the
// first chunk become JSON error responses; after that the stream just ends.
func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid payload", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// The fasthttp request context is recycled once streaming starts, so the
	// generation runs on its own context.
	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx.UserContext()))

	session, err := c.chatService.Prepare(streamCtx, &req)
	if err != nil {
		cancel()
		return err
	}

	next, stop := iter.Pull2(c.chatService.Stream(streamCtx, session))
	first, err, ok := next()
	if ok && err != nil {
		stop()
		cancel()
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set("X-Accel-Buffering", "no")
	ctx.Set("X-Session-Id", session.ID)

	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer stop()

		if !ok {
			return
		}
		if !c.write(w, session.ID, first) {
			return
		}
		for {
			chunk, err, more := next()
			if !more {
				return
			}
			if err != nil {
				c.logger.Error("CHAT", "Stream aborted", map[string]interface{}{
					"session_id": session.ID,
					"error":      err.Error(),
				})
				return
			}
			if !c.write(w, session.ID, chunk) {
				return
			}
		}
	})
	return nil
}

func (c *chatController) write(w *bufio.Writer, sessionID, chunk string) bool {
	if _, err := w.WriteString(chunk); err != nil {
		return false
	}
	if err := w.Flush(); err != nil {
		c.logger.Warn("CHAT", "Client went away", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return false
	}
	return true
}

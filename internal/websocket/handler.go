package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"lesson-notes-be/internal/dto"
	"lesson-notes-be/internal/pkg/logger"
	"lesson-notes-be/internal/pkg/serverutils"
	"lesson-notes-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeChat runs one chat generation over a websocket. The first text
// message must be a chat request; the reply is a start frame, delta frames
// and a finish or error frame, after which the socket is closed.
func ServeChat(hub *Hub, conn *websocket.Conn, chat service.IChatService, log logger.ILogger) {
	client := NewClient(uuid.NewString(), hub, conn, log)
	hub.register <- client

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.writePump()
	go func() {
		<-client.Done()
		cancel()
	}()

	// Run readPump in the handler goroutine so the connection lives as
	// long as the peer does.
	client.readPump(func(raw []byte) {
		go streamNote(ctx, client, chat, raw, log)
	})
}

func streamNote(ctx context.Context, client *Client, chat service.IChatService, raw []byte, log logger.ILogger) {
	defer client.Close()

	var req dto.ChatRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		client.SendFrame(ctx, dto.ChatStreamFrame{Type: FrameError, Error: "Invalid payload"})
		return
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		client.SendFrame(ctx, dto.ChatStreamFrame{Type: FrameError, Error: publicMessage(err)})
		return
	}

	session, err := chat.Prepare(ctx, &req)
	if err != nil {
		client.SendFrame(ctx, dto.ChatStreamFrame{Type: FrameError, Error: publicMessage(err)})
		return
	}

	if !client.SendFrame(ctx, dto.ChatStreamFrame{Type: FrameStart, ID: session.ID}) {
		return
	}
	for chunk, err := range chat.Stream(ctx, session) {
		if err != nil {
			log.Error("WS", "Stream aborted", map[string]interface{}{
				"client_id":  client.ID,
				"session_id": session.ID,
				"error":      err.Error(),
			})
			client.SendFrame(ctx, dto.ChatStreamFrame{Type: FrameError, Error: publicMessage(err)})
			return
		}
		if !client.SendFrame(ctx, dto.ChatStreamFrame{Type: FrameDelta, Text: chunk}) {
			return
		}
	}
	client.SendFrame(ctx, dto.ChatStreamFrame{Type: FrameFinish})
}

func publicMessage(err error) string {
	var appErr *serverutils.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}

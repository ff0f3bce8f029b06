package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Harshkesharwani789/wave-backend/internal/config"
	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/hub"
	"github.com/Harshkesharwani789/wave-backend/internal/service"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades HTTP connections to WebSocket and dispatches chat
// events to the chat service. A failed event never terminates the
// connection; the client gets an error frame instead.
type WSHandler struct {
	hub     *hub.Hub
	service service.ChatService
	wsCfg   config.WebSocketConfig
}

func NewWSHandler(h *hub.Hub, svc service.ChatService, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub:     h,
		service: svc,
		wsCfg:   wsCfg,
	}
}

func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.L().Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), h.hub, conn, h.wsCfg)

	h.hub.Register(client)

	go client.WritePump()
	go func() {
		client.ReadPump(h.handleMessage)
		h.service.HandleDisconnect(context.Background(), client)
	}()
}

func (h *WSHandler) handleMessage(client *hub.Client, message []byte) {
	var envelope domain.WSEnvelope
	if err := json.Unmarshal(message, &envelope); err != nil {
		client.SendJSON(domain.NewErrorEvent("Invalid message format"))
		return
	}

	ctx := context.Background()

	switch envelope.Type {
	case domain.EventJoinChat:
		var ev domain.JoinChatEvent
		if err := json.Unmarshal(message, &ev); err != nil {
			client.SendJSON(domain.NewErrorEvent("Invalid joinChat payload"))
			return
		}
		if err := h.service.HandleJoinChat(ctx, client, ev.BookingID, ev.UserID); err != nil {
			h.sendError(client, err)
		}

	case domain.EventSendMessage:
		var ev domain.SendMessageEvent
		if err := json.Unmarshal(message, &ev); err != nil {
			client.SendJSON(domain.NewErrorEvent("Invalid sendMessage payload"))
			return
		}
		if err := h.service.HandleSendMessage(ctx, client, &ev); err != nil {
			h.sendError(client, err)
		}

	case domain.EventGetMessages:
		var ev domain.GetMessagesEvent
		if err := json.Unmarshal(message, &ev); err != nil {
			client.SendJSON(domain.NewErrorEvent("Invalid getMessages payload"))
			return
		}
		if err := h.service.HandleGetMessages(ctx, client, ev.BookingID); err != nil {
			h.sendError(client, err)
		}

	default:
		client.SendJSON(domain.NewErrorEvent("Unknown event type"))
	}
}

// sendError maps internal errors to client-facing error frames. Missing
// and ineligible bookings produce the same text so booking IDs cannot be
// probed over the socket.
func (h *WSHandler) sendError(client *hub.Client, err error) {
	switch {
	case errors.Is(err, service.ErrBookingMissing), errors.Is(err, service.ErrChatNotAvailable):
		client.SendJSON(domain.NewErrorEvent(domain.ChatUnavailableMessage))
	case errors.Is(err, service.ErrNotInChatRoom):
		client.SendJSON(domain.NewErrorEvent(domain.JoinRoomRequiredMessage))
	case errors.Is(err, service.ErrEmptyMessage):
		client.SendJSON(domain.NewErrorEvent("Message text is required."))
	default:
		log.L().Error().Err(err).Str("client_id", client.ID).Msg("chat event failed")
		client.SendJSON(domain.NewErrorEvent("Something went wrong. Please try again."))
	}
}

func (h *WSHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws/chat", h.HandleWebSocket)
}

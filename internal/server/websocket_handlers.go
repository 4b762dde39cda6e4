package server

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles GET /api/ws: live notification pushes.
// The connection receives unread-count updates and platform announcements.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		// Set by AuthRequired before the upgrade
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			log.Printf("WebSocket: unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		if s.hub == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"live notifications unavailable"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket: failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		// Push the current counter so the client starts in sync.
		if count, err := s.userService.UnreadCount(s.shutdownContext(), userID); err == nil {
			if payload, merr := json.Marshal(map[string]interface{}{
				"type":    "unread_count",
				"payload": map[string]interface{}{"count": count},
			}); merr == nil {
				client.TrySend(payload)
			}
		}

		go client.WritePump()
		client.ReadPump()
	})
}

// shutdownContext returns the server-scoped context, falling back to a fresh
// background context before Start has run (tests construct handlers directly).
func (s *Server) shutdownContext() context.Context {
	if s.shutdownCtx != nil {
		return s.shutdownCtx
	}
	return context.Background()
}

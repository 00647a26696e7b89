package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vstepready/vstep-backend/internal/config"
	"github.com/vstepready/vstep-backend/internal/middleware"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams moderation events to reviewer dashboards.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// ModerationStream godoc
// WS /ws/v1/moderation/stream
// Upgrades to WebSocket and relays every message published on the moderation
// events channel until the client disconnects.
func (h *WSHandler) ModerationStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil || !claims.Role.CanReview() {
		c.JSON(http.StatusForbidden, gin.H{"error": "reviewer access required"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("reviewer_id", claims.UserID).Logger()
	wsLog.Info().Msg("Reviewer connected")

	sub := h.rdb.Subscribe(c.Request.Context(), config.CacheKey.ModerationChannel())
	defer sub.Close()

	// Drain client frames so pings and close frames are processed; the stream
	// itself is server-push only.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				wsLog.Debug().Msg("Subscription closed")
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				wsLog.Debug().Err(err).Msg("Client write failed")
				return
			}
		case <-done:
			wsLog.Info().Msg("Reviewer disconnected")
			return
		}
	}
}

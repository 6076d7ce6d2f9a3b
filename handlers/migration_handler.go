package handlers

import (
	"context"
	"net/http"
	"slices"
	"time"

	"salestrack/models"
	service "salestrack/services"
	"salestrack/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const streamWriteWait = 10 * time.Second

type MigrationResponse struct {
	Summary models.MigrationSummary `json:"summary"`
	Log     []service.LogEntry      `json:"log"`
}

// StreamMessage is one websocket frame of a streamed migration: a log entry
// while the run is going, then a single summary.
type StreamMessage struct {
	Type    string                   `json:"type"`
	Entry   *service.LogEntry        `json:"entry,omitempty"`
	Summary *models.MigrationSummary `json:"summary,omitempty"`
}

type MigrationHandler struct {
	service  service.MigrationService
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewMigrationHandler accepts websocket upgrades from allowedOrigins only.
// Requests without an Origin header (CLI tools) are always accepted.
func NewMigrationHandler(service service.MigrationService, allowedOrigins []string, logger *zap.Logger) *MigrationHandler {
	return &MigrationHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
		logger: logger,
	}
}

// Run migrates synchronously. There is no deadline and the run outlives a
// disconnected client.
func (h *MigrationHandler) Run(w http.ResponseWriter, r *http.Request) {
	log := service.NewMigrationLog(h.logger, nil)
	summary := h.service.Run(context.WithoutCancel(r.Context()), log)

	utils.HandleDataResponse(w, "Migration finished", MigrationResponse{Summary: summary, Log: log.Entries()}, http.StatusOK)
}

// Stream runs the migration and pushes every log entry over a websocket.
// The run continues if the client goes away.
func (h *MigrationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Drain control frames so close and ping from the client are handled.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	connected := true
	send := func(msg StreamMessage) {
		if !connected {
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteJSON(msg); err != nil {
			connected = false
			h.logger.Info("migration stream client disconnected", zap.Error(err))
		}
	}

	log := service.NewMigrationLog(h.logger, func(entry service.LogEntry) {
		send(StreamMessage{Type: "log", Entry: &entry})
	})
	summary := h.service.Run(context.WithoutCancel(r.Context()), log)
	send(StreamMessage{Type: "summary", Summary: &summary})

	if connected {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "migration finished"),
			time.Now().Add(streamWriteWait))
	}
}

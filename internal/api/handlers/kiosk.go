package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/skinadvisor/backend/internal/advisor"
	"github.com/wonny/skinadvisor/backend/internal/metrics"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
)

const (
	pongWait       = 60 * time.Second
	writeWait      = 10 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Kiosk message types
const (
	MessageRecommendation = "recommendation"
	MessageError          = "error"
)

// KioskReply is one server → kiosk message
type KioskReply struct {
	Type   string          `json:"type"`
	Result *advisor.Result `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Status int             `json:"status,omitempty"`
}

// KioskHandler serves the in-store kiosk websocket
// 메시지 하나 = 추천 요청 하나, 응답은 요청 순서대로
type KioskHandler struct {
	advisor   Advisor
	validator *requestValidator
	upgrader  websocket.Upgrader
	logger    *logger.Logger
}

// NewKioskHandler creates a kiosk handler
func NewKioskHandler(a Advisor, log *logger.Logger) *KioskHandler {
	return &KioskHandler{
		advisor:   a,
		validator: newRequestValidator(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// 키오스크는 사내망 전용
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log.WithComponent("kiosk"),
	}
}

// Serve upgrades the connection and handles messages until the kiosk disconnects
// GET /ws/kiosk
func (h *KioskHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Kiosk upgrade failed")
		return
	}
	defer conn.Close()

	metrics.KioskConnections.Inc()
	defer metrics.KioskConnections.Dec()

	remote := r.RemoteAddr
	h.logger.WithField("remote", remote).Info("Kiosk connected")

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go h.pingLoop(ctx, conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WithError(err).Warn("Kiosk read failed")
			}
			break
		}

		reply := h.handle(ctx, data)
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(reply); err != nil {
			h.logger.WithError(err).Warn("Kiosk write failed")
			break
		}
	}

	h.logger.WithField("remote", remote).Info("Kiosk disconnected")
}

func (h *KioskHandler) handle(ctx context.Context, data []byte) KioskReply {
	var body RecommendRequest
	if err := json.Unmarshal(data, &body); err != nil {
		return KioskReply{Type: MessageError, Error: "invalid JSON: " + err.Error(), Status: http.StatusBadRequest}
	}

	req, err := h.validator.toAdvisorRequest(&body, advisor.ChannelKiosk)
	if err != nil {
		return KioskReply{Type: MessageError, Error: err.Error(), Status: http.StatusBadRequest}
	}

	res, err := h.advisor.Recommend(ctx, req)
	if err != nil {
		return KioskReply{Type: MessageError, Error: err.Error(), Status: statusFor(err)}
	}
	return KioskReply{Type: MessageRecommendation, Result: res}
}

func (h *KioskHandler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

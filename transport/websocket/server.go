package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/arcade-backend/internal/tictactoe"
)

var (
	errMissingPayload = errors.New("payload is required")
	errUnknownAction  = errors.New("unknown action")
)

type roomRouter interface {
	Connect(connID string)
	Join(connID, roomKey string) []tictactoe.Outbound
	Move(connID string, index int) []tictactoe.Outbound
	Restart(connID string) []tictactoe.Outbound
	Leave(connID string) []tictactoe.Outbound
	Disconnect(connID string) []tictactoe.Outbound
}

type Server struct {
	logger     *slog.Logger
	hub        *Hub
	router     roomRouter
	validate   *validator.Validate
	upgrader   websocket.Upgrader
	sendBuffer int

	handlers map[string]func(connID string, msg *Message) error
}

func New(logger *slog.Logger, hub *Hub, router roomRouter, sendBuffer int) *Server {
	server := &Server{
		logger:   logger.With("component", "ws-server"),
		hub:      hub,
		router:   router,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		sendBuffer: sendBuffer,

		handlers: make(map[string]func(string, *Message) error),
	}

	server.handlers[tictactoe.EventJoinRoom] = server.handleJoinRoom
	server.handlers[tictactoe.EventMove] = server.handleMove
	server.handlers[tictactoe.EventRestart] = server.handleRestart
	server.handlers[tictactoe.EventLeaveRoom] = server.handleLeaveRoom
	server.handlers[actionPing] = server.handlePing

	return server
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	connID := uuid.NewString()
	log = log.With("connID", connID)

	c := newClient(connID, conn, that.logger, that.sendBuffer)
	that.hub.register(c)
	that.router.Connect(connID)

	log.Info("WebSocket connection established")

	go c.writePump()

	c.readPump(func(data []byte) {
		if err := that.handleMessage(connID, data); err != nil {
			log.Debug("message dropped", "error", err)
		}
	})

	that.router.Disconnect(connID)
	that.hub.unregister(c)

	log.Info("WebSocket connection closed")
}

func (that *Server) handleMessage(connID string, data []byte) error {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownAction, message.Action)
	}

	return handler(connID, &message)
}

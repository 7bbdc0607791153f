package websocket

import (
	"fmt"

	"github.com/rocketscienceinc/arcade-backend/internal/tictactoe"
)

func (that *Server) handleJoinRoom(connID string, msg *Message) error {
	var payload tictactoe.JoinRoomPayload
	if err := that.decode(msg, &payload); err != nil {
		return err
	}

	that.router.Join(connID, payload.RoomKey)

	return nil
}

func (that *Server) handleMove(connID string, msg *Message) error {
	var payload tictactoe.MovePayload
	if err := that.decode(msg, &payload); err != nil {
		return err
	}

	that.router.Move(connID, *payload.Index)

	return nil
}

func (that *Server) handleRestart(connID string, _ *Message) error {
	that.router.Restart(connID)

	return nil
}

func (that *Server) handleLeaveRoom(connID string, _ *Message) error {
	that.router.Leave(connID)

	return nil
}

func (that *Server) handlePing(connID string, _ *Message) error {
	that.hub.Send(tictactoe.Outbound{ConnID: connID, Event: actionPong})

	return nil
}

func (that *Server) decode(msg *Message, dst any) error {
	if err := decodePayload(msg, dst); err != nil {
		return err
	}

	if err := that.validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid %s payload: %w", msg.Action, err)
	}

	return nil
}

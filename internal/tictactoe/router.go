package tictactoe

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
)

// RoundPolicy decides what happens after a round ends with both players present.
type RoundPolicy string

const (
	RoundPolicyAuto   RoundPolicy = "auto"
	RoundPolicyManual RoundPolicy = "manual"
)

var ErrUnknownRoundPolicy = errors.New("unknown round policy")

func ParseRoundPolicy(s string) (RoundPolicy, error) {
	switch policy := RoundPolicy(s); policy {
	case RoundPolicyAuto, RoundPolicyManual:
		return policy, nil
	case "":
		return RoundPolicyAuto, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRoundPolicy, s)
	}
}

// Sender delivers a notification to a connection. It is called while the room
// is locked, so it must only enqueue.
type Sender interface {
	Send(msg Outbound)
}

// Stats is a point-in-time count of rooms and connections.
type Stats struct {
	Rooms       int `json:"rooms"`
	Connections int `json:"connections"`
}

// Router applies inbound events to rooms and dispatches the resulting notifications.
type Router struct {
	logger *slog.Logger

	registry *Registry
	sessions *Sessions
	sender   Sender
	policy   RoundPolicy
}

func NewRouter(logger *slog.Logger, registry *Registry, sessions *Sessions, sender Sender, policy RoundPolicy) *Router {
	return &Router{
		logger:   logger.With("component", "router"),
		registry: registry,
		sessions: sessions,
		sender:   sender,
		policy:   policy,
	}
}

// Connect allocates an empty session for a new connection.
func (that *Router) Connect(connID string) {
	that.sessions.Open(connID)
	that.logger.Debug("session opened", "connID", connID)
}

// Join seats the connection in roomKey, creating the room when needed.
// A connection holds one membership; joining another key leaves the current room first.
func (that *Router) Join(connID, roomKey string) []Outbound {
	log := that.logger.With("method", "Join", "connID", connID, "roomKey", roomKey)

	if roomKey == "" {
		log.Debug("empty room key dropped")
		return nil
	}

	session, ok := that.sessions.Get(connID)
	if !ok {
		log.Debug("unknown connection")
		return nil
	}

	var out []Outbound
	if session.InRoom() && session.RoomKey != roomKey {
		out = append(out, that.Leave(connID)...)
	}

	var joined []Outbound
	that.registry.Do(roomKey, true, func(room *entity.Room) {
		result, err := room.Join(connID)
		if errors.Is(err, apperror.ErrRoomFull) {
			log.Info("room is full")
			joined = []Outbound{{ConnID: connID, Event: EventRoomFull, Payload: RoomFullPayload{RoomKey: roomKey}}}
			that.dispatch(joined)
			return
		}

		that.sessions.Bind(connID, roomKey)

		if result.Rejoined {
			joined = []Outbound{{ConnID: connID, Event: EventRoomPlayerCount, Payload: PlayerCountPayload{Count: room.PlayerCount()}}}
			that.dispatch(joined)
			return
		}

		joined = broadcast(room, EventRoomPlayerCount, PlayerCountPayload{Count: room.PlayerCount()})
		if result.RoundStarted {
			joined = append(joined, broadcast(room, EventGameStart, gameStart(room))...)
		}

		log.Debug("player joined", "players", room.PlayerCount(), "state", room.State().String())

		that.dispatch(joined)
	})

	return append(out, joined...)
}

// Move applies a move by the connection's seat. Illegal moves are dropped silently.
func (that *Router) Move(connID string, index int) []Outbound {
	log := that.logger.With("method", "Move", "connID", connID, "index", index)

	session, ok := that.sessions.Get(connID)
	if !ok || !session.InRoom() {
		log.Debug("move without room dropped")
		return nil
	}

	var out []Outbound
	found := that.registry.Do(session.RoomKey, false, func(room *entity.Room) {
		result, err := room.Move(connID, index)
		if err != nil {
			log.Debug("illegal move dropped", "error", err)
			return
		}

		out = broadcast(room, EventBoardUpdate, BoardUpdatePayload{
			Board:  result.Board,
			Turn:   result.Turn,
			Winner: result.Winner,
			IsDraw: result.IsDraw,
		})

		if result.RoundOver {
			out = append(out, broadcast(room, EventRoundEnd, RoundEndPayload{
				Winner: result.Winner,
				IsDraw: result.IsDraw,
			})...)

			log.Info("round finished", "roomKey", room.Key(), "winner", string(result.Winner), "isDraw", result.IsDraw)

			if that.policy == RoundPolicyAuto && room.StartNextRound() {
				out = append(out, broadcast(room, EventGameStart, gameStart(room))...)
			}
		}

		that.dispatch(out)
	})

	if !found {
		log.Debug("bound room no longer exists", "roomKey", session.RoomKey)
	}

	return out
}

// Restart flips the starter and opens a new round in the connection's room.
func (that *Router) Restart(connID string) []Outbound {
	log := that.logger.With("method", "Restart", "connID", connID)

	session, ok := that.sessions.Get(connID)
	if !ok || !session.InRoom() {
		log.Debug("restart without room dropped")
		return nil
	}

	var out []Outbound
	that.registry.Do(session.RoomKey, false, func(room *entity.Room) {
		room.Restart()

		out = broadcast(room, EventGameStart, gameStart(room))

		log.Debug("round restarted", "roomKey", room.Key(), "starter", string(room.Starter()))

		that.dispatch(out)
	})

	return out
}

// Leave removes the connection from its room. An emptied room is destroyed.
func (that *Router) Leave(connID string) []Outbound {
	log := that.logger.With("method", "Leave", "connID", connID)

	session, ok := that.sessions.Get(connID)
	if !ok || !session.InRoom() {
		return nil
	}

	var out []Outbound
	that.registry.Do(session.RoomKey, false, func(room *entity.Room) {
		if !room.Leave(connID) {
			return
		}

		out = broadcast(room, EventRoomPlayerCount, PlayerCountPayload{Count: room.PlayerCount()})

		if !room.IsEmpty() {
			out = append(out, broadcast(room, EventWaitingForPlayer, WaitingPayload{})...)
		}

		log.Debug("player left", "roomKey", room.Key(), "players", room.PlayerCount())

		that.dispatch(out)
	})

	that.sessions.Unbind(connID)

	return out
}

// Disconnect runs Leave for the connection's room and discards its session.
func (that *Router) Disconnect(connID string) []Outbound {
	out := that.Leave(connID)

	that.sessions.Close(connID)
	that.logger.Debug("session closed", "connID", connID)

	return out
}

func (that *Router) Stats() Stats {
	return Stats{
		Rooms:       that.registry.Len(),
		Connections: that.sessions.Len(),
	}
}

func (that *Router) dispatch(out []Outbound) {
	if that.sender == nil {
		return
	}

	for _, msg := range out {
		that.sender.Send(msg)
	}
}

func broadcast(room *entity.Room, event string, payload any) []Outbound {
	players := room.Players()
	out := make([]Outbound, 0, len(players))

	for _, connID := range players {
		out = append(out, Outbound{ConnID: connID, Event: event, Payload: payload})
	}

	return out
}

func gameStart(room *entity.Room) GameStartPayload {
	return GameStartPayload{
		Board: room.Board(),
		Turn:  room.Turn(),
	}
}

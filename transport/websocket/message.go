package websocket

import (
	"encoding/json"
	"fmt"
)

const (
	actionPing = "ping"
	actionPong = "pong"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func encodeMessage(action string, payload any) ([]byte, error) {
	msg := Message{Action: action}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}

		msg.Payload = raw
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return data, nil
}

func decodePayload(msg *Message, dst any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%s: %w", msg.Action, errMissingPayload)
	}

	if err := json.Unmarshal(msg.Payload, dst); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}

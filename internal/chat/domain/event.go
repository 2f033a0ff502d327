package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Event kinds carried in the Pub/Sub message attributes. Each one maps to a
// deployed Firestore trigger shape.
const (
	EventChatMessageCreated = "chat.message.created" // usuarios/{tenant}/chat/{message}
	EventChatUpdated        = "chat.updated"         // chat/{message}, before+after
	EventChatCreated        = "chat.created"         // chat/{message}
)

// ChangeEvent is the JSON envelope a document change arrives in. Before is
// only present for update events.
type ChangeEvent struct {
	Path   string          `json:"path"`
	Before json.RawMessage `json:"before,omitempty"`
	After  json.RawMessage `json:"after,omitempty"`
}

// ParseChangeEvent decodes an envelope, rejecting payloads without a
// document path or after-state.
func ParseChangeEvent(data []byte) (*ChangeEvent, error) {
	var ev ChangeEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("malformed change event: %w", err)
	}
	if ev.Path == "" {
		return nil, fmt.Errorf("change event missing document path")
	}
	if len(ev.After) == 0 {
		return nil, fmt.Errorf("change event missing after-state for %s", ev.Path)
	}
	return &ev, nil
}

// AfterMessage decodes the after-state into a ChatMessage.
func (e *ChangeEvent) AfterMessage() (*ChatMessage, error) {
	var msg ChatMessage
	if err := json.Unmarshal(e.After, &msg); err != nil {
		return nil, fmt.Errorf("malformed after-state for %s: %w", e.Path, err)
	}
	return &msg, nil
}

// BeforeMessage decodes the before-state into a ChatMessage.
func (e *ChangeEvent) BeforeMessage() (*ChatMessage, error) {
	if len(e.Before) == 0 {
		return nil, fmt.Errorf("change event missing before-state for %s", e.Path)
	}
	var msg ChatMessage
	if err := json.Unmarshal(e.Before, &msg); err != nil {
		return nil, fmt.Errorf("malformed before-state for %s: %w", e.Path, err)
	}
	return &msg, nil
}

// TenantID extracts the tenant from a usuarios/{tenant}/chat/{message} path.
func (e *ChangeEvent) TenantID() (string, error) {
	parts := strings.Split(e.Path, "/")
	if len(parts) != 4 || parts[0] != "usuarios" || parts[2] != "chat" || parts[1] == "" {
		return "", fmt.Errorf("unexpected chat message path: %s", e.Path)
	}
	return parts[1], nil
}

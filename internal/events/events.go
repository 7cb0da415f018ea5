package events

import (
	"encoding/json"
	"time"
)

// Version of the event envelope the shell decodes.
const Version = 1

const (
	TypeHello            = "hello"
	TypePreferencesSaved = "preferences_saved"
	TypePreferencesReset = "preferences_reset"
	TypeJobSaved         = "job_saved"
	TypeJobUnsaved       = "job_unsaved"
	TypePing             = "ping"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// PreferencesSaved is the payload of TypePreferencesSaved.
type PreferencesSaved struct {
	MinMatchScore int `json:"minMatchScore"`
	Matches       int `json:"matches"` // jobs at or above the threshold
}

// JobToggled is the payload of TypeJobSaved and TypeJobUnsaved.
type JobToggled struct {
	ID         string `json:"id"`
	SavedCount int    `json:"savedCount"`
}

// Ping is the payload of TypePing, sent periodically so idle streams stay open.
type Ping struct {
	Subscribers int `json:"subscribers"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}

package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexibleID accepts an id sent as a JSON number or a numeric string; the
// player page embeds result ids either way.
type FlexibleID uint

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		data = []byte(s)
	}
	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", string(data))
	}
	*id = FlexibleID(v)
	return nil
}

// LoginRequest is accepted as a form post or a JSON body.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// rawText turns an arbitrary JSON value into stored text: strings are
// unquoted, null and absent values are reported as missing, anything else is
// kept as its JSON source.
func rawText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, true
		}
	}
	return string(raw), true
}

// SubmitRequest finalizes a Result. Answers is stored verbatim: a form field
// as posted, a JSON string unquoted, any other JSON value as its source text.
type SubmitRequest struct {
	ResultID FlexibleID `form:"result_id" json:"result_id"`
	Answers  string     `form:"answers" json:"answers"`
}

func (r *SubmitRequest) UnmarshalJSON(data []byte) error {
	var body struct {
		ResultID FlexibleID      `json:"result_id"`
		Answers  json.RawMessage `json:"answers"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	r.ResultID = body.ResultID
	r.Answers, _ = rawText(body.Answers)
	return nil
}

// FocusEventRequest is posted by the anti-cheat script on focus changes.
// Timestamp is left empty unless the client sent a string, so epoch numbers
// fall back to the server clock. A non-string extra is kept as JSON text.
type FocusEventRequest struct {
	ResultID  FlexibleID `json:"result_id"`
	EventType string     `json:"event_type"`
	Timestamp string     `json:"timestamp,omitempty"`
	Extra     *string    `json:"extra,omitempty"`
}

func (r *FocusEventRequest) UnmarshalJSON(data []byte) error {
	var body struct {
		ResultID  FlexibleID      `json:"result_id"`
		EventType string          `json:"event_type"`
		Timestamp json.RawMessage `json:"timestamp"`
		Extra     json.RawMessage `json:"extra"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	r.ResultID = body.ResultID
	r.EventType = body.EventType
	r.Timestamp = ""
	if ts := bytes.TrimSpace(body.Timestamp); len(ts) > 0 && ts[0] == '"' {
		r.Timestamp, _ = rawText(ts)
	}
	r.Extra = nil
	if extra, ok := rawText(body.Extra); ok {
		r.Extra = &extra
	}
	return nil
}

// ScreenshotRequest carries a data URL ("data:image/png;base64,...") or bare base64.
type ScreenshotRequest struct {
	ResultID   FlexibleID `json:"result_id"`
	Screenshot string     `json:"screenshot"`
}

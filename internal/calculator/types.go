package calculator

// KeyRequest is the JSON body for POST /sessions/{id}/keys. Key is one of
// the calculator's command tokens (DIGIT_0..DIGIT_9, DECIMAL, NEGATE, SQRT,
// PERCENT, ADD, SUBTRACT, MULTIPLY, DIVIDE, EQUALS, BACK, CE, AC,
// MEM_CLEAR, MEM_RECALL, MEM_STORE, MEM_ADD, MEM_SUB, HISTORY_CLEAR) or
// "PASTE", in which case Text carries the clipboard payload.
type KeyRequest struct {
	Key  string `json:"key"`
	Text string `json:"text,omitempty"`
}

// SessionResponse is the JSON snapshot returned by every session endpoint.
type SessionResponse struct {
	ID           string   `json:"id"`
	Display      string   `json:"display"`
	Preview      string   `json:"preview,omitempty"`
	MemorySet    bool     `json:"memory_set"`
	ErrorLatched bool     `json:"error_latched"`
	History      []string `json:"history"`
	RequestID    string   `json:"request_id"`
}

func sessionResponse(id string, snap Snapshot, requestID string) SessionResponse {
	return SessionResponse{
		ID:           id,
		Display:      snap.Display,
		Preview:      snap.Preview,
		MemorySet:    snap.MemorySet,
		ErrorLatched: snap.ErrorLatched,
		History:      snap.History,
		RequestID:    requestID,
	}
}

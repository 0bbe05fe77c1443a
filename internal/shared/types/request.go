package types

// WSMessage represents an inbound WebSocket message from the presentation layer
type WSMessage struct {
	Type    string                 `json:"type"`
	TabID   string                 `json:"tab_id,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// SearchBatch pairs validated search candidates with their opaque grounding
// references. The gateway always returns a usable (possibly empty) batch.
type SearchBatch struct {
	Results []SearchResult `json:"results"`
	Sources []string       `json:"sources"`
}

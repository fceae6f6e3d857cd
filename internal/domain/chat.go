package domain

// UsedItem is the minimal reference to a catalog record that was included
// in the grounding context of a chat reply.
type UsedItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ChatReply is the assistant's answer to one message.
type ChatReply struct {
	Text   string     `json:"reply"`
	Used   []UsedItem `json:"used,omitempty"`
	Source string     `json:"source"` // "gemini", "local" or "cache"
}

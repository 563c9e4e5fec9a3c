package models

// Chunk type labels assigned by the segmenter.
const (
	ChunkTypeTitle         = "Title"
	ChunkTypeNarrativeText = "NarrativeText"
)

// Chunk represents a bounded span of extracted document text with metadata
type Chunk struct {
	Text       string
	Type       string
	PageNumber int // 1-based, 0 when unknown
}

// Conversation roles
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message is one entry of the conversation log
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

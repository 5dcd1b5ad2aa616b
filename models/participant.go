package models

// Participant is a participant document. Timestamps are epoch milliseconds.
type Participant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Score       *Score `json:"score,omitempty"` // nil until a score exists
	JoinedAt    int64  `json:"joinedAt,omitempty"`
	SubmittedAt int64  `json:"submittedAt,omitempty"`
	LastPlayed  int64  `json:"lastPlayed,omitempty"`
	Completed   bool   `json:"completed"`
}

// Document field names shared by the store and the services.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldScore       = "score"
	FieldJoinedAt    = "joinedAt"
	FieldSubmittedAt = "submittedAt"
	FieldLastPlayed  = "lastPlayed"
	FieldCompleted   = "completed"
)

// HasScore reports whether the document carries a non-null score.
func (p *Participant) HasScore() bool {
	return p != nil && p.Score != nil
}

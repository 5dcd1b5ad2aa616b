package repositories

import (
	"context"
	"errors"

	"github.com/Dosada05/ohm-scoreboard/models"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrEmptyParticipantID  = errors.New("participant id must not be empty")
)

// Fields is a partial participant document keyed by document field name.
type Fields map[string]any

// ParticipantRepository is a document collection of participants keyed by
// their derived identifier.
type ParticipantRepository interface {
	// Get returns ErrParticipantNotFound when no document exists.
	Get(ctx context.Context, id string) (*models.Participant, error)
	// Set creates or fully replaces the document.
	Set(ctx context.Context, id string, doc Fields) error
	// Merge atomically creates the document or merges fields onto it.
	// Fields that are not listed keep their stored values.
	Merge(ctx context.Context, id string, fields Fields) error
	// Update merges fields onto an existing document only.
	Update(ctx context.Context, id string, fields Fields) error
	// List returns every document in insertion order.
	List(ctx context.Context) ([]*models.Participant, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/Dosada05/ohm-scoreboard/models"
)

type memoryParticipantRepository struct {
	mu    sync.RWMutex
	docs  map[string]map[string]json.RawMessage
	order []string
}

// NewMemoryParticipantRepository keeps documents in process memory. It has the
// same merge semantics as the Postgres store and is used when no database is
// configured.
func NewMemoryParticipantRepository() ParticipantRepository {
	return &memoryParticipantRepository{
		docs: make(map[string]map[string]json.RawMessage),
	}
}

func (r *memoryParticipantRepository) Get(ctx context.Context, id string) (*models.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	return decodeMemoryDoc(id, doc)
}

func (r *memoryParticipantRepository) Set(ctx context.Context, id string, doc Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return ErrEmptyParticipantID
	}
	raw, err := toRawFields(doc)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[id]; !exists {
		r.order = append(r.order, id)
	}
	r.docs[id] = raw
	return nil
}

func (r *memoryParticipantRepository) Merge(ctx context.Context, id string, fields Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return ErrEmptyParticipantID
	}
	raw, err := toRawFields(fields)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, exists := r.docs[id]
	if !exists {
		r.order = append(r.order, id)
		r.docs[id] = raw
		return nil
	}
	for k, v := range raw {
		doc[k] = v
	}
	return nil
}

func (r *memoryParticipantRepository) Update(ctx context.Context, id string, fields Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := toRawFields(fields)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, exists := r.docs[id]
	if !exists {
		return ErrParticipantNotFound
	}
	for k, v := range raw {
		doc[k] = v
	}
	return nil
}

func (r *memoryParticipantRepository) List(ctx context.Context) ([]*models.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	participants := make([]*models.Participant, 0, len(r.order))
	for _, id := range r.order {
		p, err := decodeMemoryDoc(id, r.docs[id])
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, nil
}

func (r *memoryParticipantRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[id]; !exists {
		return ErrParticipantNotFound
	}
	delete(r.docs, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}

func (r *memoryParticipantRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func toRawFields(fields Fields) (map[string]json.RawMessage, error) {
	raw := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode participant field %q: %w", k, err)
		}
		raw[k] = b
	}
	return raw, nil
}

func decodeMemoryDoc(id string, doc map[string]json.RawMessage) (*models.Participant, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode participant document %q: %w", id, err)
	}
	return decodeParticipant(id, payload)
}

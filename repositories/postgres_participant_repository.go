package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/ohm-scoreboard/models"
)

type postgresParticipantRepository struct {
	db *sql.DB
}

// NewPostgresParticipantRepository stores participant documents in a JSONB
// column of the participants table.
func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) Get(ctx context.Context, id string) (*models.Participant, error) {
	query := `SELECT doc FROM participants WHERE id = $1`

	var doc []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return decodeParticipant(id, doc)
}

func (r *postgresParticipantRepository) Set(ctx context.Context, id string, doc Fields) error {
	if id == "" {
		return ErrEmptyParticipantID
	}
	payload, err := encodeFields(doc)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO participants (id, doc)
		VALUES ($1, $2::jsonb)
		ON CONFLICT (id) DO UPDATE
		SET doc = EXCLUDED.doc, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, id, payload); err != nil {
		return fmt.Errorf("failed to set participant: %w", err)
	}
	return nil
}

func (r *postgresParticipantRepository) Merge(ctx context.Context, id string, fields Fields) error {
	if id == "" {
		return ErrEmptyParticipantID
	}
	payload, err := encodeFields(fields)
	if err != nil {
		return err
	}

	// jsonb || keeps keys from the left operand that the right one does not set.
	query := `
		INSERT INTO participants (id, doc)
		VALUES ($1, $2::jsonb)
		ON CONFLICT (id) DO UPDATE
		SET doc = participants.doc || EXCLUDED.doc, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, id, payload); err != nil {
		return fmt.Errorf("failed to merge participant: %w", err)
	}
	return nil
}

func (r *postgresParticipantRepository) Update(ctx context.Context, id string, fields Fields) error {
	payload, err := encodeFields(fields)
	if err != nil {
		return err
	}

	query := `UPDATE participants SET doc = doc || $2::jsonb, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, payload)
	if err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) List(ctx context.Context) ([]*models.Participant, error) {
	query := `SELECT id, doc FROM participants ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	participants := make([]*models.Participant, 0)
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		p, err := decodeParticipant(id, doc)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}
	return participants, nil
}

func (r *postgresParticipantRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM participants WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

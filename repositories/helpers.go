package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Dosada05/ohm-scoreboard/models"
)

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// decodeParticipant builds a participant from a stored document. The document
// key always wins over any "id" field inside the document.
func decodeParticipant(id string, doc []byte) (*models.Participant, error) {
	p := &models.Participant{}
	if err := json.Unmarshal(doc, p); err != nil {
		return nil, fmt.Errorf("failed to decode participant document %q: %w", id, err)
	}
	p.ID = id
	return p, nil
}

func encodeFields(fields Fields) (string, error) {
	if fields == nil {
		fields = Fields{}
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode participant fields: %w", err)
	}
	return string(payload), nil
}

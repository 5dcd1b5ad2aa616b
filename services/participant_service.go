package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/ohm-scoreboard/models"
	"github.com/Dosada05/ohm-scoreboard/repositories"
	"github.com/Dosada05/ohm-scoreboard/utils"
)

type RegisterInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SubmitScoreInput accepts the score as sent by the game: a JSON number or a
// numeric string.
type SubmitScoreInput struct {
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Score json.RawMessage `json:"score"`
}

// LeaderboardListener is notified after a write that can change the leaderboard.
type LeaderboardListener interface {
	LeaderboardChanged(ctx context.Context)
}

// ParticipantService инкапсулирует регистрацию участников и приём результатов.
type ParticipantService struct {
	repo     repositories.ParticipantRepository
	listener LeaderboardListener
	logger   *slog.Logger
	now      func() time.Time
}

// NewParticipantService создаёт ParticipantService. listener может быть nil.
func NewParticipantService(
	repo repositories.ParticipantRepository,
	listener LeaderboardListener,
	logger *slog.Logger,
) *ParticipantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParticipantService{
		repo:     repo,
		listener: listener,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates or replaces the participant document with a zero score.
// Registering again resets the stored progress for that identifier.
func (s *ParticipantService) Register(ctx context.Context, input RegisterInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return "", ErrNameAndEmailRequired
	}

	id := utils.DeriveParticipantID(email)
	doc := repositories.Fields{
		models.FieldName:      name,
		models.FieldEmail:     email,
		models.FieldScore:     0,
		models.FieldJoinedAt:  s.now().UnixMilli(),
		models.FieldCompleted: false,
	}
	if err := s.repo.Set(ctx, id, doc); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	s.logger.InfoContext(ctx, "participant registered",
		slog.String("participant_id", id),
		slog.String("name", name),
		slog.String("email", email))

	if s.listener != nil {
		s.listener.LeaderboardChanged(ctx)
	}
	return id, nil
}

// SubmitScore upserts the participant's latest score. joinedAt and any other
// field not written here survive the merge.
func (s *ParticipantService) SubmitScore(ctx context.Context, input SubmitScoreInput) (string, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return "", ErrEmailRequired
	}
	score, ok := models.ParseSubmittedScore(input.Score)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidScore, string(input.Score))
	}

	id := utils.DeriveParticipantID(email)
	now := s.now().UnixMilli()
	fields := repositories.Fields{
		models.FieldName:        strings.TrimSpace(input.Name),
		models.FieldEmail:       email,
		models.FieldScore:       score,
		models.FieldSubmittedAt: now,
		models.FieldCompleted:   true,
		models.FieldLastPlayed:  now,
	}
	if err := s.repo.Merge(ctx, id, fields); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	s.logger.InfoContext(ctx, "score submitted",
		slog.String("participant_id", id),
		slog.Int64("score", score))

	if s.listener != nil {
		s.listener.LeaderboardChanged(ctx)
	}
	return id, nil
}

func (s *ParticipantService) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant %q: %w", id, err)
	}
	return p, nil
}

func (s *ParticipantService) DeleteParticipant(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("failed to delete participant %q: %w", id, err)
	}
	s.logger.InfoContext(ctx, "participant deleted", slog.String("participant_id", id))
	if s.listener != nil {
		s.listener.LeaderboardChanged(ctx)
	}
	return nil
}

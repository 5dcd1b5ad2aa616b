package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Dosada05/ohm-scoreboard/models"
	"github.com/Dosada05/ohm-scoreboard/repositories"
	"github.com/Dosada05/ohm-scoreboard/storage"
	"github.com/google/uuid"
)

const unknownParticipantName = "Unknown"

// Broadcaster доставляет сообщения подписчикам комнаты (websocket hub).
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// LeaderboardOptions configures optional collaborators. Zero values disable
// the corresponding feature.
type LeaderboardOptions struct {
	Uploader    storage.FileUploader
	Broadcaster Broadcaster
	// Fallback serves placeholder entries instead of failing when the store
	// cannot be read.
	Fallback bool
}

type LeaderboardService struct {
	repo        repositories.ParticipantRepository
	uploader    storage.FileUploader
	broadcaster Broadcaster
	fallback    bool
	logger      *slog.Logger
	now         func() time.Time
}

func NewLeaderboardService(repo repositories.ParticipantRepository, opts LeaderboardOptions, logger *slog.Logger) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardService{
		repo:        repo,
		uploader:    opts.Uploader,
		broadcaster: opts.Broadcaster,
		fallback:    opts.Fallback,
		logger:      logger,
		now:         time.Now,
	}
}

// Leaderboard returns participants with a score, best first. limit <= 0 means
// no limit.
func (s *LeaderboardService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}

	entries, err := s.load(ctx)
	if err != nil {
		if !s.fallback {
			return nil, err
		}
		s.logger.WarnContext(ctx, "serving placeholder leaderboard", slog.Any("error", err))
		entries = s.placeholderEntries()
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// LeaderboardChanged pushes the current board to websocket subscribers.
func (s *LeaderboardService) LeaderboardChanged(ctx context.Context) {
	if s.broadcaster == nil {
		return
	}
	entries, err := s.load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load leaderboard for broadcast", slog.Any("error", err))
		return
	}
	s.broadcaster.BroadcastToRoom(models.LeaderboardRoom, models.LeaderboardMessage{
		Type:    models.LeaderboardUpdated,
		Payload: entries,
	})
}

// CurrentMessage builds the message sent to a subscriber right after it connects.
func (s *LeaderboardService) CurrentMessage(ctx context.Context) (models.LeaderboardMessage, error) {
	entries, err := s.load(ctx)
	if err != nil {
		return models.LeaderboardMessage{}, err
	}
	return models.LeaderboardMessage{Type: models.LeaderboardUpdated, Payload: entries}, nil
}

// Snapshot uploads the current leaderboard as a JSON object. Placeholder data
// is never published.
func (s *LeaderboardService) Snapshot(ctx context.Context) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrSnapshotsDisabled
	}

	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode leaderboard snapshot: %w", err)
	}

	key := fmt.Sprintf("leaderboards/%s-%s.json", s.now().UTC().Format("20060102T150405Z"), uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotUploadFailed, err)
	}

	s.logger.InfoContext(ctx, "leaderboard snapshot uploaded",
		slog.String("key", result.Key),
		slog.Int("entries", len(entries)))
	return result, nil
}

func (s *LeaderboardService) load(ctx context.Context) ([]models.LeaderboardEntry, error) {
	participants, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLeaderboardFailed, err)
	}
	return buildLeaderboard(participants), nil
}

// buildLeaderboard drops participants without a score, projects the rest and
// sorts them by score descending. Equal scores keep retrieval order.
func buildLeaderboard(participants []*models.Participant) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(participants))
	for _, p := range participants {
		if !p.HasScore() {
			continue
		}
		entries = append(entries, toLeaderboardEntry(p))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

func toLeaderboardEntry(p *models.Participant) models.LeaderboardEntry {
	name := p.Name
	if name == "" {
		name = unknownParticipantName
	}
	submittedAt := p.SubmittedAt
	if submittedAt == 0 {
		submittedAt = p.JoinedAt
	}
	return models.LeaderboardEntry{
		Name:        name,
		Email:       p.Email,
		Score:       p.Score.Int64(),
		SubmittedAt: submittedAt,
	}
}

func (s *LeaderboardService) placeholderEntries() []models.LeaderboardEntry {
	now := s.now().UnixMilli()
	return []models.LeaderboardEntry{
		{Name: "Test Player 1", Email: "test1@example.com", Score: 150, SubmittedAt: now},
		{Name: "Test Player 2", Email: "test2@example.com", Score: 120, SubmittedAt: now},
		{Name: "op", Email: "24ituos105@oddu.ac.in", Score: 90, SubmittedAt: now},
	}
}

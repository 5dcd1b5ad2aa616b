package services

import "errors"

var (
	// Ошибки валидации
	ErrNameAndEmailRequired = errors.New("name and email required")
	ErrEmailRequired        = errors.New("email is required")
	ErrInvalidScore         = errors.New("score must be a number")
	ErrInvalidLimit         = errors.New("limit must be a non-negative integer")

	ErrParticipantNotFound = errors.New("participant not found")

	// Ошибки хранилища
	ErrRegistrationFailed   = errors.New("registration failed")
	ErrSubmissionFailed     = errors.New("score submission failed")
	ErrLeaderboardFailed    = errors.New("failed to load leaderboard")
	ErrSnapshotsDisabled    = errors.New("leaderboard snapshots are not configured")
	ErrSnapshotUploadFailed = errors.New("failed to upload leaderboard snapshot")
)

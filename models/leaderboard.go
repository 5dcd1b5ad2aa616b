package models

// LeaderboardEntry is the public projection of a participant with a score.
type LeaderboardEntry struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Score       int64  `json:"score"`
	SubmittedAt int64  `json:"submittedAt"`
}

// LeaderboardMessage is pushed to websocket subscribers.
type LeaderboardMessage struct {
	Type    string             `json:"type"`
	Payload []LeaderboardEntry `json:"payload"`
}

const LeaderboardUpdated = "LEADERBOARD_UPDATED"

// LeaderboardRoom is the websocket room that receives leaderboard updates.
const LeaderboardRoom = "leaderboard"

package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/ohm-scoreboard/models"
	"github.com/Dosada05/ohm-scoreboard/repositories"
	"github.com/Dosada05/ohm-scoreboard/storage"
)

var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// failingRepo fails every call with err and counts the calls it received.
type failingRepo struct {
	err   error
	calls int
}

func (r *failingRepo) Get(context.Context, string) (*models.Participant, error) {
	r.calls++
	return nil, r.err
}
func (r *failingRepo) Set(context.Context, string, repositories.Fields) error {
	r.calls++
	return r.err
}
func (r *failingRepo) Merge(context.Context, string, repositories.Fields) error {
	r.calls++
	return r.err
}
func (r *failingRepo) Update(context.Context, string, repositories.Fields) error {
	r.calls++
	return r.err
}
func (r *failingRepo) List(context.Context) ([]*models.Participant, error) {
	r.calls++
	return nil, r.err
}
func (r *failingRepo) Delete(context.Context, string) error {
	r.calls++
	return r.err
}
func (r *failingRepo) Ping(context.Context) error {
	r.calls++
	return r.err
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	rooms    []string
	messages []interface{}
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rooms = append(b.rooms, roomID)
	b.messages = append(b.messages, message)
}

type countingListener struct{ n int }

func (l *countingListener) LeaderboardChanged(context.Context) { l.n++ }

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (u *fakeUploader) Upload(_ context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, err
	}
	u.key, u.contentType, u.body = key, contentType, buf.Bytes()
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

var errStoreDown = errors.New("store down")

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Dosada05/ohm-scoreboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresRepoWithMock(t *testing.T) (ParticipantRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresParticipantRepository(db), mock
}

func TestPostgresRepository_Get(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"doc"}).
		AddRow([]byte(`{"name":"Ann","email":"ann@x.io","score":"55","joinedAt":10,"completed":true}`))
	mock.ExpectQuery(`(?s)^SELECT\s+doc\s+FROM\s+participants\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("ann").
		WillReturnRows(rows)

	p, err := repo.Get(context.Background(), "ann")
	require.NoError(t, err)
	assert.Equal(t, "ann", p.ID)
	assert.Equal(t, "Ann", p.Name)
	assert.Equal(t, int64(55), p.Score.Int64())
	assert.True(t, p.Completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetNotFound(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	mock.ExpectQuery(`SELECT\s+doc\s+FROM\s+participants`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestPostgresRepository_GetDBError(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	mock.ExpectQuery(`SELECT\s+doc\s+FROM\s+participants`).
		WithArgs("ann").
		WillReturnError(errors.New("db down"))

	_, err := repo.Get(context.Background(), "ann")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get participant: db down")
}

func TestPostgresRepository_SetReplacesDocument(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+participants\s+\(id,\s*doc\).*ON\s+CONFLICT\s+\(id\)\s+DO\s+UPDATE\s+SET\s+doc\s*=\s*EXCLUDED\.doc`).
		WithArgs("ann", `{"name":"Ann"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Set(context.Background(), "ann", Fields{models.FieldName: "Ann"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_MergeUsesJSONBConcat(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	mock.ExpectExec(`(?s)ON\s+CONFLICT\s+\(id\)\s+DO\s+UPDATE\s+SET\s+doc\s*=\s*participants\.doc\s*\|\|\s*EXCLUDED\.doc`).
		WithArgs("ann", `{"completed":true,"score":90}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Merge(context.Background(), "ann", Fields{models.FieldScore: 90, models.FieldCompleted: true})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_MergeDBError(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+participants`).
		WillReturnError(errors.New("conn reset"))

	err := repo.Merge(context.Background(), "ann", Fields{models.FieldScore: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to merge participant: conn reset")
}

func TestPostgresRepository_EmptyIDNeverHitsDB(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	assert.ErrorIs(t, repo.Set(context.Background(), "", Fields{}), ErrEmptyParticipantID)
	assert.ErrorIs(t, repo.Merge(context.Background(), "", Fields{}), ErrEmptyParticipantID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpdateNotFound(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	mock.ExpectExec(`UPDATE\s+participants\s+SET\s+doc\s*=\s*doc\s*\|\|`).
		WithArgs("ghost", `{"score":1}`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), "ghost", Fields{models.FieldScore: 1})
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestPostgresRepository_ListOrdersBySeq(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "doc"}).
		AddRow("b", []byte(`{"name":"B","score":10}`)).
		AddRow("a", []byte(`{"name":"A"}`))
	mock.ExpectQuery(`(?s)SELECT\s+id,\s*doc\s+FROM\s+participants\s+ORDER\s+BY\s+seq`).
		WillReturnRows(rows)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.True(t, all[0].HasScore())
	assert.Equal(t, "a", all[1].ID)
	assert.False(t, all[1].HasScore())
}

func TestPostgresRepository_ListBadDocument(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "doc"}).AddRow("x", []byte(`not json`))
	mock.ExpectQuery(`SELECT\s+id,\s*doc\s+FROM\s+participants`).WillReturnRows(rows)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to decode participant document "x"`)
}

func TestPostgresRepository_Delete(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	mock.ExpectExec(`DELETE\s+FROM\s+participants\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("ann").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+participants`).
		WithArgs("ann").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "ann"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "ann"), ErrParticipantNotFound)
}

package pgmirror

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/dmitrijs2005/lifedash/internal/mirror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var (
	upsertQ = regexp.MustCompile(`INSERT INTO mirror_rows .* ON CONFLICT \(account, tbl, id\) DO UPDATE SET .*`).String()
	selectQ = regexp.QuoteMeta(`SELECT id, updated_at, deleted_at, payload, nonce FROM mirror_rows`)
	deleteQ = regexp.QuoteMeta(`DELETE FROM mirror_rows WHERE account=$1 AND tbl=$2 AND id=$3`)
)

func TestSelectRows(t *testing.T) {
	db, mock := newMock(t)
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	del := ts.Add(time.Hour)

	mock.ExpectQuery(selectQ).
		WithArgs("acct", "notes").
		WillReturnRows(sqlmock.NewRows([]string{"id", "updated_at", "deleted_at", "payload", "nonce"}).
			AddRow("n1", ts, nil, []byte(`{"title":"a"}`), nil).
			AddRow("n2", ts, del, []byte("ct"), []byte("nonce")))

	rows, err := NewRepository(db).SelectRows(context.Background(), "acct", "notes")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "n1", rows[0].ID)
	assert.True(t, rows[0].UpdatedAt.Equal(ts))
	assert.Nil(t, rows[0].DeletedAt)
	assert.Nil(t, rows[0].Nonce)

	require.NotNil(t, rows[1].DeletedAt)
	assert.True(t, rows[1].DeletedAt.Equal(del))
	assert.Equal(t, []byte("nonce"), rows[1].Nonce)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectRows_QueryError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(selectQ).WillReturnError(errors.New("db is down"))

	_, err := NewRepository(db).SelectRows(context.Background(), "acct", "notes")
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectRows_ScanError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(selectQ).
		WillReturnRows(sqlmock.NewRows([]string{"id", "updated_at", "deleted_at", "payload", "nonce"}).
			AddRow("n1", "not-a-time", nil, []byte(`{}`), nil))

	_, err := NewRepository(db).SelectRows(context.Background(), "acct", "notes")
	assert.Error(t, err)
}

func TestUpsertRow(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	row := mirror.Row{ID: "n1", UpdatedAt: ts, Payload: []byte(`{}`)}

	tests := []struct {
		name    string
		setup   func(sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "one row affected",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(upsertQ).
					WithArgs("acct", "notes", "n1", sqlmock.AnyArg(), nil, []byte(`{}`), []byte(nil)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "exec error",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(upsertQ).WillReturnError(errors.New("db is down"))
			},
			wantErr: true,
		},
		{
			name: "no row affected",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(upsertQ).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
		},
		{
			name: "rows affected error",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(upsertQ).WillReturnResult(sqlmock.NewErrorResult(errors.New("boom")))
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			tt.setup(mock)

			err := NewRepository(db).UpsertRow(context.Background(), "acct", "notes", row)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPushRows_CommitsAll(t *testing.T) {
	db, mock := newMock(t)
	ts := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(upsertQ).WithArgs("acct", "notes", "a", sqlmock.AnyArg(), nil, []byte("1"), []byte(nil)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(upsertQ).WithArgs("acct", "notes", "b", sqlmock.AnyArg(), nil, []byte("2"), []byte(nil)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := PushRows(context.Background(), db, "acct", "notes", []mirror.Row{
		{ID: "a", UpdatedAt: ts, Payload: []byte("1")},
		{ID: "b", UpdatedAt: ts, Payload: []byte("2")},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPushRows_RollsBackOnError(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(upsertQ).WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	err := PushRows(context.Background(), db, "acct", "notes", []mirror.Row{
		{ID: "a", UpdatedAt: time.Now(), Payload: []byte("1")},
		{ID: "b", UpdatedAt: time.Now(), Payload: []byte("2")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row a")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveRows(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(deleteQ).WithArgs("acct", "notes", "a").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteQ).WithArgs("acct", "notes", "gone").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, RemoveRows(context.Background(), db, "acct", "notes", []string{"a", "gone"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMirror_ErrorsAreUnavailable(t *testing.T) {
	db, mock := newMock(t)
	m := New(db, "acct")

	mock.ExpectQuery(selectQ).WillReturnError(errors.New("connection reset"))
	_, err := m.Fetch(context.Background(), "notes")
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)

	mock.ExpectBegin().WillReturnError(errors.New("connection reset"))
	err = m.Push(context.Background(), "notes", []mirror.Row{{ID: "a"}})
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMirror_EmptyBatchesSkipTheDatabase(t *testing.T) {
	db, mock := newMock(t)
	m := New(db, "acct")

	assert.True(t, m.Configured())
	assert.NoError(t, m.Push(context.Background(), "notes", nil))
	assert.NoError(t, m.Remove(context.Background(), "notes", nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

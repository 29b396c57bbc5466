package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"TodoAPI/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationRepository_ListByUser(t *testing.T) {
	db, mock, sqlDB := newMySQLMockDB(t)
	defer sqlDB.Close()
	repo := NewConversationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `conversations` WHERE user_id = ?")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `conversations` WHERE user_id = ? ORDER BY updated_at DESC,id DESC LIMIT ?")).
		WithArgs("u1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "created_at", "updated_at", "last_message_at"}).
			AddRow("c3", "u1", "hello", now, now, now))

	items, total, err := repo.ListByUser(context.Background(), "u1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 1)
	assert.Equal(t, "c3", items[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepository_FindByID_Foreign(t *testing.T) {
	db, mock, sqlDB := newMySQLMockDB(t)
	defer sqlDB.Close()
	repo := NewConversationRepository(db)

	mock.ExpectQuery(`FROM `+"`conversations`"+` WHERE \(?id = \? AND user_id = \?`).
		WithArgs("c1", "u2", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), "u2", "c1")
	assert.True(t, IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepository_Touch(t *testing.T) {
	db, mock, sqlDB := newMySQLMockDB(t)
	defer sqlDB.Close()
	repo := NewConversationRepository(db)

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `conversations` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Touch(context.Background(), "c1", at))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepository_AddMessage(t *testing.T) {
	db, mock, sqlDB := newMySQLMockDB(t)
	defer sqlDB.Close()
	repo := NewConversationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `messages`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m := &models.Message{ConversationID: "c1", Role: models.RoleUser, Content: "hi"}
	require.NoError(t, repo.AddMessage(context.Background(), m))
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.Timestamp.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepository_ListMessages_Chronological(t *testing.T) {
	db, mock, sqlDB := newMySQLMockDB(t)
	defer sqlDB.Close()
	repo := NewConversationRepository(db)

	t0 := time.Now()
	rows := sqlmock.NewRows([]string{"id", "conversation_id", "role", "content", "timestamp"}).
		AddRow("m3", "c1", "assistant", "third", t0.Add(2*time.Second)).
		AddRow("m2", "c1", "user", "second", t0.Add(time.Second))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `messages` WHERE conversation_id = ? ORDER BY timestamp DESC")).
		WithArgs("c1", sqlmock.AnyArg()).
		WillReturnRows(rows)

	items, err := repo.ListMessages(context.Background(), "c1", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Content)
	assert.Equal(t, "third", items[1].Content)
	require.NoError(t, mock.ExpectationsWereMet())
}

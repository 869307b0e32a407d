package repository

import (
	"sync"
	"testing"

	"github.com/hung20012004/Nhom373DCTT24-sub003/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and serializes
	// concurrent writes the way the MySQL engine would.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// The production schema uses MySQL enum columns, so the test schema is
	// declared explicitly instead of auto-migrated.
	require.NoError(t, db.Exec(`CREATE TABLE chat_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		message TEXT NOT NULL,
		category TEXT DEFAULT 'support',
		is_admin BOOLEAN DEFAULT 0,
		user_id INTEGER,
		created_at DATETIME
	)`).Error)
	return db
}

func TestListEmptyConversation(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))

	messages, err := repo.List()
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestAppendAndListOrder(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))

	for _, text := range []string{"A", "B", "C"} {
		_, err := repo.Append(text, models.ChatCategorySupport, false, nil)
		require.NoError(t, err)
	}

	messages, err := repo.List()
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "A", messages[0].Message)
	assert.Equal(t, "B", messages[1].Message)
	assert.Equal(t, "C", messages[2].Message)
	assert.Less(t, messages[0].ID, messages[1].ID)
	assert.Less(t, messages[1].ID, messages[2].ID)
}

func TestAppendRejectsEmptyMessage(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))

	for _, text := range []string{"", "   ", "\t\n"} {
		record, err := repo.Append(text, models.ChatCategorySupport, true, nil)
		assert.ErrorIs(t, err, ErrEmptyMessage)
		assert.Nil(t, record)
	}

	// No write happened and no identifier was consumed.
	messages, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, messages)

	record, err := repo.Append("hello", models.ChatCategorySupport, false, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), record.ID)
}

func TestAppendRejectsUnknownCategory(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))

	record, err := repo.Append("hello", "billing", false, nil)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Nil(t, record)
}

func TestAppendDefaultsCategory(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))

	record, err := repo.Append("hello", "", false, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ChatCategorySupport, record.Category)
}

func TestAppendTrimsMessage(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))

	record, err := repo.Append("  I need help  ", models.ChatCategoryReturn, false, nil)
	require.NoError(t, err)
	assert.Equal(t, "I need help", record.Message)
	assert.Equal(t, models.ChatCategoryReturn, record.Category)
}

func TestAppendRecordsSender(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))

	uid := uint(42)
	record, err := repo.Append("order status?", models.ChatCategoryOrder, false, &uid)
	require.NoError(t, err)
	require.NotNil(t, record.UserID)
	assert.Equal(t, uid, *record.UserID)
}

func TestConcurrentAppendsGetDistinctIDs(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))

	const n = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	ids := make(map[uint]bool)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			record, err := repo.Append("concurrent", models.ChatCategorySupport, false, nil)
			if err != nil {
				t.Errorf("append failed: %v", err)
				return
			}
			mu.Lock()
			ids[record.ID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, ids, n, "every append must receive a distinct identifier")

	messages, err := repo.List()
	require.NoError(t, err)
	require.Len(t, messages, n)
	for i := 1; i < len(messages); i++ {
		assert.Less(t, messages[i-1].ID, messages[i].ID)
	}
}

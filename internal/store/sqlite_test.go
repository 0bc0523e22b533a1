package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)

	user, err := s.CreateUser("alice", "hash123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.ExternalUserID)
	assert.Equal(t, "hash123", user.PasswordHash)
	assert.NotZero(t, user.ID)

	found, err := s.GetUserByExternalID("alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
}

func TestGetUserByExternalID_NotFound(t *testing.T) {
	s := newTestStore(t)

	found, err := s.GetUserByExternalID("nobody")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCreateUser_DuplicateExternalID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateUser("alice", "h1")
	require.NoError(t, err)
	_, err = s.CreateUser("alice", "h2")
	assert.Error(t, err)
}

func TestChatLifecycle(t *testing.T) {
	s := newTestStore(t)
	user, err := s.CreateUser("alice", "h")
	require.NoError(t, err)

	chat, err := s.CreateChat(user.ID, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, chat.ID)
	assert.Nil(t, chat.Title)

	found, err := s.GetChatByID(chat.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, chat.ID, found.ID)

	// Ownership scoping: another user cannot see the chat.
	other, err := s.CreateUser("bob", "h")
	require.NoError(t, err)
	notOurs, err := s.GetChatByID(chat.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, notOurs)

	require.NoError(t, s.UpdateChatTitle(chat.ID, user.ID, "Payroll questions"))
	found, err = s.GetChatByID(chat.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Title)
	assert.Equal(t, "Payroll questions", *found.Title)

	assert.Error(t, s.UpdateChatTitle(chat.ID, other.ID, "hijack"))
}

func TestGetChatsByUserID(t *testing.T) {
	s := newTestStore(t)
	user, err := s.CreateUser("alice", "h")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := s.CreateChat(user.ID, nil)
		require.NoError(t, err)
	}

	chats, err := s.GetChatsByUserID(user.ID)
	require.NoError(t, err)
	assert.Len(t, chats, 3)
}

func TestMessages(t *testing.T) {
	s := newTestStore(t)
	user, err := s.CreateUser("alice", "h")
	require.NoError(t, err)
	chat, err := s.CreateChat(user.ID, nil)
	require.NoError(t, err)

	contents := []string{"first", "second", "third"}
	for _, c := range contents {
		msg := &Message{ChatID: chat.ID, Sender: SenderUser, Content: c}
		require.NoError(t, s.CreateMessage(msg))
		assert.NotEmpty(t, msg.ID)
	}

	msgs, err := s.GetMessagesByChatID(chat.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "third", msgs[2].Content)
}

func TestGetLastNMessages_ChronologicalOrder(t *testing.T) {
	s := newTestStore(t)
	user, err := s.CreateUser("alice", "h")
	require.NoError(t, err)
	chat, err := s.CreateChat(user.ID, nil)
	require.NoError(t, err)

	senders := []string{SenderUser, SenderModel, SenderUser, SenderModel}
	for i, sender := range senders {
		msg := &Message{ChatID: chat.ID, Sender: sender, Content: string(rune('a' + i))}
		require.NoError(t, s.CreateMessage(msg))
	}

	msgs, err := s.GetLastNMessagesByChatID(chat.ID, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "c", msgs[0].Content)
	assert.Equal(t, "d", msgs[1].Content)
}

func TestCreateMessage_RejectsUnknownSender(t *testing.T) {
	s := newTestStore(t)
	user, err := s.CreateUser("alice", "h")
	require.NoError(t, err)
	chat, err := s.CreateChat(user.ID, nil)
	require.NoError(t, err)

	msg := &Message{ChatID: chat.ID, Sender: "robot", Content: "hi"}
	assert.Error(t, s.CreateMessage(msg))
}

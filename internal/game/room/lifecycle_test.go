package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/belote/internal/apperrors"
	"github.com/palemoky/belote/internal/game/session"
	"github.com/palemoky/belote/internal/server/storage"
	"github.com/palemoky/belote/internal/testutil"
)

func TestNotifyPlayerOffline_AllPlayersOffline(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager()
	client1 := testutil.NewSimpleClient("p1", "Player1")
	client2 := testutil.NewSimpleClient("p2", "Player2")

	room, err := rm.CreateRoom(client1)
	require.NoError(t, err)
	_, err = rm.JoinRoom(client2, room.Code)
	require.NoError(t, err)

	// All players go offline
	rm.NotifyPlayerOffline(client1)
	rm.NotifyPlayerOffline(client2)

	// Room should be deleted
	assert.Nil(t, rm.GetRoom(room.Code))
}

func TestNotifyPlayerOffline_PartialOffline(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager()
	client1 := testutil.NewSimpleClient("p1", "Player1")
	client2 := testutil.NewSimpleClient("p2", "Player2")

	room, err := rm.CreateRoom(client1)
	require.NoError(t, err)
	_, err = rm.JoinRoom(client2, room.Code)
	require.NoError(t, err)

	// Only one player goes offline
	rm.NotifyPlayerOffline(client1)

	// Room should still exist
	assert.NotNil(t, rm.GetRoom(room.Code))

	// Verify offline notification was sent to the other player
	assert.Eventually(t, func() bool {
		return len(client2.SentMessages()) > 0
	}, time.Second, 10*time.Millisecond)
}

func TestNotifyPlayerOffline_NotInRoom(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager()
	client := testutil.NewSimpleClient("p1", "Player1")

	// Client not in any room - should not panic
	assert.NotPanics(t, func() {
		rm.NotifyPlayerOffline(client)
	})
}

func TestReconnectPlayer_Success(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager()
	oldClient := testutil.NewSimpleClient("p1", "Player1")
	newClient := testutil.NewSimpleClient("p1", "Player1") // Same ID, new connection

	room, err := rm.CreateRoom(oldClient)
	require.NoError(t, err)

	err = rm.ReconnectPlayer(oldClient, newClient)
	require.NoError(t, err)

	// Verify new client is in room
	assert.Equal(t, room.Code, newClient.GetRoom())

	// Verify room player reference updated
	rm.mu.RLock()
	r := rm.rooms[room.Code]
	rm.mu.RUnlock()

	r.mu.RLock()
	player := r.Players[newClient.GetID()]
	r.mu.RUnlock()

	assert.Equal(t, newClient, player.Client)
}

func TestReconnectPlayer_RoomNotFound(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager()
	oldClient := testutil.NewSimpleClient("p1", "Player1")
	newClient := testutil.NewSimpleClient("p1", "Player1")

	// Set room code but room doesn't exist
	oldClient.SetRoom("NONEXISTENT")

	err := rm.ReconnectPlayer(oldClient, newClient)
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
}

func TestReconnectPlayer_PlayerNotInRoom(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager()
	client1 := testutil.NewSimpleClient("p1", "Player1")
	oldClient := testutil.NewSimpleClient("p2", "Player2")
	newClient := testutil.NewSimpleClient("p2", "Player2")

	room, err := rm.CreateRoom(client1)
	require.NoError(t, err)

	// Try to reconnect p2 who was never in the room
	oldClient.SetRoom(room.Code)
	err = rm.ReconnectPlayer(oldClient, newClient)
	assert.ErrorIs(t, err, apperrors.ErrNotInRoom)
}

func TestReconnectPlayer_NotInAnyRoom(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager()
	oldClient := testutil.NewSimpleClient("p1", "Player1")
	newClient := testutil.NewSimpleClient("p1", "Player1")

	err := rm.ReconnectPlayer(oldClient, newClient)
	assert.NoError(t, err)
}

func TestReconnectDuringGameGetsSnapshot(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager()

	clients := make([]*testutil.SimpleClient, 4)
	clients[0] = testutil.NewSimpleClient("p0", "Player0")
	room, err := rm.CreateRoom(clients[0])
	require.NoError(t, err)
	for i := 1; i < 4; i++ {
		clients[i] = testutil.NewSimpleClient("p"+string(rune('0'+i)), "Player")
		_, err := rm.JoinRoom(clients[i], room.Code)
		require.NoError(t, err)
	}
	for _, c := range clients {
		require.NoError(t, rm.SetPlayerReady(c, true))
	}
	require.NotNil(t, room.GetGameSession())

	fresh := testutil.NewSimpleClient("p2", "Player")
	require.NoError(t, rm.ReconnectPlayer(clients[2], fresh))

	// The session pushed a reconnected snapshot to the new connection.
	assert.NotNil(t, fresh.LastMessageOfType("reconnected"))
}

func TestGenerateRoomCode_Uniqueness(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager()

	codes := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := rm.generateRoomCode()
		assert.Len(t, code, roomCodeLength)
		assert.False(t, codes[code], "Generated duplicate room code: %s", code)
		codes[code] = true

		// Add to rooms to test collision avoidance
		rm.rooms[code] = &Room{Code: code}
	}
}

func TestCleanup_TimeoutRooms(t *testing.T) {
	t.Parallel()

	// Use short timeout for testing
	rm := NewRoomManager(storage.NewRedisStore(nil), 100*time.Millisecond, session.Timeouts{})
	client := testutil.NewSimpleClient("p1", "Player1")

	room, err := rm.CreateRoom(client)
	require.NoError(t, err)

	time.Sleep(150 * time.Millisecond)

	rm.cleanup()

	assert.Nil(t, rm.GetRoom(room.Code))
	assert.Empty(t, client.GetRoom())
}

func TestCleanup_DoesNotRemoveActiveRooms(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager()
	client := testutil.NewSimpleClient("p1", "Player1")

	room, err := rm.CreateRoom(client)
	require.NoError(t, err)

	// Run cleanup immediately (room is fresh)
	rm.cleanup()

	assert.NotNil(t, rm.GetRoom(room.Code))
}

func TestCleanup_DoesNotRemovePlayingRooms(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(storage.NewRedisStore(nil), 100*time.Millisecond, session.Timeouts{})
	client := testutil.NewSimpleClient("p1", "Player1")

	room, err := rm.CreateRoom(client)
	require.NoError(t, err)

	room.mu.Lock()
	room.State = RoomStatePlaying
	room.mu.Unlock()

	time.Sleep(150 * time.Millisecond)

	rm.cleanup()

	// Room should NOT be deleted (playing state)
	assert.NotNil(t, rm.GetRoom(room.Code))
}

func TestSetAllPlayersReady(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager()
	client1 := testutil.NewSimpleClient("p1", "Player1")
	client2 := testutil.NewSimpleClient("p2", "Player2")

	room, err := rm.CreateRoom(client1)
	require.NoError(t, err)
	_, err = rm.JoinRoom(client2, room.Code)
	require.NoError(t, err)

	room.mu.RLock()
	for _, p := range room.Players {
		assert.False(t, p.Ready)
	}
	room.mu.RUnlock()

	room.SetAllPlayersReady()

	room.mu.RLock()
	for _, p := range room.Players {
		assert.True(t, p.Ready)
	}
	room.mu.RUnlock()
}

package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/belote/internal/apperrors"
	"github.com/palemoky/belote/internal/game/session"
	"github.com/palemoky/belote/internal/protocol"
	"github.com/palemoky/belote/internal/server/storage"
	"github.com/palemoky/belote/internal/testutil"
)

func newTestRoomManager() *RoomManager {
	return NewRoomManager(storage.NewRedisStore(nil), 10*time.Minute, session.Timeouts{})
}

func TestRoomManager_GetRoomList(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager()

	room := &Room{
		Code:        "123456",
		State:       RoomStateWaiting,
		Players:     make(map[string]*RoomPlayer),
		PlayerOrder: []string{},
		CreatedAt:   time.Now(),
	}
	room.Players["p1"] = &RoomPlayer{
		Client: testutil.NewSimpleClient("p1", "Player1"),
		Seat:   0,
	}

	rm.AddRoomForTest(room)

	rooms := rm.GetRoomList()

	assert.Len(t, rooms, 1)
	roomItem := rooms[0]
	assert.Equal(t, "123456", roomItem.RoomCode)
	assert.Equal(t, 1, roomItem.PlayerCount)
	assert.Equal(t, 4, roomItem.MaxPlayers)
}

func TestRoom_CheckAllReady(t *testing.T) {
	t.Parallel()

	room := &Room{
		Players: make(map[string]*RoomPlayer),
	}

	// Case 1: Not enough players
	room.Players["p1"] = &RoomPlayer{Ready: true}
	room.Players["p2"] = &RoomPlayer{Ready: true}
	room.Players["p3"] = &RoomPlayer{Ready: true}
	assert.False(t, room.checkAllReady())

	// Case 2: Enough players, but not all ready
	room.Players["p4"] = &RoomPlayer{Ready: false}
	assert.False(t, room.checkAllReady())

	// Case 3: All four ready
	room.Players["p4"].Ready = true
	assert.True(t, room.checkAllReady())
}

func TestRoom_GetPlayerInfo(t *testing.T) {
	t.Parallel()

	room := &Room{
		Players: make(map[string]*RoomPlayer),
	}
	client := testutil.NewSimpleClient("p1", "TestPlayer")
	room.Players["p1"] = &RoomPlayer{
		Client: client,
		Seat:   1,
		Ready:  true,
	}

	info := room.GetPlayerInfo("p1")

	assert.Equal(t, "p1", info.ID)
	assert.Equal(t, "TestPlayer", info.Name)
	assert.Equal(t, 1, info.Seat)
	assert.True(t, info.Ready)
	assert.Equal(t, 1, info.Team)
}

func TestRoomManager_JoinRoomFull(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager()

	creator := testutil.NewSimpleClient("p0", "Player0")
	room, err := rm.CreateRoom(creator)
	require.NoError(t, err)

	for i := 1; i < 4; i++ {
		c := testutil.NewSimpleClient("p"+string(rune('0'+i)), "Player")
		_, err := rm.JoinRoom(c, room.Code)
		require.NoError(t, err)
	}

	fifth := testutil.NewSimpleClient("p5", "Player5")
	_, err = rm.JoinRoom(fifth, room.Code)
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)

	_, err = rm.JoinRoom(fifth, "000000")
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
}

func TestRoomManager_AllReadyStartsTable(t *testing.T) {
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

	room.mu.RLock()
	state := room.State
	room.mu.RUnlock()
	assert.Equal(t, RoomStatePlaying, state)
	require.NotNil(t, room.GetGameSession())
	assert.Equal(t, 1, rm.GetActiveGamesCount())

	// Everyone was told the table is formed and a dealer is awaited.
	for _, c := range clients {
		assert.NotNil(t, c.LastMessageOfType(protocol.MsgTableFormed))
		assert.NotNil(t, c.LastMessageOfType(protocol.MsgChooseDealer))
	}

	// A fifth player can no longer join a playing room.
	fifth := testutil.NewSimpleClient("p5", "Player5")
	_, err = rm.JoinRoom(fifth, room.Code)
	assert.ErrorIs(t, err, apperrors.ErrGameStarted)
}

func TestRoomManager_LeaveDuringGameStopsSession(t *testing.T) {
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

	rm.LeaveRoom(clients[2])

	assert.Nil(t, room.GetGameSession())
	room.mu.RLock()
	defer room.mu.RUnlock()
	assert.Equal(t, RoomStateWaiting, room.State)
	assert.Len(t, room.Players, 3)
	// Seats are compacted after the leave.
	for i, id := range room.PlayerOrder {
		assert.Equal(t, i, room.Players[id].Seat)
	}
	for _, p := range room.Players {
		assert.False(t, p.Ready)
	}
}

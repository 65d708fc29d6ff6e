package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client)
	return store, mr
}

func TestRedisStore_SaveLoadDeleteRoom(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	roomData := &RoomData{
		Code:  "123456",
		State: 1,
		Players: []PlayerData{
			{ID: "p1", Name: "Player1", Seat: 0, Ready: true, Team: 0},
			{ID: "p2", Name: "Player2", Seat: 1, Ready: true, Team: 1},
		},
		PlayerOrder: []string{"p1", "p2"},
		CreatedAt:   time.Now().Unix(),
		GameData: &GameSessionData{
			Phase:      "playing",
			Trump:      2,
			DealerSeat: 1,
			TeamScores: [2]int{84, 68},
		},
	}

	// Save
	err := store.SaveRoom(ctx, roomData.Code, roomData)
	assert.NoError(t, err)

	// Load
	loadedData, err := store.LoadRoom(ctx, roomData.Code)
	assert.NoError(t, err)
	require.NotNil(t, loadedData)
	assert.Equal(t, roomData.Code, loadedData.Code)
	assert.Equal(t, roomData.State, loadedData.State)
	assert.Equal(t, roomData.PlayerOrder, loadedData.PlayerOrder)
	require.NotNil(t, loadedData.GameData)
	assert.Equal(t, "playing", loadedData.GameData.Phase)
	assert.Equal(t, [2]int{84, 68}, loadedData.GameData.TeamScores)
	assert.Equal(t, 1, loadedData.Players[1].Team)

	// Delete
	err = store.DeleteRoom(ctx, roomData.Code)
	assert.NoError(t, err)

	// Verify Delete
	loadedData, err = store.LoadRoom(ctx, roomData.Code)
	assert.NoError(t, err)
	assert.Nil(t, loadedData)
}

func TestRedisStore_GetAllRoomCodes(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	for _, code := range []string{"111111", "222222"} {
		err := store.SaveRoom(ctx, code, &RoomData{Code: code})
		require.NoError(t, err)
	}

	codes, err := store.GetAllRoomCodes(ctx)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"111111", "222222"}, codes)
}

func TestRedisStore_SessionLifecycle(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	session := &PlayerSessionData{
		PlayerID:       "p1",
		PlayerName:     "Player1",
		ReconnectToken: "token-abc",
		RoomCode:       "123456",
		IsOnline:       true,
	}

	err := store.SaveSession(ctx, session)
	assert.NoError(t, err)

	loaded, err := store.LoadSession(ctx, "p1")
	assert.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Player1", loaded.PlayerName)
	assert.Equal(t, "token-abc", loaded.ReconnectToken)
	assert.Equal(t, "123456", loaded.RoomCode)

	err = store.DeleteSession(ctx, "p1")
	assert.NoError(t, err)

	loaded, err = store.LoadSession(ctx, "p1")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_NilClientIsNoop(t *testing.T) {
	t.Parallel()

	store := NewRedisStore(nil)
	ctx := context.Background()

	assert.NoError(t, store.SaveRoom(ctx, "123456", &RoomData{Code: "123456"}))
	data, err := store.LoadRoom(ctx, "123456")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, store.DeleteRoom(ctx, "123456"))
}

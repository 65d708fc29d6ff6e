package room

import (
	"github.com/palemoky/belote/internal/server/storage"
)

// ToRoomData 将 Room 转换为可序列化的 RoomData
func (r *Room) ToRoomData() *storage.RoomData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data := &storage.RoomData{
		Code:        r.Code,
		State:       int(r.State),
		Players:     make([]storage.PlayerData, 0, len(r.Players)),
		PlayerOrder: r.PlayerOrder,
		CreatedAt:   r.CreatedAt.Unix(),
	}

	for _, player := range r.Players {
		pd := storage.PlayerData{
			Seat:  player.Seat,
			Ready: player.Ready,
			Team:  player.Seat % 2,
		}
		if player.Client != nil {
			pd.ID = player.Client.GetID()
			pd.Name = player.Client.GetName()
		}
		data.Players = append(data.Players, pd)
	}

	if r.game != nil {
		data.GameData = r.game.Snapshot()
	}

	return data
}

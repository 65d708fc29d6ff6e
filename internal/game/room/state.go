package room

// RoomState 牌桌状态
type RoomState int

const (
	RoomStateWaiting RoomState = iota // 等人/等准备
	RoomStatePlaying                  // 四人到齐，牌局进行中
	RoomStateEnded                    // 牌桌解散
)

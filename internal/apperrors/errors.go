package apperrors

import (
	"github.com/palemoky/belote/internal/protocol"
)

// GameError 牌局错误（房间和会话共享）
// 所有错误都是非致命的：命令被拒绝时状态保持不变
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoomNotFound     = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "牌桌不存在"}
	ErrRoomFull         = &GameError{Code: protocol.ErrCodeRoomFull, Message: "牌桌已满"}
	ErrNotInRoom        = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "您不在牌桌中"}
	ErrGameStarted      = &GameError{Code: protocol.ErrCodeGameStarted, Message: "牌局已开始"}
	ErrGameNotStart     = &GameError{Code: protocol.ErrCodeGameNotStart, Message: "牌局尚未开始"}
	ErrNotYourTurn      = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrWrongPhase       = &GameError{Code: protocol.ErrCodeWrongPhase, Message: "当前阶段不能进行此操作"}
	ErrIllegalCardIndex = &GameError{Code: protocol.ErrCodeIllegalCardIndex, Message: "无效的牌下标"}
	ErrIllegalPlay      = &GameError{Code: protocol.ErrCodeIllegalPlay, Message: "出牌不符合跟牌规则"}
	ErrInvalidTeams     = &GameError{Code: protocol.ErrCodeInvalidTeams, Message: "分队不合法"}
	ErrInvalidSeat      = &GameError{Code: protocol.ErrCodeInvalidSeat, Message: "无效的座位号"}

	// 第二轮叫牌的花色错误（第一轮要牌不带花色参数，没有对应的错误）
	ErrSuitIsTurned   = &GameError{Code: protocol.ErrCodeIllegalSuit, Message: "第二轮不能叫亮牌花色"}
	ErrSuitOutOfRange = &GameError{Code: protocol.ErrCodeIllegalSuit, Message: "无效的花色"}
)

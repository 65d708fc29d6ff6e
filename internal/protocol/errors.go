package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001
	ErrCodeRateLimit  = 1002 // 速率限制

	ErrCodeRoomNotFound = 2001
	ErrCodeRoomFull     = 2002
	ErrCodeNotInRoom    = 2003
	ErrCodeGameStarted  = 2004 // 牌局已开始

	ErrCodeGameNotStart     = 3001
	ErrCodeNotYourTurn      = 3002
	ErrCodeWrongPhase       = 3003 // 当前阶段不允许该操作
	ErrCodeIllegalSuit      = 3004 // 叫牌花色不合法
	ErrCodeIllegalCardIndex = 3005 // 牌下标越界
	ErrCodeIllegalPlay      = 3006 // 违反跟牌/切牌规则
	ErrCodeInvalidTeams     = 3007 // 分队不合法
	ErrCodeInvalidSeat      = 3008 // 座位号越界
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:          "未知错误",
	ErrCodeInvalidMsg:       "无效的消息格式",
	ErrCodeRateLimit:        "请求过于频繁",
	ErrCodeRoomNotFound:     "牌桌不存在",
	ErrCodeRoomFull:         "牌桌已满",
	ErrCodeNotInRoom:        "您不在牌桌中",
	ErrCodeGameStarted:      "牌局已开始",
	ErrCodeGameNotStart:     "牌局尚未开始",
	ErrCodeNotYourTurn:      "还没轮到您",
	ErrCodeWrongPhase:       "当前阶段不能进行此操作",
	ErrCodeIllegalSuit:      "不能叫这个花色",
	ErrCodeIllegalCardIndex: "无效的牌下标",
	ErrCodeIllegalPlay:      "出牌不符合跟牌规则",
	ErrCodeInvalidTeams:     "分队不合法",
	ErrCodeInvalidSeat:      "无效的座位号",
}

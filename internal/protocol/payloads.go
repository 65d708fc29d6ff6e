package protocol

// --- 客户端请求 Payloads ---

// ReconnectPayload 断线重连请求
type ReconnectPayload struct {
	Token    string `json:"token"`     // 重连令牌
	PlayerID string `json:"player_id"` // 玩家 ID
}

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// JoinRoomPayload 加入牌桌请求
type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
}

// SetTeamsPayload 指定分队请求（两队各两人，覆盖默认的座位奇偶分队）
type SetTeamsPayload struct {
	TeamA []string `json:"team_a"` // 玩家 ID x2
	TeamB []string `json:"team_b"` // 玩家 ID x2
}

// SetDealerPayload 指定庄家请求
type SetDealerPayload struct {
	DealerSeat int `json:"dealer_seat"` // 座位号 0-3
}

// BidRound1Payload 第一轮叫牌请求
type BidRound1Payload struct {
	Take bool `json:"take"` // true = 要亮牌花色为王牌, false = 过
}

// BidRound2Payload 第二轮叫牌请求
type BidRound2Payload struct {
	Take bool `json:"take"`           // true = 叫王牌, false = 过
	Suit int  `json:"suit,omitempty"` // 叫的花色（不能是亮牌花色）
}

// PlayCardPayload 出牌请求
type PlayCardPayload struct {
	CardIndex int `json:"card_index"` // 手牌下标
}

// GetLeaderboardPayload 获取排行榜请求
type GetLeaderboardPayload struct {
	Offset int `json:"offset"` // 偏移量
	Limit  int `json:"limit"`  // 数量
}

// --- 服务端响应 Payloads ---

// CardInfo 牌的传输结构
type CardInfo struct {
	Suit int `json:"suit"`
	Rank int `json:"rank"`
}

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Seat  int    `json:"seat"`
	Ready bool   `json:"ready"`
	Team  int    `json:"team"` // 0 或 1
}

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID       string `json:"player_id"`
	PlayerName     string `json:"player_name"`
	ReconnectToken string `json:"reconnect_token"` // 重连令牌
}

// ReconnectedPayload 重连成功响应
type ReconnectedPayload struct {
	PlayerID   string        `json:"player_id"`
	PlayerName string        `json:"player_name"`
	RoomCode   string        `json:"room_code,omitempty"`  // 如果在牌桌中
	GameState  *GameStateDTO `json:"game_state,omitempty"` // 如果在牌局中
}

// GameStateDTO 牌局状态数据传输对象（用于重连恢复）
type GameStateDTO struct {
	Phase       string       `json:"phase"` // choose_dealer/bidding_round1/bidding_round2/playing/round_end
	Players     []PlayerInfo `json:"players"`
	Hand        []CardInfo   `json:"hand"`         // 自己的手牌
	TurnedCard  *CardInfo    `json:"turned_card"`  // 亮牌（叫牌阶段）
	Trump       int          `json:"trump"`        // 王牌花色，-1 表示未确定
	DealerSeat  int          `json:"dealer_seat"`  // 庄家座位
	CurrentSeat int          `json:"current_seat"` // 当前行动座位
	Trick       []PlayInfo   `json:"trick"`        // 本墩已出的牌
	TeamScores  [2]int       `json:"team_scores"`  // 两队累计分数
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// PlayerOfflinePayload 玩家掉线通知
type PlayerOfflinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Timeout    int    `json:"timeout"` // 等待重连超时（秒）
}

// PlayerOnlinePayload 玩家上线通知
type PlayerOnlinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// RoomCreatedPayload 牌桌创建成功响应
type RoomCreatedPayload struct {
	RoomCode string     `json:"room_code"`
	Player   PlayerInfo `json:"player"`
}

// RoomJoinedPayload 加入牌桌成功响应
type RoomJoinedPayload struct {
	RoomCode string       `json:"room_code"`
	Player   PlayerInfo   `json:"player"`
	Players  []PlayerInfo `json:"players"` // 牌桌内所有玩家
}

// PlayerJoinedPayload 其他玩家加入通知
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// PlayerLeftPayload 玩家离开通知
type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerReadyPayload 玩家准备通知
type PlayerReadyPayload struct {
	PlayerID string `json:"player_id"`
	Ready    bool   `json:"ready"`
}

// TableFormedPayload 四人到齐通知
type TableFormedPayload struct {
	Players []PlayerInfo `json:"players"` // 按座位顺序排列
}

// TeamsSetPayload 分队确定通知
type TeamsSetPayload struct {
	TeamA []string `json:"team_a"`
	TeamB []string `json:"team_b"`
}

// ChooseDealerPayload 等待指定庄家通知
type ChooseDealerPayload struct {
	Players        []PlayerInfo `json:"players"`
	SuggestedSeat  int          `json:"suggested_seat"`  // 建议的庄家座位（上局庄家 +1）
	TeamScores     [2]int       `json:"team_scores"`     // 两队累计分数
	RoundsFinished int          `json:"rounds_finished"` // 已完成局数
}

// DealStartedPayload 新一局发牌完成通知
type DealStartedPayload struct {
	Players     []PlayerInfo `json:"players"`
	TurnedCard  CardInfo     `json:"turned_card"`  // 亮牌
	DealerSeat  int          `json:"dealer_seat"`  // 庄家座位
	BidderSeat  int          `json:"bidder_seat"`  // 首个叫牌座位
	Redeal      bool         `json:"redeal"`       // 是否为流局后的重发
}

// HandPayload 私发手牌
type HandPayload struct {
	Cards []CardInfo `json:"cards"`
}

// BidTurnPayload 轮到叫牌通知
type BidTurnPayload struct {
	Seat    int `json:"seat"`
	Round   int `json:"round"`   // 1 或 2
	Timeout int `json:"timeout"` // 超时时间（秒）
}

// BidPassedPayload 过牌通知
type BidPassedPayload struct {
	Seat     int `json:"seat"`
	NextSeat int `json:"next_seat"`
	Round    int `json:"round"`
}

// BiddingRound2Payload 进入第二轮叫牌通知
type BiddingRound2Payload struct {
	BidderSeat int `json:"bidder_seat"` // 从庄家下家重新开始
	TurnedSuit int `json:"turned_suit"` // 第二轮禁止叫的花色
}

// TrumpFixedPayload 王牌确定通知
type TrumpFixedPayload struct {
	TakerSeat  int `json:"taker_seat"`  // 要牌的座位
	Trump      int `json:"trump"`       // 王牌花色
	Round      int `json:"round"`       // 在第几轮叫定
	DealerSeat int `json:"dealer_seat"`
	FirstSeat  int `json:"first_seat"` // 首攻座位
}

// PlayInfo 一次出牌的传输结构
type PlayInfo struct {
	Seat int      `json:"seat"`
	Card CardInfo `json:"card"`
}

// CardPlayedPayload 出牌通知
type CardPlayedPayload struct {
	Seat      int      `json:"seat"`
	Card      CardInfo `json:"card"`
	CardsLeft int      `json:"cards_left"` // 剩余手牌数
}

// TurnPayload 轮到出牌通知
type TurnPayload struct {
	Seat    int `json:"seat"`
	Timeout int `json:"timeout"` // 超时时间（秒）
}

// BeloteDeclaredPayload 贝洛特奖励达成通知（同一局内打出王牌 K 和 Q）
type BeloteDeclaredPayload struct {
	Seat       int    `json:"seat"`
	Team       int    `json:"team"`
	TeamScores [2]int `json:"team_scores"`
}

// TrickWonPayload 一墩结束通知
type TrickWonPayload struct {
	WinnerSeat int        `json:"winner_seat"`
	Points     int        `json:"points"`
	Cards      []PlayInfo `json:"cards"`
	TeamScores [2]int     `json:"team_scores"`
}

// TrickRecord 一墩的历史记录
type TrickRecord struct {
	WinnerSeat int        `json:"winner_seat"`
	Points     int        `json:"points"`
	Cards      []PlayInfo `json:"cards"`
}

// RoundEndPayload 一局结束通知
type RoundEndPayload struct {
	TeamScores   [2]int        `json:"team_scores"`   // 两队累计分数
	RoundPoints  [2]int        `json:"round_points"`  // 本局两队得分（含贝洛特奖励）
	TrickHistory []TrickRecord `json:"trick_history"` // 本局全部八墩
	NextDealer   int           `json:"next_dealer"`   // 下局建议庄家座位
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatsResultPayload 个人统计结果
type StatsResultPayload struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	TotalGames int     `json:"total_games"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"win_rate"`
	Score      int     `json:"score"`
}

// LeaderboardResultPayload 排行榜结果
type LeaderboardResultPayload struct {
	Entries []LeaderboardEntryDTO `json:"entries"`
	Total   int                   `json:"total"`
}

// LeaderboardEntryDTO 排行榜条目
type LeaderboardEntryDTO struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// RoomListItem 牌桌列表条目
type RoomListItem struct {
	RoomCode    string `json:"room_code"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
}

// RoomListResultPayload 牌桌列表结果
type RoomListResultPayload struct {
	Rooms []RoomListItem `json:"rooms"`
}

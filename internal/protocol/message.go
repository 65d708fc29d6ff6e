package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgReconnect MessageType = "reconnect" // 断线重连
	MsgPing      MessageType = "ping"      // 心跳 ping

	// 房间操作
	MsgCreateRoom  MessageType = "create_room"  // 创建牌桌
	MsgJoinRoom    MessageType = "join_room"    // 加入牌桌
	MsgLeaveRoom   MessageType = "leave_room"   // 离开牌桌
	MsgReady       MessageType = "ready"        // 准备就绪
	MsgCancelReady MessageType = "cancel_ready" // 取消准备

	// 开局操作
	MsgSetTeams  MessageType = "set_teams"  // 指定分队
	MsgSetDealer MessageType = "set_dealer" // 指定庄家并开始发牌

	// 叫牌操作
	MsgBidRound1 MessageType = "bid_round1" // 第一轮叫牌（只能要亮牌花色）
	MsgBidRound2 MessageType = "bid_round2" // 第二轮叫牌（亮牌花色除外）

	// 出牌操作
	MsgPlayCard    MessageType = "play_card"    // 出牌
	MsgRequestHand MessageType = "request_hand" // 重新请求自己的手牌

	// 信息查询
	MsgGetStats       MessageType = "get_stats"       // 获取个人统计
	MsgGetLeaderboard MessageType = "get_leaderboard" // 获取排行榜
	MsgGetRoomList    MessageType = "get_room_list"   // 获取牌桌列表
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected     MessageType = "connected"      // 连接成功
	MsgReconnected   MessageType = "reconnected"    // 重连成功
	MsgPong          MessageType = "pong"           // 心跳 pong
	MsgPlayerOffline MessageType = "player_offline" // 玩家掉线通知
	MsgPlayerOnline  MessageType = "player_online"  // 玩家上线通知

	// 房间相关
	MsgRoomCreated  MessageType = "room_created"  // 牌桌创建成功
	MsgRoomJoined   MessageType = "room_joined"   // 加入牌桌成功
	MsgPlayerJoined MessageType = "player_joined" // 其他玩家加入
	MsgPlayerLeft   MessageType = "player_left"   // 玩家离开
	MsgPlayerReady  MessageType = "player_ready"  // 玩家准备

	// 开局流程
	MsgTableFormed  MessageType = "table_formed"  // 四人到齐
	MsgTeamsSet     MessageType = "teams_set"     // 分队确定
	MsgChooseDealer MessageType = "choose_dealer" // 等待指定庄家
	MsgDealStarted  MessageType = "deal_started"  // 新一局发牌完成
	MsgHand         MessageType = "hand"          // 私发手牌

	// 叫牌流程
	MsgBidTurn       MessageType = "bid_turn"       // 轮到叫牌
	MsgBidPassed     MessageType = "bid_passed"     // 有人过牌
	MsgBiddingRound2 MessageType = "bidding_round2" // 进入第二轮叫牌
	MsgTrumpFixed    MessageType = "trump_fixed"    // 王牌确定
	MsgRedeal        MessageType = "redeal"         // 两轮无人要牌，重新发牌

	// 出牌流程
	MsgCardPlayed     MessageType = "card_played"     // 有人出牌
	MsgTurn           MessageType = "turn"            // 轮到出牌
	MsgBeloteDeclared MessageType = "belote_declared" // 贝洛特奖励达成
	MsgTrickWon       MessageType = "trick_won"       // 一墩结束
	MsgRoundEnd       MessageType = "round_end"       // 一局结束

	// 信息查询
	MsgStatsResult       MessageType = "stats_result"       // 个人统计结果
	MsgLeaderboardResult MessageType = "leaderboard_result" // 排行榜结果
	MsgRoomListResult    MessageType = "room_list_result"   // 牌桌列表结果

	// 错误
	MsgError MessageType = "error" // 错误消息
)

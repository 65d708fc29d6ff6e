package session

import (
	"sync"
	"time"

	"github.com/palemoky/belote/internal/apperrors"
	"github.com/palemoky/belote/internal/game/card"
	"github.com/palemoky/belote/internal/game/rule"
	"github.com/palemoky/belote/internal/protocol"
)

// Phase 牌局阶段
type Phase int

const (
	PhaseChooseDealer  Phase = iota // 等待指定庄家（开局或一局结束后）
	PhaseBiddingRound1              // 第一轮叫牌（只能要亮牌花色）
	PhaseBiddingRound2              // 第二轮叫牌（亮牌花色除外）
	PhasePlaying                    // 出牌
	PhaseEnded                      // 牌桌解散
)

// phaseNames 阶段名称映射表（用于重连恢复）
var phaseNames = map[Phase]string{
	PhaseChooseDealer:  "choose_dealer",
	PhaseBiddingRound1: "bidding_round1",
	PhaseBiddingRound2: "bidding_round2",
	PhasePlaying:       "playing",
	PhaseEnded:         "ended",
}

func (p Phase) String() string {
	return phaseNames[p]
}

// Command 外部可提交的命令
type Command int

const (
	CmdSetTeams Command = iota
	CmdSetDealer
	CmdBidRound1
	CmdBidRound2
	CmdPlayCard
)

// commandPhases 分派表：命令只在表中列出的阶段被接受，其余一律拒绝
var commandPhases = map[Command]map[Phase]bool{
	CmdSetTeams:  {PhaseChooseDealer: true},
	CmdSetDealer: {PhaseChooseDealer: true},
	CmdBidRound1: {PhaseBiddingRound1: true},
	CmdBidRound2: {PhaseBiddingRound2: true},
	CmdPlayCard:  {PhasePlaying: true},
}

// TablePlayer 牌桌上的玩家（按座位固定）
type TablePlayer struct {
	ID      string
	Name    string
	Seat    int
	Hand    []card.Card
	Offline bool
}

// beloteCandidate 贝洛特奖励的记录（按座位，一局一清）
// 王牌确定时持有王牌 K+Q 的座位才有资格；两张先后打出时奖励 20 分
type beloteCandidate struct {
	hasBoth   bool
	firstRank card.Rank // 0 表示一张都还没打出
	declared  bool
}

// RoundSummary 一局结束的结算数据（回调给外部做持久化）
type RoundSummary struct {
	RoomCode    string
	Players     [4]*TablePlayer
	Teams       [4]int // 座位 → 队伍
	RoundPoints [2]int
	TeamScores  [2]int
	TakerSeat   int // 叫定王牌的座位
}

// RoomInterface 会话对房间的依赖（打破循环依赖）
type RoomInterface interface {
	GetCode() string
	GetPlayerOrder() []string
	GetPlayerName(id string) string
	Broadcast(msg *protocol.Message)
	SendTo(playerID string, msg *protocol.Message)
}

// GameSession 一张牌桌的完整牌局：开局、叫牌、出牌、结算，跨多局累计比分
// 所有命令串行执行（gs.mu），任何被拒绝的命令都不会改动状态
type GameSession struct {
	room RoomInterface

	phase   Phase
	players [4]*TablePlayer // 按座位顺序
	teams   [4]int          // 座位 → 队伍（默认按座位奇偶）

	// 发牌与叫牌
	deck       card.Deck
	turnedCard card.Card
	trump      card.Suit
	trumpFixed bool
	takerSeat  int
	dealerSeat int
	bidderSeat int
	bidRound   int
	passCount  int

	// 出牌
	currentSeat      int
	trick            []rule.Play
	trickHistory     []protocol.TrickRecord
	beloteCandidates [4]beloteCandidate

	// 比分
	teamScores     [2]int
	roundPoints    [2]int
	roundsFinished int

	// 结算回调（由外部注入，用于排行榜持久化）
	OnRoundEnd func(summary RoundSummary)

	// 超时控制
	bidTimeout       time.Duration
	turnTimeout      time.Duration
	offlineTimeout   time.Duration
	turnTimer        *time.Timer
	offlineWaitTimer *time.Timer
	timerGen         uint64 // 递增代号，过期的回调直接作废
	remainingTime    time.Duration
	timerStartTime   time.Time
	timerPaused      bool
	timerMu          sync.Mutex

	mu sync.RWMutex
}

// guard 按分派表检查命令是否允许在当前阶段执行
func (gs *GameSession) guard(cmd Command) error {
	if !commandPhases[cmd][gs.phase] {
		return apperrors.ErrWrongPhase
	}
	return nil
}

// seatOf 返回玩家的座位，不在桌上返回 -1
func (gs *GameSession) seatOf(playerID string) int {
	for _, p := range gs.players {
		if p.ID == playerID {
			return p.Seat
		}
	}
	return -1
}

// teamOfSeat 返回座位所属的队伍
func (gs *GameSession) teamOfSeat(seat int) int {
	return gs.teams[seat]
}

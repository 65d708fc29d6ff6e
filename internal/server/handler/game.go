package handler

import (
	"github.com/palemoky/belote/internal/apperrors"
	"github.com/palemoky/belote/internal/game/session"
	"github.com/palemoky/belote/internal/protocol"
	"github.com/palemoky/belote/internal/types"
)

// gameSessionOf 取玩家所在牌桌的进行中牌局
func (h *Handler) gameSessionOf(client types.ClientInterface) (*session.GameSession, error) {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return nil, apperrors.ErrNotInRoom
	}

	room := h.roomManager.GetRoom(roomCode)
	if room == nil {
		return nil, apperrors.ErrRoomNotFound
	}

	game := room.GetGameSession()
	if game == nil {
		return nil, apperrors.ErrGameNotStart
	}
	return game, nil
}

// handleSetTeams 处理指定分队
func (h *Handler) handleSetTeams(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.SetTeamsPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	game, err := h.gameSessionOf(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := game.HandleSetTeams(client.GetID(), payload.TeamA, payload.TeamB); err != nil {
		sendError(client, err)
	}
}

// handleSetDealer 处理指定庄家并开始发牌
func (h *Handler) handleSetDealer(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.SetDealerPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	game, err := h.gameSessionOf(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := game.HandleSetDealer(client.GetID(), payload.DealerSeat); err != nil {
		sendError(client, err)
	}
}

// handleBidRound1 处理第一轮叫牌（只能要亮牌花色）
func (h *Handler) handleBidRound1(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.BidRound1Payload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	game, err := h.gameSessionOf(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := game.HandleBidRound1(client.GetID(), payload.Take); err != nil {
		sendError(client, err)
	}
}

// handleBidRound2 处理第二轮叫牌（亮牌花色除外）
func (h *Handler) handleBidRound2(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.BidRound2Payload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	game, err := h.gameSessionOf(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := game.HandleBidRound2(client.GetID(), payload.Take, payload.Suit); err != nil {
		sendError(client, err)
	}
}

// handlePlayCard 处理出牌
func (h *Handler) handlePlayCard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PlayCardPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	game, err := h.gameSessionOf(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := game.HandlePlay(client.GetID(), payload.CardIndex); err != nil {
		sendError(client, err)
	}
}

// handleRequestHand 处理重发手牌请求
func (h *Handler) handleRequestHand(client types.ClientInterface) {
	game, err := h.gameSessionOf(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := game.HandleRequestHand(client.GetID()); err != nil {
		sendError(client, err)
	}
}

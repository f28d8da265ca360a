package entity

import (
	"crypto/md5"
	"fmt"
	"time"
)

type ActionType string

const (
	MintAction          ActionType = "mint"
	SaleAction          ActionType = "sale"
	RelistingAction     ActionType = "relisting"
	AuctionStartAction  ActionType = "auction-start"
	BidAction           ActionType = "bid"
	BidWithdrawalAction ActionType = "bid-withdrawal"
	AuctionSettleAction ActionType = "auction-settle"
	FeeUpdateAction     ActionType = "fee-update"
)

// MarketAction is the history record written after a ledger operation
// commits. One action per committed write, never one for a rejected call.
type MarketAction struct {
	AssetId    uint64     `json:"assetId"`
	Action     ActionType `json:"action"`
	From       string     `json:"from"`
	To         string     `json:"to"`
	Cost       uint64     `json:"cost"`
	Fee        uint64     `json:"fee"`
	OccurredAt time.Time  `json:"occurredAt"`
}

func (a MarketAction) Slug() string {
	return CreateMarketActionSlug(a.AssetId, string(a.Action), a.From, a.To, a.OccurredAt.UnixNano())
}

func CreateMarketActionSlug(assetId uint64, action, from, to string, nanos int64) string {
	data := []byte(fmt.Sprintf("marketaction-%d-%s-%s-%s-%d", assetId, action, from, to, nanos))
	return fmt.Sprintf("%x", md5.Sum(data))
}

package entity

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
)

// Auction is the per-asset ascending-price auction record. HighestBidder is
// empty while no bid has been accepted. A settled auction keeps its last
// leader and bid but Active is false.
type Auction struct {
	AssetId       uint64    `json:"assetId"`
	StartPrice    uint64    `json:"startPrice"`
	EndTime       time.Time `json:"endTime"`
	HighestBidder string    `json:"highestBidder"`
	HighestBid    uint64    `json:"highestBid"`
	Active        bool      `json:"active"`
}

func (a Auction) Slug() string {
	return CreateAuctionSlug(a.AssetId)
}

func CreateAuctionSlug(assetId uint64) string {
	return slug.Make(fmt.Sprintf("auction-%d", assetId))
}

func (a Auction) HasBids() bool {
	return a.HighestBidder != ""
}

// EscrowEntry is the refundable balance owed to an outbid or withdrawing
// bidder on a single auction.
type EscrowEntry struct {
	AssetId uint64 `json:"assetId"`
	Bidder  string `json:"bidder"`
	Balance uint64 `json:"balance"`
}

func (e EscrowEntry) Slug() string {
	return CreateEscrowSlug(e.AssetId, e.Bidder)
}

func CreateEscrowSlug(assetId uint64, bidder string) string {
	return slug.Make(fmt.Sprintf("escrow-%d-%s", assetId, bidder))
}

package market

import (
	"time"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/entity"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/event"
	"go.uber.org/zap"
)

// StartAuction opens a fresh auction for an asset. A prior settled auction on
// the same asset is overwritten. Authorization is against the registry owner
// of record, independent of the listing table.
func (m *marketplace) StartAuction(caller string, assetId, startPrice uint64, endTime time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	owner, err := m.assets.OwnerOf(assetId)
	if err != nil {
		return m.reject("StartAuction", err, map[string]interface{}{"assetId": assetId})
	}
	if owner != caller {
		return m.reject("StartAuction", ErrNotAuthorized, map[string]interface{}{"assetId": assetId, "caller": caller})
	}

	auction := entity.Auction{
		AssetId:       assetId,
		StartPrice:    startPrice,
		EndTime:       endTime,
		HighestBidder: "",
		HighestBid:    0,
		Active:        true,
	}
	m.auctions.SaveAuction(auction)

	zap.L().With(
		zap.Uint64("assetId", assetId),
		zap.String("seller", caller),
		zap.Uint64("startPrice", startPrice),
		zap.Time("endTime", endTime),
	).Info("Market: Auction started")

	m.emitAction(event.AuctionStartedEvent, entity.MarketAction{
		AssetId:    assetId,
		Action:     entity.AuctionStartAction,
		From:       caller,
		Cost:       startPrice,
		OccurredAt: m.now(),
	})

	return nil
}

// PlaceBid accepts a strictly higher bid and adds the attached value to the
// bidder's escrow balance. A bidder outbid repeatedly accumulates every
// amount they attached; being outbid moves nothing, the value is already in
// their balance.
func (m *marketplace) PlaceBid(caller string, assetId, value uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	auction, err := m.auctions.GetAuction(assetId)
	if err != nil || !auction.Active {
		return m.reject("PlaceBid", ErrNoActiveAuction, map[string]interface{}{"assetId": assetId})
	}
	if !m.now().Before(auction.EndTime) {
		return m.reject("PlaceBid", ErrAuctionEnded, map[string]interface{}{"assetId": assetId})
	}
	if value <= auction.HighestBid {
		return m.reject("PlaceBid", ErrBidTooLow, map[string]interface{}{
			"assetId":    assetId,
			"highestBid": auction.HighestBid,
			"value":      value,
		})
	}

	auction.HighestBidder = caller
	auction.HighestBid = value
	m.auctions.SaveAuction(*auction)

	m.escrow.Credit(assetId, caller, value)
	m.treasury.Deposit(value)

	zap.L().With(
		zap.Uint64("assetId", assetId),
		zap.String("bidder", caller),
		zap.Uint64("bid", value),
	).Info("Market: Bid placed")

	m.emitAction(event.BidPlacedEvent, entity.MarketAction{
		AssetId:    assetId,
		Action:     entity.BidAction,
		From:       caller,
		Cost:       value,
		OccurredAt: m.now(),
	})

	return nil
}

// WithdrawBid refunds the caller's escrow balance for an auction. The entry
// is zeroed before the value leaves, so a recipient re-entering the ledger
// mid-transfer finds nothing left to withdraw; a failed transfer re-credits
// the entry. The current leader is not blocked from withdrawing; a leader who
// does so still wins if nobody outbids them, which reproduces the deployed
// contract.
func (m *marketplace) WithdrawBid(caller string, assetId uint64) error {
	m.mu.Lock()

	balance := m.escrow.GetBalance(assetId, caller)
	if balance == 0 {
		m.mu.Unlock()
		return m.reject("WithdrawBid", ErrNothingToWithdraw, map[string]interface{}{"assetId": assetId, "caller": caller})
	}

	m.escrow.SetBalance(assetId, caller, 0)
	m.mu.Unlock()

	if err := m.treasury.PayOut(caller, balance); err != nil {
		m.mu.Lock()
		m.escrow.Credit(assetId, caller, balance)
		m.mu.Unlock()
		return err
	}

	zap.L().With(
		zap.Uint64("assetId", assetId),
		zap.String("bidder", caller),
		zap.Uint64("amount", balance),
	).Info("Market: Bid withdrawn")

	m.emitAction(event.BidWithdrawnEvent, entity.MarketAction{
		AssetId:    assetId,
		Action:     entity.BidWithdrawalAction,
		To:         caller,
		Cost:       balance,
		OccurredAt: m.now(),
	})

	return nil
}

// FinalizeAuction settles an auction once its deadline has passed. Callable
// by anyone. The auction is deactivated and the winner's escrow zeroed before
// any value moves; calling it a second time fails with no active auction. A
// failed seller payout restores the auction, escrow, listing and custody to
// their pre-call state.
func (m *marketplace) FinalizeAuction(caller string, assetId uint64) error {
	m.mu.Lock()

	auction, err := m.auctions.GetAuction(assetId)
	if err != nil || !auction.Active {
		m.mu.Unlock()
		return m.reject("FinalizeAuction", ErrNoActiveAuction, map[string]interface{}{"assetId": assetId})
	}
	if m.now().Before(auction.EndTime) {
		m.mu.Unlock()
		return m.reject("FinalizeAuction", ErrAuctionStillActive, map[string]interface{}{"assetId": assetId})
	}

	auction.Active = false
	m.auctions.SaveAuction(*auction)

	if !auction.HasBids() {
		m.mu.Unlock()

		zap.L().With(zap.Uint64("assetId", assetId)).Info("Market: Auction settled with no bids")
		return nil
	}

	winner := auction.HighestBidder
	amount := auction.HighestBid

	winnerEscrow := m.escrow.GetBalance(assetId, winner)
	m.escrow.SetBalance(assetId, winner, 0)

	seller := ""
	prevHolder := ""
	listing, err := m.listings.GetListing(assetId)
	if err == nil {
		seller = listing.Seller
		prevHolder = listing.Holder
		listing.Holder = winner
		m.listings.SaveListing(*listing)
	}

	transferred := false
	owner, err := m.assets.OwnerOf(assetId)
	if err == nil {
		if err := m.assets.Transfer(owner, winner, assetId); err != nil {
			zap.L().With(zap.Uint64("assetId", assetId), zap.Error(err)).Error("Market: Settlement transfer failed")
		} else {
			transferred = true
		}
	}
	m.mu.Unlock()

	if seller != "" {
		if err := m.treasury.PayOut(seller, amount); err != nil {
			m.mu.Lock()
			auction.Active = true
			m.auctions.SaveAuction(*auction)
			m.escrow.SetBalance(assetId, winner, winnerEscrow)
			listing.Holder = prevHolder
			m.listings.SaveListing(*listing)
			if transferred {
				if err := m.assets.Transfer(winner, owner, assetId); err != nil {
					zap.L().With(zap.Uint64("assetId", assetId), zap.Error(err)).Error("Market: Settlement rollback transfer failed")
				}
			}
			m.mu.Unlock()
			return err
		}
	}

	zap.L().With(
		zap.Uint64("assetId", assetId),
		zap.String("winner", winner),
		zap.String("seller", seller),
		zap.Uint64("amount", amount),
	).Info("Market: Auction settled")

	m.emitAction(event.AuctionSettledEvent, entity.MarketAction{
		AssetId:    assetId,
		Action:     entity.AuctionSettleAction,
		From:       seller,
		To:         winner,
		Cost:       amount,
		OccurredAt: m.now(),
	})

	return nil
}

package market

import (
	"sync"
	"time"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/dev"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/entity"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/event"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/registry"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/repository"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/treasury"
	"go.uber.org/zap"
)

// Marketplace is the single write surface over the listing ledger, the
// auction engine and the asset registry. Operations are serialized: each call
// either commits every mutation and value movement it implies, or none.
type Marketplace interface {
	MintAndList(caller, tokenUri string, price, value uint64) (uint64, error)
	Relist(caller string, assetId, newPrice, value uint64) error
	Buy(caller string, assetId, value uint64) error

	StartAuction(caller string, assetId, startPrice uint64, endTime time.Time) error
	PlaceBid(caller string, assetId, value uint64) error
	WithdrawBid(caller string, assetId uint64) error
	FinalizeAuction(caller string, assetId uint64) error

	UpdateListingFee(caller string, newFee uint64) error
	ListingFee() uint64
	SoldCount() uint64

	UnsoldListings() []entity.Listing
	ListingsOwnedBy(holder string) []entity.Listing
	ListingsCreatedBy(seller string) []entity.Listing
	GetAuction(assetId uint64) (*entity.Auction, error)
	EscrowBalance(assetId uint64, bidder string) uint64
}

type marketplace struct {
	mu sync.Mutex

	listings repository.ListingRepository
	auctions repository.AuctionRepository
	escrow   repository.EscrowRepository
	assets   registry.Registry
	treasury treasury.Treasury

	operator   string
	market     string
	listingFee uint64
	soldCount  uint64

	now func() time.Time
}

func NewMarketplace(
	listings repository.ListingRepository,
	auctions repository.AuctionRepository,
	escrow repository.EscrowRepository,
	assets registry.Registry,
	treasury treasury.Treasury,
	operator string,
	market string,
	listingFee uint64,
) Marketplace {
	return &marketplace{
		listings:   listings,
		auctions:   auctions,
		escrow:     escrow,
		assets:     assets,
		treasury:   treasury,
		operator:   operator,
		market:     market,
		listingFee: listingFee,
		now:        time.Now,
	}
}

func (m *marketplace) UpdateListingFee(caller string, newFee uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.operator {
		return m.reject("UpdateListingFee", ErrNotAuthorized, map[string]interface{}{"caller": caller})
	}

	oldFee := m.listingFee
	m.listingFee = newFee

	zap.L().With(
		zap.Uint64("oldFee", oldFee),
		zap.Uint64("newFee", newFee),
	).Info("Market: Listing fee updated")

	return nil
}

func (m *marketplace) ListingFee() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listingFee
}

func (m *marketplace) SoldCount() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.soldCount
}

func (m *marketplace) UnsoldListings() []entity.Listing {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listings.GetListingsByHolder(m.market)
}

func (m *marketplace) ListingsOwnedBy(holder string) []entity.Listing {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listings.GetListingsByHolder(holder)
}

func (m *marketplace) ListingsCreatedBy(seller string) []entity.Listing {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listings.GetListingsBySeller(seller)
}

func (m *marketplace) GetAuction(assetId uint64) (*entity.Auction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.auctions.GetAuction(assetId)
}

func (m *marketplace) EscrowBalance(assetId uint64, bidder string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.escrow.GetBalance(assetId, bidder)
}

func (m *marketplace) reject(op string, err error, extra map[string]interface{}) error {
	devErr := dev.NewError("market", op, err, extra)

	zap.L().With(
		zap.String("component", devErr.Component),
		zap.String("op", op),
		zap.Error(err),
	).Warn("Market: Rejected transaction")

	event.EmitEvent(event.TransactionRejectedEvent, devErr)

	return err
}

func (m *marketplace) emitAction(eventType event.Type, action entity.MarketAction) {
	event.EmitEvent(eventType, action)
}

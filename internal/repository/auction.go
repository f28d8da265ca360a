package repository

import (
	"errors"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/entity"
	"github.com/patrickmn/go-cache"
)

var (
	ErrAuctionNotFound = errors.New("auction not found")
)

type AuctionRepository interface {
	GetAuction(assetId uint64) (*entity.Auction, error)
	SaveAuction(auction entity.Auction)
}

type auctionRepository struct {
	store *cache.Cache
}

func NewAuctionRepository() AuctionRepository {
	return auctionRepository{cache.New(cache.NoExpiration, 0)}
}

func (r auctionRepository) GetAuction(assetId uint64) (*entity.Auction, error) {
	item, found := r.store.Get(entity.CreateAuctionSlug(assetId))
	if !found {
		return nil, ErrAuctionNotFound
	}

	auction := item.(entity.Auction)

	return &auction, nil
}

func (r auctionRepository) SaveAuction(auction entity.Auction) {
	r.store.Set(auction.Slug(), auction, cache.NoExpiration)
}

package repository

import (
	"errors"
	"sort"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/entity"
	"github.com/patrickmn/go-cache"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

type ListingRepository interface {
	GetListing(assetId uint64) (*entity.Listing, error)
	SaveListing(listing entity.Listing)
	GetAllListings() []entity.Listing
	GetListingsByHolder(holder string) []entity.Listing
	GetListingsBySeller(seller string) []entity.Listing
}

type listingRepository struct {
	store *cache.Cache
}

func NewListingRepository() ListingRepository {
	return listingRepository{cache.New(cache.NoExpiration, 0)}
}

func (r listingRepository) GetListing(assetId uint64) (*entity.Listing, error) {
	item, found := r.store.Get(entity.CreateListingSlug(assetId))
	if !found {
		return nil, ErrListingNotFound
	}

	listing := item.(entity.Listing)

	return &listing, nil
}

func (r listingRepository) SaveListing(listing entity.Listing) {
	r.store.Set(listing.Slug(), listing, cache.NoExpiration)
}

func (r listingRepository) GetAllListings() []entity.Listing {
	listings := make([]entity.Listing, 0)
	for _, item := range r.store.Items() {
		listings = append(listings, item.Object.(entity.Listing))
	}

	sort.Slice(listings, func(i, j int) bool {
		return listings[i].AssetId < listings[j].AssetId
	})

	return listings
}

func (r listingRepository) GetListingsByHolder(holder string) []entity.Listing {
	listings := make([]entity.Listing, 0)
	for _, listing := range r.GetAllListings() {
		if listing.Holder == holder {
			listings = append(listings, listing)
		}
	}

	return listings
}

func (r listingRepository) GetListingsBySeller(seller string) []entity.Listing {
	listings := make([]entity.Listing, 0)
	for _, listing := range r.GetAllListings() {
		if listing.Seller == seller {
			listings = append(listings, listing)
		}
	}

	return listings
}

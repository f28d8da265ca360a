package repository

import (
	"sort"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/entity"
	"github.com/patrickmn/go-cache"
)

type EscrowRepository interface {
	GetBalance(assetId uint64, bidder string) uint64
	SetBalance(assetId uint64, bidder string, balance uint64)
	Credit(assetId uint64, bidder string, amount uint64)
	GetEntries(assetId uint64) []entity.EscrowEntry
}

type escrowRepository struct {
	store *cache.Cache
}

func NewEscrowRepository() EscrowRepository {
	return escrowRepository{cache.New(cache.NoExpiration, 0)}
}

func (r escrowRepository) GetBalance(assetId uint64, bidder string) uint64 {
	item, found := r.store.Get(entity.CreateEscrowSlug(assetId, bidder))
	if !found {
		return 0
	}

	return item.(entity.EscrowEntry).Balance
}

func (r escrowRepository) SetBalance(assetId uint64, bidder string, balance uint64) {
	entry := entity.EscrowEntry{AssetId: assetId, Bidder: bidder, Balance: balance}
	r.store.Set(entry.Slug(), entry, cache.NoExpiration)
}

func (r escrowRepository) Credit(assetId uint64, bidder string, amount uint64) {
	r.SetBalance(assetId, bidder, r.GetBalance(assetId, bidder)+amount)
}

func (r escrowRepository) GetEntries(assetId uint64) []entity.EscrowEntry {
	entries := make([]entity.EscrowEntry, 0)
	for _, item := range r.store.Items() {
		entry := item.Object.(entity.EscrowEntry)
		if entry.AssetId == assetId {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Bidder < entries[j].Bidder
	})

	return entries
}

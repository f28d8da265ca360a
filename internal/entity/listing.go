package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Listing is the marketplace's sale record for an asset. Holder is the
// marketplace's own custody bookkeeping: it equals the marketplace address
// while the asset is up for sale, and the buyer's address once sold.
type Listing struct {
	AssetId uint64 `json:"assetId"`
	Seller  string `json:"seller"`
	Holder  string `json:"holder"`
	Price   uint64 `json:"price"`
	Sold    bool   `json:"sold"`
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.AssetId)
}

func CreateListingSlug(assetId uint64) string {
	return slug.Make(fmt.Sprintf("listing-%d", assetId))
}

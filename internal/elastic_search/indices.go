package elastic_search

import (
	"fmt"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/config"
)

type Indices string

var (
	MarketActionIndex Indices = "marketaction"
	RejectionIndex    Indices = "rejection"
)

var All = []Indices{
	MarketActionIndex,
	RejectionIndex,
}

// Prefixes the network and index name and returns the full string
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s.%s", config.Get().Network, config.Get().Index, string(*i))
}

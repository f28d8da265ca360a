package di

import (
	"github.com/ZilDuck/nft-marketplace-ledger/internal/api"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/indexer"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/market"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/messenger"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/metadata"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/registry"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/repository"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/treasury"
	"github.com/sarulabs/di/v2"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(Definitions...); err != nil {
		return nil, err
	}

	return &Container{builder.Build()}, nil
}

func (c *Container) GetMarketplace() market.Marketplace {
	return c.ctn.Get("marketplace").(market.Marketplace)
}

func (c *Container) GetListingRepo() repository.ListingRepository {
	return c.ctn.Get("listing.repo").(repository.ListingRepository)
}

func (c *Container) GetAuctionRepo() repository.AuctionRepository {
	return c.ctn.Get("auction.repo").(repository.AuctionRepository)
}

func (c *Container) GetEscrowRepo() repository.EscrowRepository {
	return c.ctn.Get("escrow.repo").(repository.EscrowRepository)
}

func (c *Container) GetRegistry() registry.Registry {
	return c.ctn.Get("registry").(registry.Registry)
}

func (c *Container) GetTreasury() treasury.Treasury {
	return c.ctn.Get("treasury").(treasury.Treasury)
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetHistoryIndexer() indexer.HistoryIndexer {
	return c.ctn.Get("history.indexer").(indexer.HistoryIndexer)
}

func (c *Container) GetMetadataService() metadata.Service {
	return c.ctn.Get("metadata").(metadata.Service)
}

func (c *Container) GetApiServer() api.Server {
	return c.ctn.Get("api.server").(api.Server)
}

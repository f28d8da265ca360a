package di

import (
	"time"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/api"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/config"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/indexer"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/market"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/messenger"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/metadata"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/registry"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/repository"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/treasury"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

var Definitions = []di.Def{
	{
		Name: "listing.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewListingRepository(), nil
		},
	},
	{
		Name: "auction.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewAuctionRepository(), nil
		},
	},
	{
		Name: "escrow.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewEscrowRepository(), nil
		},
	},
	{
		Name: "registry",
		Build: func(ctn di.Container) (interface{}, error) {
			return registry.NewRegistry(), nil
		},
	},
	{
		Name: "treasury",
		Build: func(ctn di.Container) (interface{}, error) {
			return treasury.NewTreasury(nil), nil
		},
	},
	{
		Name: "marketplace",
		Build: func(ctn di.Container) (interface{}, error) {
			cfg := config.Get().Market
			return market.NewMarketplace(
				ctn.Get("listing.repo").(repository.ListingRepository),
				ctn.Get("auction.repo").(repository.AuctionRepository),
				ctn.Get("escrow.repo").(repository.EscrowRepository),
				ctn.Get("registry").(registry.Registry),
				ctn.Get("treasury").(treasury.Treasury),
				cfg.OperatorAddress,
				cfg.MarketAddress,
				cfg.ListingFee,
			), nil
		},
	},
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewMessenger(config.Get().Queue.AmqpUri), nil
		},
	},
	{
		Name: "history.indexer",
		Build: func(ctn di.Container) (interface{}, error) {
			var elastic elastic_search.Index
			if config.Get().ElasticSearch.Enabled {
				elastic = ctn.Get("elastic").(elastic_search.Index)
			}

			var queue messenger.MessageService
			if config.Get().Queue.Enabled {
				queue = ctn.Get("messenger").(messenger.MessageService)
			}

			return indexer.NewHistoryIndexer(elastic, queue), nil
		},
	},
	{
		Name: "retryablehttp",
		Build: func(ctn di.Container) (interface{}, error) {
			client := retryablehttp.NewClient()
			client.RetryMax = config.Get().Metadata.Retries
			client.HTTPClient.Timeout = time.Duration(config.Get().Metadata.Timeout) * time.Second
			client.Logger = nil

			return client, nil
		},
	},
	{
		Name: "metadata",
		Build: func(ctn di.Container) (interface{}, error) {
			return metadata.NewMetadataService(ctn.Get("retryablehttp").(*retryablehttp.Client)), nil
		},
	},
	{
		Name: "api.server",
		Build: func(ctn di.Container) (interface{}, error) {
			return api.NewServer(
				ctn.Get("marketplace").(market.Marketplace),
				ctn.Get("registry").(registry.Registry),
				ctn.Get("metadata").(metadata.Service),
			), nil
		},
	},
}

package main

import (
	"net/http"
	"time"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/config"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/config/di"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/event"
	"go.uber.org/zap"
)

var container *di.Container

func main() {
	config.Init("marketd")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	if config.Get().ElasticSearch.Enabled {
		container.GetElastic().InstallMappings()
	}

	history := container.GetHistoryIndexer()
	event.AddEventListener(event.AssetListedEvent, history.TriggerIndex)
	event.AddEventListener(event.AssetRelistedEvent, history.TriggerIndex)
	event.AddEventListener(event.AssetSoldEvent, history.TriggerIndex)
	event.AddEventListener(event.AuctionStartedEvent, history.TriggerIndex)
	event.AddEventListener(event.BidPlacedEvent, history.TriggerIndex)
	event.AddEventListener(event.BidWithdrawnEvent, history.TriggerIndex)
	event.AddEventListener(event.AuctionSettledEvent, history.TriggerIndex)
	event.AddEventListener(event.TransactionRejectedEvent, history.TriggerRejection)

	// buffered index requests expire if they only ever wait for a full batch
	go func() {
		for range time.Tick(5 * time.Second) {
			history.Persist()
		}
	}()

	zap.L().With(zap.String("port", config.Get().Api.Port)).Info("Marketplace started")

	router := container.GetApiServer().Router()
	if err := http.ListenAndServe(":"+config.Get().Api.Port, router); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start api")
	}
}

package indexer

import (
	"encoding/json"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/dev"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/entity"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/messenger"
	"go.uber.org/zap"
)

// HistoryIndexer ships committed market actions and rejection audit records
// to the read side: an Elasticsearch history index and an AMQP exchange.
// Either sink may be nil when disabled by config.
type HistoryIndexer interface {
	IndexAction(action entity.MarketAction)
	IndexRejection(rejection dev.Error)
	TriggerIndex(msg interface{})
	TriggerRejection(msg interface{})
	Persist()
}

type historyIndexer struct {
	elastic   elastic_search.Index
	messenger messenger.MessageService
}

func NewHistoryIndexer(elastic elastic_search.Index, messenger messenger.MessageService) HistoryIndexer {
	return historyIndexer{elastic, messenger}
}

// TriggerIndex is the event manager callback shape.
func (i historyIndexer) TriggerIndex(msg interface{}) {
	action, ok := msg.(entity.MarketAction)
	if !ok {
		zap.L().Error("HistoryIndexer: Unexpected event payload")
		return
	}

	i.IndexAction(action)
}

func (i historyIndexer) TriggerRejection(msg interface{}) {
	rejection, ok := msg.(dev.Error)
	if !ok {
		zap.L().Error("HistoryIndexer: Unexpected event payload")
		return
	}

	i.IndexRejection(rejection)
}

func (i historyIndexer) IndexRejection(rejection dev.Error) {
	if i.elastic == nil {
		return
	}

	i.elastic.AddIndexRequest(elastic_search.RejectionIndex.Get(), rejection, elastic_search.RejectionCreate)
	i.elastic.BatchPersist()
}

func (i historyIndexer) IndexAction(action entity.MarketAction) {
	zap.L().With(
		zap.Uint64("assetId", action.AssetId),
		zap.String("action", string(action.Action)),
		zap.String("from", action.From),
		zap.String("to", action.To),
		zap.Uint64("cost", action.Cost),
		zap.Uint64("fee", action.Fee),
	).Info("HistoryIndexer: Market action")

	if i.elastic != nil {
		i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), action, elastic_search.MarketActionCreate)
		i.elastic.BatchPersist()
	}

	if i.messenger != nil {
		body, err := json.Marshal(action)
		if err != nil {
			zap.L().With(zap.Error(err)).Error("HistoryIndexer: Failed to marshal action")
			return
		}

		if err := i.messenger.SendMessage(messenger.MarketActions, body); err != nil {
			zap.L().With(zap.Error(err)).Error("HistoryIndexer: Failed to publish action")
		}
	}
}

func (i historyIndexer) Persist() {
	if i.elastic != nil {
		i.elastic.Persist()
	}
}

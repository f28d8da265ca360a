package indexer

import (
	"errors"
	"testing"
	"time"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/dev"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/entity"
	"github.com/olivere/elastic/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	requests  []elastic_search.Request
	persisted int
}

func (f *fakeIndex) GetClient() *elastic.Client { return nil }

func (f *fakeIndex) InstallMappings() {}

func (f *fakeIndex) AddIndexRequest(index string, entity entity.Entity, reqAction elastic_search.RequestAction) {
	f.requests = append(f.requests, elastic_search.Request{Index: index, Entity: entity, Action: reqAction})
}

func (f *fakeIndex) GetRequests() []elastic_search.Request { return f.requests }

func (f *fakeIndex) ClearRequests() { f.requests = nil }

func (f *fakeIndex) BatchPersist() bool { return false }

func (f *fakeIndex) Persist() int {
	f.persisted += len(f.requests)
	f.requests = nil

	return f.persisted
}

func TestHistoryIndexer_IndexAction(t *testing.T) {
	idx := &fakeIndex{}
	history := NewHistoryIndexer(idx, nil)

	history.TriggerIndex(entity.MarketAction{
		AssetId:    1,
		Action:     entity.SaleAction,
		From:       "0xa",
		To:         "0xb",
		Cost:       100,
		Fee:        5,
		OccurredAt: time.Now(),
	})

	require.Len(t, idx.requests, 1)
	assert.Equal(t, elastic_search.MarketActionCreate, idx.requests[0].Action)
	assert.Equal(t, elastic_search.MarketActionIndex.Get(), idx.requests[0].Index)
}

func TestHistoryIndexer_TriggerIndexIgnoresUnknownPayload(t *testing.T) {
	idx := &fakeIndex{}
	history := NewHistoryIndexer(idx, nil)

	history.TriggerIndex("not an action")

	assert.Empty(t, idx.requests)
}

func TestHistoryIndexer_IndexRejection(t *testing.T) {
	idx := &fakeIndex{}
	history := NewHistoryIndexer(idx, nil)

	history.TriggerRejection(dev.NewError("market", "Buy", errors.New("price mismatch"), nil))

	require.Len(t, idx.requests, 1)
	assert.Equal(t, elastic_search.RejectionCreate, idx.requests[0].Action)
	assert.Equal(t, elastic_search.RejectionIndex.Get(), idx.requests[0].Index)
}

func TestHistoryIndexer_PersistFlushesBuffer(t *testing.T) {
	idx := &fakeIndex{}
	history := NewHistoryIndexer(idx, nil)

	history.IndexAction(entity.MarketAction{AssetId: 1, Action: entity.BidAction, OccurredAt: time.Now()})
	history.IndexAction(entity.MarketAction{AssetId: 2, Action: entity.BidAction, OccurredAt: time.Now()})
	require.Len(t, idx.requests, 2)

	history.Persist()

	assert.Empty(t, idx.requests)
	assert.Equal(t, 2, idx.persisted)
}

func TestHistoryIndexer_NilSinks(t *testing.T) {
	history := NewHistoryIndexer(nil, nil)

	history.IndexAction(entity.MarketAction{AssetId: 1, Action: entity.MintAction, OccurredAt: time.Now()})
	history.IndexRejection(dev.NewError("market", "Buy", errors.New("price mismatch"), nil))
	history.Persist()
}
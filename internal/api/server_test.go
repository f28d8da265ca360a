package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/entity"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/market"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/metadata"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/registry"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/repository"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/treasury"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMetadata struct {
	md  map[string]interface{}
	err error
}

func (f fakeMetadata) GetMetadata(asset entity.Asset) (map[string]interface{}, error) {
	return f.md, f.err
}

func newTestServer(t *testing.T, md metadata.Service) (Server, market.Marketplace, registry.Registry) {
	t.Helper()

	assets := registry.NewRegistry()
	marketplace := market.NewMarketplace(
		repository.NewListingRepository(),
		repository.NewAuctionRepository(),
		repository.NewEscrowRepository(),
		assets,
		treasury.NewTreasury(nil),
		"0xoperator",
		"0xmarket",
		5,
	)

	return NewServer(marketplace, assets, md), marketplace, assets
}

func get(t *testing.T, s Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	return rr
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer(t, fakeMetadata{})

	rr := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestGetFee(t *testing.T) {
	s, _, _ := newTestServer(t, fakeMetadata{})

	rr := get(t, s, "/fee")
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]uint64
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, uint64(5), body["listingFee"])
}

func TestUnsoldListings(t *testing.T) {
	s, marketplace, _ := newTestServer(t, fakeMetadata{})

	_, err := marketplace.MintAndList("0xalice", "", 100, 5)
	require.NoError(t, err)

	rr := get(t, s, "/listings/unsold")
	require.Equal(t, http.StatusOK, rr.Code)

	var listings []entity.Listing
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listings))
	require.Len(t, listings, 1)
	assert.Equal(t, "0xalice", listings[0].Seller)
	assert.Equal(t, uint64(100), listings[0].Price)
}

func TestListingsByAddress(t *testing.T) {
	s, marketplace, _ := newTestServer(t, fakeMetadata{})

	assetId, err := marketplace.MintAndList("0xalice", "", 100, 5)
	require.NoError(t, err)
	require.NoError(t, marketplace.Buy("0xbob", assetId, 100))

	rr := get(t, s, "/listings/owned/0xbob")
	require.Equal(t, http.StatusOK, rr.Code)

	var listings []entity.Listing
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listings))
	require.Len(t, listings, 1)
	assert.True(t, listings[0].Sold)

	rr = get(t, s, "/listings/created/0xalice")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listings))
	assert.Len(t, listings, 1)
}

func TestGetAuction(t *testing.T) {
	s, marketplace, _ := newTestServer(t, fakeMetadata{})

	assetId, err := marketplace.MintAndList("0xalice", "", 100, 5)
	require.NoError(t, err)
	require.NoError(t, marketplace.Buy("0xbob", assetId, 100))
	require.NoError(t, marketplace.StartAuction("0xbob", assetId, 10, time.Now().Add(time.Hour)))

	rr := get(t, s, "/auctions/1")
	require.Equal(t, http.StatusOK, rr.Code)

	var auction entity.Auction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &auction))
	assert.True(t, auction.Active)
	assert.Equal(t, uint64(10), auction.StartPrice)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/auctions/42").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/auctions/abc").Code)
}

func TestGetMetadata(t *testing.T) {
	md := fakeMetadata{md: map[string]interface{}{"name": "Duck #1"}}
	s, marketplace, _ := newTestServer(t, md)

	_, err := marketplace.MintAndList("0xalice", "ipfs://QmTest", 100, 5)
	require.NoError(t, err)

	rr := get(t, s, "/assets/1/metadata")
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Duck #1", body["name"])

	assert.Equal(t, http.StatusNotFound, get(t, s, "/assets/42/metadata").Code)
}

func TestUnknownRoute(t *testing.T) {
	s, _, _ := newTestServer(t, fakeMetadata{})

	assert.Equal(t, http.StatusNotFound, get(t, s, "/nope").Code)
}

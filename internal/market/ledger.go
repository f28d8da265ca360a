package market

import (
	"github.com/ZilDuck/nft-marketplace-ledger/internal/entity"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/event"
	"go.uber.org/zap"
)

// MintAndList allocates a fresh asset id, records it as listed with the
// marketplace as custodian, and collects the listing fee from the attached
// value.
func (m *marketplace) MintAndList(caller, tokenUri string, price, value uint64) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if price == 0 {
		return 0, m.reject("MintAndList", ErrInvalidPrice, map[string]interface{}{"caller": caller})
	}
	if value != m.listingFee {
		return 0, m.reject("MintAndList", ErrFeeMismatch, map[string]interface{}{"caller": caller, "value": value})
	}

	assetId := m.assets.Mint(caller, tokenUri)
	if err := m.assets.Transfer(caller, m.market, assetId); err != nil {
		return 0, err
	}

	listing := entity.Listing{
		AssetId: assetId,
		Seller:  caller,
		Holder:  m.market,
		Price:   price,
		Sold:    false,
	}
	m.listings.SaveListing(listing)

	m.treasury.Deposit(value)
	m.treasury.CollectFee(value)

	zap.L().With(
		zap.Uint64("assetId", assetId),
		zap.String("seller", listing.Seller),
		zap.String("holder", listing.Holder),
		zap.Uint64("price", listing.Price),
		zap.Bool("sold", listing.Sold),
	).Info("Market: Asset listed")

	m.emitAction(event.AssetListedEvent, entity.MarketAction{
		AssetId:    assetId,
		Action:     entity.MintAction,
		From:       caller,
		To:         m.market,
		Cost:       price,
		Fee:        value,
		OccurredAt: m.now(),
	})

	return assetId, nil
}

// Relist puts a previously purchased asset back up for sale. Authorization is
// against the listing's holder field, not the registry owner of record; that
// mirrors the deployed contract and is documented as a known quirk.
func (m *marketplace) Relist(caller string, assetId, newPrice, value uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	listing, err := m.listings.GetListing(assetId)
	if err != nil {
		return m.reject("Relist", err, map[string]interface{}{"assetId": assetId})
	}

	if listing.Holder != caller {
		return m.reject("Relist", ErrNotOwner, map[string]interface{}{"assetId": assetId, "caller": caller})
	}
	if value != m.listingFee {
		return m.reject("Relist", ErrFeeMismatch, map[string]interface{}{"assetId": assetId, "value": value})
	}

	if err := m.assets.Transfer(caller, m.market, assetId); err != nil {
		return err
	}

	if listing.Sold {
		m.soldCount--
	}

	listing.Sold = false
	listing.Price = newPrice
	listing.Seller = caller
	listing.Holder = m.market
	m.listings.SaveListing(*listing)

	m.treasury.Deposit(value)
	m.treasury.CollectFee(value)

	zap.L().With(
		zap.Uint64("assetId", assetId),
		zap.String("seller", caller),
		zap.Uint64("price", newPrice),
	).Info("Market: Asset relisted")

	m.emitAction(event.AssetRelistedEvent, entity.MarketAction{
		AssetId:    assetId,
		Action:     entity.RelistingAction,
		From:       caller,
		To:         m.market,
		Cost:       newPrice,
		Fee:        value,
		OccurredAt: m.now(),
	})

	return nil
}

// Buy completes a direct sale at the listed price. The listing fee is moved
// to the operator's fee balance; the remainder of the attached value stays in
// the marketplace pot, as the deployed contract never paid the seller from
// this path.
func (m *marketplace) Buy(caller string, assetId, value uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	listing, err := m.listings.GetListing(assetId)
	if err != nil {
		return m.reject("Buy", err, map[string]interface{}{"assetId": assetId})
	}

	if value != listing.Price {
		return m.reject("Buy", ErrPriceMismatch, map[string]interface{}{
			"assetId": assetId,
			"price":   listing.Price,
			"value":   value,
		})
	}

	if err := m.assets.Transfer(m.market, caller, assetId); err != nil {
		return m.reject("Buy", err, map[string]interface{}{"assetId": assetId, "caller": caller})
	}

	listing.Holder = caller
	listing.Sold = true
	m.listings.SaveListing(*listing)
	m.soldCount++

	m.treasury.Deposit(value)
	m.treasury.CollectFee(m.listingFee)

	zap.L().With(
		zap.Uint64("assetId", assetId),
		zap.String("seller", listing.Seller),
		zap.String("buyer", caller),
		zap.Uint64("cost", value),
		zap.Uint64("fee", m.listingFee),
	).Info("Market: Asset sold")

	m.emitAction(event.AssetSoldEvent, entity.MarketAction{
		AssetId:    assetId,
		Action:     entity.SaleAction,
		From:       listing.Seller,
		To:         caller,
		Cost:       value,
		Fee:        m.listingFee,
		OccurredAt: m.now(),
	})

	return nil
}

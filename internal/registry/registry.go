package registry

import (
	"errors"
	"sync"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/entity"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrNotAssetOwner = errors.New("not the asset owner")
)

// Registry is the asset identity collaborator: the sole authority on which
// address legally owns an asset id, and on its token URI. Asset ids are
// allocated from a monotonic counter and never reused.
type Registry interface {
	Mint(owner, tokenUri string) uint64
	GetAsset(assetId uint64) (*entity.Asset, error)
	OwnerOf(assetId uint64) (string, error)
	Transfer(from, to string, assetId uint64) error
	TokenUri(assetId uint64) (string, error)
	SetTokenUri(caller string, assetId uint64, tokenUri string) error
	TotalMinted() uint64
}

type registry struct {
	mu     sync.Mutex
	store  *cache.Cache
	nextId uint64
}

func NewRegistry() Registry {
	return &registry{store: cache.New(cache.NoExpiration, 0), nextId: 1}
}

func (r *registry) Mint(owner, tokenUri string) uint64 {
	r.mu.Lock()
	assetId := r.nextId
	r.nextId++
	r.mu.Unlock()

	asset := entity.Asset{AssetId: assetId, Owner: owner, TokenUri: tokenUri, MintedBy: owner}
	r.store.Set(asset.Slug(), asset, cache.NoExpiration)

	zap.L().With(
		zap.Uint64("assetId", assetId),
		zap.String("owner", owner),
	).Info("Registry: Minted asset")

	return assetId
}

func (r *registry) GetAsset(assetId uint64) (*entity.Asset, error) {
	item, found := r.store.Get(entity.CreateAssetSlug(assetId))
	if !found {
		return nil, ErrAssetNotFound
	}

	asset := item.(entity.Asset)

	return &asset, nil
}

func (r *registry) OwnerOf(assetId uint64) (string, error) {
	asset, err := r.GetAsset(assetId)
	if err != nil {
		return "", err
	}

	return asset.Owner, nil
}

func (r *registry) Transfer(from, to string, assetId uint64) error {
	asset, err := r.GetAsset(assetId)
	if err != nil {
		return err
	}

	if asset.Owner != from {
		zap.L().With(
			zap.Uint64("assetId", assetId),
			zap.String("owner", asset.Owner),
			zap.String("from", from),
		).Error("Registry: Transfer rejected")
		return ErrNotAssetOwner
	}

	asset.Owner = to
	r.store.Set(asset.Slug(), *asset, cache.NoExpiration)

	zap.L().With(
		zap.Uint64("assetId", assetId),
		zap.String("from", from),
		zap.String("to", to),
	).Debug("Registry: Transferred asset")

	return nil
}

func (r *registry) TokenUri(assetId uint64) (string, error) {
	asset, err := r.GetAsset(assetId)
	if err != nil {
		return "", err
	}

	return asset.TokenUri, nil
}

func (r *registry) SetTokenUri(caller string, assetId uint64, tokenUri string) error {
	asset, err := r.GetAsset(assetId)
	if err != nil {
		return err
	}

	if asset.Owner != caller {
		return ErrNotAssetOwner
	}

	asset.TokenUri = tokenUri
	r.store.Set(asset.Slug(), *asset, cache.NoExpiration)

	return nil
}

func (r *registry) TotalMinted() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.nextId - 1
}

package metadata

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/config"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/entity"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/helper"
	"github.com/hashicorp/go-retryablehttp"
)

var (
	ErrMetadataNotFound = errors.New("metadata not found")
)

// Service fetches the off-chain metadata document behind an asset's token
// uri. Read side only; the ledger core never depends on it.
type Service interface {
	GetMetadata(asset entity.Asset) (map[string]interface{}, error)
}

type service struct {
	client    *retryablehttp.Client
	ipfsHosts []string
}

func NewMetadataService(client *retryablehttp.Client) Service {
	return service{client, config.Get().Metadata.IpfsHosts}
}

func (s service) GetMetadata(asset entity.Asset) (map[string]interface{}, error) {
	metadataUri, err := asset.MetadataUri()
	if err != nil {
		return nil, err
	}

	if helper.IsIpfs(metadataUri) {
		return s.getIpfsMetadata(metadataUri)
	}

	return s.getHttpMetadata(metadataUri)
}

func (s service) getHttpMetadata(uri string) (map[string]interface{}, error) {
	resp, err := s.client.Get(uri)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, errors.New(resp.Status)
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}

	var md map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &md); err != nil {
		return nil, err
	}

	return md, nil
}

func (s service) getIpfsMetadata(uri string) (map[string]interface{}, error) {
	ipfsUri := helper.GetIpfs(uri)
	if ipfsUri == nil {
		return nil, ErrMetadataNotFound
	}

	for _, host := range s.ipfsHosts {
		md, err := s.getHttpMetadata(helper.ToGatewayUrl(*ipfsUri, host))
		if err == nil {
			return md, nil
		}
	}

	return nil, ErrMetadataNotFound
}

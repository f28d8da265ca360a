package entity

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gosimple/slug"
)

// Asset is the identity record for a minted token: who owns it in the base
// registry sense, and where its metadata lives.
type Asset struct {
	AssetId  uint64 `json:"assetId"`
	Owner    string `json:"owner"`
	TokenUri string `json:"tokenUri"`
	MintedBy string `json:"mintedBy"`
}

func (a Asset) Slug() string {
	return CreateAssetSlug(a.AssetId)
}

func CreateAssetSlug(assetId uint64) string {
	return slug.Make(fmt.Sprintf("asset-%d", assetId))
}

func (a Asset) MetadataUri() (string, error) {
	metadataUri := a.TokenUri

	if ipfs := getIpfs(metadataUri); ipfs != "" {
		metadataUri = ipfs
	}

	if metadataUri == "" {
		return "", errors.New("invalid metadata")
	}

	return metadataUri, nil
}

func getIpfs(metadataUri string) string {
	if len(metadataUri) < 7 {
		return ""
	}

	if metadataUri[:7] == "ipfs://" {
		return metadataUri
	}

	re := regexp.MustCompile("(Qm[1-9A-HJ-NP-Za-km-z]{44})")
	parts := re.FindStringSubmatch(metadataUri)
	if len(parts) == 2 {
		return "ipfs://" + parts[1]
	}

	return ""
}

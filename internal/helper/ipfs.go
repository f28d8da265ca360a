package helper

import (
	"net/url"
	"regexp"
	"strings"
)

func IsUrl(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func IsIpfs(uri string) bool {
	re := regexp.MustCompile("(Qm[1-9A-HJ-NP-Za-km-z]{44}.*$)")
	parts := re.FindStringSubmatch(uri)
	if len(parts) == 2 {
		return true
	}

	if !IsUrl(uri) {
		return false
	}

	u, _ := url.Parse(uri)
	if u.Scheme == "ipfs" {
		return true
	}

	return false
}

// GetIpfs normalises any uri carrying an ipfs content hash to ipfs://Qm...
func GetIpfs(uri string) *string {
	re := regexp.MustCompile("(Qm[1-9A-HJ-NP-Za-km-z]{44}.*$)")
	parts := re.FindStringSubmatch(uri)
	if len(parts) == 2 {
		ipfsUri := "ipfs://" + parts[1]
		return &ipfsUri
	}

	if len(uri) >= 7 && uri[:7] == "ipfs://" {
		return &uri
	}

	return nil
}

// ToGatewayUrl rewrites an ipfs:// uri onto a http gateway host.
func ToGatewayUrl(uri, host string) string {
	if len(uri) >= 7 && uri[:7] == "ipfs://" {
		return strings.TrimRight(host, "/") + "/ipfs/" + uri[7:]
	}

	return uri
}

package event

type Type string

const (
	AssetListedEvent    Type = "AssetListedEvent"
	AssetRelistedEvent  Type = "AssetRelistedEvent"
	AssetSoldEvent      Type = "AssetSoldEvent"
	AuctionStartedEvent Type = "AuctionStartedEvent"
	BidPlacedEvent      Type = "BidPlacedEvent"
	BidWithdrawnEvent   Type = "BidWithdrawnEvent"
	AuctionSettledEvent Type = "AuctionSettledEvent"

	TransactionRejectedEvent Type = "TransactionRejectedEvent"
)

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/config"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/config/di"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/market"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	container   *di.Container
	marketplace market.Marketplace
)

func main() {
	config.Init("cli")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}
	marketplace = container.GetMarketplace()

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "fee",
				Usage:  "print the configured listing fee",
				Action: showFee,
			},
			{
				Name:   "smoke",
				Usage:  "run a mint/buy/auction scenario against a fresh ledger",
				Action: runSmoke,
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "price", Value: 100, Usage: "direct sale price"},
					&cli.Uint64Flag{Name: "bid", Value: 60, Usage: "winning auction bid"},
				},
			},
		},
	}

	err = app.Run(os.Args)
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start CLI")
	}
}

func showFee(c *cli.Context) error {
	fmt.Printf("listing fee: %d\n", marketplace.ListingFee())
	return nil
}

// runSmoke exercises the whole write surface once and prints the resulting
// ledger state. Useful as a deployment sanity check.
func runSmoke(c *cli.Context) error {
	fee := marketplace.ListingFee()
	price := c.Uint64("price")
	bid := c.Uint64("bid")

	assetId, err := marketplace.MintAndList("alice", "ipfs://QmSmokeTest", price, fee)
	if err != nil {
		return err
	}
	zap.S().Infof("Minted and listed asset %d at %d", assetId, price)

	if err := marketplace.Buy("bob", assetId, price); err != nil {
		return err
	}
	zap.S().Infof("Sold asset %d to bob", assetId)

	if err := marketplace.Relist("bob", assetId, price*2, fee); err != nil {
		return err
	}
	zap.S().Infof("Relisted asset %d at %d", assetId, price*2)

	auctionId, err := marketplace.MintAndList("carol", "ipfs://QmSmokeAuction", price, fee)
	if err != nil {
		return err
	}
	if err := marketplace.Buy("carol", auctionId, price); err != nil {
		return err
	}
	if err := marketplace.StartAuction("carol", auctionId, bid/2, time.Now().Add(time.Second)); err != nil {
		return err
	}
	if err := marketplace.PlaceBid("dave", auctionId, bid); err != nil {
		return err
	}

	time.Sleep(2 * time.Second)

	if err := marketplace.FinalizeAuction("anyone", auctionId); err != nil {
		return err
	}
	zap.S().Infof("Settled auction for asset %d at %d", auctionId, bid)

	for _, listing := range marketplace.UnsoldListings() {
		fmt.Printf("unsold: asset=%d seller=%s price=%d\n", listing.AssetId, listing.Seller, listing.Price)
	}
	fmt.Printf("sold count: %d\n", marketplace.SoldCount())

	return nil
}

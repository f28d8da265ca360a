package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/market"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/metadata"
	"github.com/ZilDuck/nft-marketplace-ledger/internal/registry"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server is the read-only query surface over the ledger. All writes go
// through the marketplace facade, never through HTTP.
type Server struct {
	marketplace     market.Marketplace
	assets          registry.Registry
	metadataService metadata.Service
}

func NewServer(marketplace market.Marketplace, assets registry.Registry, metadataService metadata.Service) Server {
	return Server{marketplace, assets, metadataService}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/fee", s.handleGetFee).Methods("GET")
	r.HandleFunc("/stats", s.handleGetStats).Methods("GET")
	r.HandleFunc("/listings/unsold", s.handleUnsoldListings).Methods("GET")
	r.HandleFunc("/listings/owned/{address}", s.handleListingsOwnedBy).Methods("GET")
	r.HandleFunc("/listings/created/{address}", s.handleListingsCreatedBy).Methods("GET")
	r.HandleFunc("/auctions/{assetId}", s.handleGetAuction).Methods("GET")
	r.HandleFunc("/assets/{assetId}/metadata", s.handleGetMetadata).Methods("GET")
	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s Server) handleGetFee(w http.ResponseWriter, r *http.Request) {
	writeJson(w, map[string]uint64{"listingFee": s.marketplace.ListingFee()})
}

func (s Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	writeJson(w, map[string]uint64{
		"soldCount":   s.marketplace.SoldCount(),
		"totalMinted": s.assets.TotalMinted(),
	})
}

func (s Server) handleUnsoldListings(w http.ResponseWriter, r *http.Request) {
	writeJson(w, s.marketplace.UnsoldListings())
}

func (s Server) handleListingsOwnedBy(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	writeJson(w, s.marketplace.ListingsOwnedBy(address))
}

func (s Server) handleListingsCreatedBy(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	writeJson(w, s.marketplace.ListingsCreatedBy(address))
}

func (s Server) handleGetAuction(w http.ResponseWriter, r *http.Request) {
	assetId, err := getAssetId(r)
	if err != nil {
		http.Error(w, "Invalid asset id", http.StatusBadRequest)
		return
	}

	auction, err := s.marketplace.GetAuction(assetId)
	if err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("assetId", assetId)).Warn("Auction not available")
		http.Error(w, "Auction not available", http.StatusNotFound)
		return
	}

	writeJson(w, auction)
}

func (s Server) handleGetMetadata(w http.ResponseWriter, r *http.Request) {
	assetId, err := getAssetId(r)
	if err != nil {
		http.Error(w, "Invalid asset id", http.StatusBadRequest)
		return
	}

	asset, err := s.assets.GetAsset(assetId)
	if err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("assetId", assetId)).Warn("Asset not available")
		http.Error(w, "Asset not available", http.StatusNotFound)
		return
	}

	md, err := s.metadataService.GetMetadata(*asset)
	if err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("assetId", assetId)).Warn("Metadata not available")
		http.Error(w, "Metadata not available", http.StatusNotFound)
		return
	}

	writeJson(w, md)
}

func getAssetId(r *http.Request) (uint64, error) {
	assetId, ok := mux.Vars(r)["assetId"]
	if !ok {
		return 0, errors.New("invalid parameters")
	}

	return strconv.ParseUint(assetId, 10, 64)
}

func writeJson(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to write response")
	}
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		_, _ = fmt.Fprintf(w, "Page not found")
	})
}

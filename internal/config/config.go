package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/ZilDuck/nft-marketplace-ledger/internal/log"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Env     string
	Network string
	Index   string
	Debug   bool

	LogPath   string
	SentryDsn string

	Market        MarketConfig
	Api           ApiConfig
	Metadata      MetadataConfig
	ElasticSearch ElasticSearchConfig
	Queue         QueueConfig
}

type MarketConfig struct {
	OperatorAddress string
	MarketAddress   string
	ListingFee      uint64
}

type ApiConfig struct {
	Port string
}

type MetadataConfig struct {
	IpfsHosts []string
	Timeout   int
	Retries   int
}

type ElasticSearchConfig struct {
	Enabled          bool
	Hosts            []string
	Sniff            bool
	HealthCheck      bool
	Debug            bool
	Username         string
	Password         string
	BulkPersistCount int
	Refresh          string
}

type QueueConfig struct {
	Enabled bool
	AmqpUri string
}

var ipfsHosts = []string{
	"https://gateway.pinata.cloud",
	"https://cloudflare-ipfs.com",
	"https://gateway.ipfs.io",
}

func Init(name string) {
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Unable to load .env")
	}

	initLogger(name)
}

func initLogger(name string) {
	cfg := Get()
	log.NewLogger(fmt.Sprintf("%s/%s.log", cfg.LogPath, name), cfg.Debug, cfg.SentryDsn)
}

func Get() *Config {
	return &Config{
		Env:       getString("ENV", ""),
		Network:   getString("NETWORK", "zilliqa"),
		Index:     getString("INDEX_NAME", "marketplace"),
		Debug:     getBool("DEBUG", false),
		LogPath:   getString("LOG_PATH", "./var/logs"),
		SentryDsn: getString("SENTRY_DSN", ""),
		Market: MarketConfig{
			OperatorAddress: getString("MARKET_OPERATOR_ADDRESS", ""),
			MarketAddress:   getString("MARKET_ADDRESS", ""),
			ListingFee:      getUint64("MARKET_LISTING_FEE", 0),
		},
		Api: ApiConfig{
			Port: getString("API_PORT", "8080"),
		},
		Metadata: MetadataConfig{
			IpfsHosts: getSlice("IPFS_HOSTS", ipfsHosts, ","),
			Timeout:   getInt("IPFS_TIMEOUT", 10),
			Retries:   getInt("METADATA_RETRIES", 3),
		},
		ElasticSearch: ElasticSearchConfig{
			Enabled:          getBool("ELASTIC_SEARCH_ENABLED", false),
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:            getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck:      getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:            getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:         getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:         getString("ELASTIC_SEARCH_PASSWORD", ""),
			BulkPersistCount: getInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 300),
			Refresh:          getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
		},
		Queue: QueueConfig{
			Enabled: getBool("QUEUE_ENABLED", false),
			AmqpUri: getString("QUEUE_AMQP_URI", ""),
		},
	}
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	valStr := getString(key, "")
	val, _, err := big.ParseFloat(valStr, 10, 0, big.ToNearestEven)
	if err != nil {
		return defaultValue
	}

	intVal, _ := val.Int64()
	return int(intVal)
}

func getUint64(key string, defaultValue uint) uint64 {
	return uint64(getInt(key, int(defaultValue)))
}

func getBool(key string, defaultValue bool) bool {
	valStr := getString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getSlice(key string, defaultVal []string, sep string) []string {
	valStr := getString(key, "")
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, sep)
}

package test

import (
	"net/url"
	"time"

	"github.com/dashbook/dashbook/settings"
)

// CreateBaseTestSettings returns settings with the production defaults, a local node url
// and tracing off, independent of any settings.conf on disk.
func CreateBaseTestSettings() *settings.Settings {
	rpcURL, _ := url.Parse("http://127.0.0.1:19998/")

	return &settings.Settings{
		ClientName:         "dashbook-test",
		LogLevel:           "ERROR",
		StatsPrefix:        "/debug/",
		PrometheusEndpoint: "/metrics",
		RPC: settings.RPCSettings{
			URL:      rpcURL,
			User:     "dashrpc",
			Password: "password",
			Timeout:  5 * time.Second,
		},
		Asset: settings.AssetSettings{
			APIPrefix:         "/api",
			HTTPListenAddress: "127.0.0.1:0",
			StaticDir:         "",
		},
		Cache: settings.CacheSettings{
			BlocksCapacity:         1000,
			BlocksTTL:              time.Hour,
			HeightIndexCapacity:    10000,
			HeightIndexTTL:         time.Hour,
			TransactionsCapacity:   5000,
			TransactionsTTL:        time.Hour,
			StatusCapacity:         5,
			StatusTTL:              5 * time.Second,
			MasternodeListCapacity: 10,
			MasternodeListTTL:      120 * time.Second,
			LatestBlocksCapacity:   10,
			LatestBlocksTTL:        10 * time.Second,
		},
		Live: settings.LiveSettings{
			PollInterval:       2 * time.Second,
			MempoolEveryNTicks: 5,
			BusCapacity:        256,
		},
		Address: settings.AddressSettings{
			DefaultLimit:     50,
			MaxLimit:         200,
			BulkDeltaMaxTxs:  10000,
			UtxoMaxTxs:       50000,
			FetchConcurrency: 8,
		},
	}
}

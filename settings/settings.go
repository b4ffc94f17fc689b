package settings

import (
	"time"
)

func NewSettings() *Settings {
	return &Settings{
		ClientName:         getString("clientName", "dashbook"),
		LogLevel:           getString("logLevel", "INFO"),
		PrettyLogs:         getBool("PRETTY_LOGS", true),
		StatsPrefix:        getString("stats_prefix", "/debug/"),
		ProfilerAddr:       getString("profilerAddr", ""),
		PrometheusEndpoint: getString("prometheusEndpoint", "/metrics"),
		RPC: RPCSettings{
			URL:      getURL("rpc_url", getAlias("DASHBOOK_RPC_URL", "http://127.0.0.1:19998/")),
			User:     getString("rpc_user", getAlias("DASHBOOK_RPC_USER", "dashrpc")),
			Password: getString("rpc_pass", getAlias("DASHBOOK_RPC_PASS", "password")),
			Timeout:  getDuration("rpc_timeout", 30*time.Second),
		},
		Asset: AssetSettings{
			APIPrefix:         getString("asset_apiPrefix", "/api"),
			HTTPListenAddress: getString("asset_httpListenAddress", getAlias("DASHBOOK_BIND", "0.0.0.0:3000")),
			StaticDir:         getString("asset_staticDir", getAlias("DASHBOOK_STATIC_DIR", "./static")),
			EchoDebug:         getBool("asset_echoDebug", false),
			RateLimit:         getInt("asset_rateLimit", 0), // requests per second, 0 is off
		},
		Cache: CacheSettings{
			BlocksCapacity:         getInt("cache_blocksCapacity", 1000),
			BlocksTTL:              getDuration("cache_blocksTTL", time.Hour),
			HeightIndexCapacity:    getInt("cache_heightIndexCapacity", 10000),
			HeightIndexTTL:         getDuration("cache_heightIndexTTL", time.Hour),
			TransactionsCapacity:   getInt("cache_transactionsCapacity", 5000),
			TransactionsTTL:        getDuration("cache_transactionsTTL", time.Hour),
			StatusCapacity:         getInt("cache_statusCapacity", 5),
			StatusTTL:              getDuration("cache_statusTTL", 5*time.Second),
			MasternodeListCapacity: getInt("cache_masternodeListCapacity", 10),
			MasternodeListTTL:      getDuration("cache_masternodeListTTL", 120*time.Second),
			LatestBlocksCapacity:   getInt("cache_latestBlocksCapacity", 10),
			LatestBlocksTTL:        getDuration("cache_latestBlocksTTL", 10*time.Second),
		},
		Live: LiveSettings{
			PollInterval:       getDuration("live_pollInterval", 2*time.Second),
			MempoolEveryNTicks: getInt("live_mempoolEveryNTicks", 5),
			BusCapacity:        getInt("live_busCapacity", 256),
		},
		Address: AddressSettings{
			DefaultLimit:     getInt("address_defaultLimit", 50),
			MaxLimit:         getInt("address_maxLimit", 200),
			BulkDeltaMaxTxs:  getInt("address_bulkDeltaMaxTxs", 10000),
			UtxoMaxTxs:       getInt("address_utxoMaxTxs", 50000),
			FetchConcurrency: getInt("address_fetchConcurrency", 8),
		},
		Tracing: TracingSettings{
			Enabled:      getBool("tracing_enabled", false),
			CollectorURL: getURL("tracing_collectorURL", "http://localhost:4318"),
			SampleRate:   getFloat64("tracing_sampleRate", 0.01),
		},
	}
}

// String renders the effective settings with the rpc password masked.
func (s *Settings) String() string {
	return dump(s)
}

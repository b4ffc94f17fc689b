package settings

import (
	"net/url"
	"time"
)

type RPCSettings struct {
	URL      *url.URL
	User     string
	Password string
	Timeout  time.Duration
}

type AssetSettings struct {
	APIPrefix         string
	HTTPListenAddress string
	StaticDir         string
	EchoDebug         bool
	RateLimit         int
}

type CacheSettings struct {
	BlocksCapacity         int
	BlocksTTL              time.Duration
	HeightIndexCapacity    int
	HeightIndexTTL         time.Duration
	TransactionsCapacity   int
	TransactionsTTL        time.Duration
	StatusCapacity         int
	StatusTTL              time.Duration
	MasternodeListCapacity int
	MasternodeListTTL      time.Duration
	LatestBlocksCapacity   int
	LatestBlocksTTL        time.Duration
}

type LiveSettings struct {
	PollInterval       time.Duration
	MempoolEveryNTicks int
	BusCapacity        int
}

type AddressSettings struct {
	DefaultLimit     int
	MaxLimit         int
	BulkDeltaMaxTxs  int
	UtxoMaxTxs       int
	FetchConcurrency int
}

type TracingSettings struct {
	Enabled      bool
	CollectorURL *url.URL
	SampleRate   float64
}

type Settings struct {
	ClientName         string
	LogLevel           string
	PrettyLogs         bool
	StatsPrefix        string
	ProfilerAddr       string
	PrometheusEndpoint string
	RPC                RPCSettings
	Asset              AssetSettings
	Cache              CacheSettings
	Live               LiveSettings
	Address            AddressSettings
	Tracing            TracingSettings
}

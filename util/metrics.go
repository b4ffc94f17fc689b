package util

// MetricsBucketsMilliSeconds covers 1ms to ~8s, used for rpc calls and api requests.
var MetricsBucketsMilliSeconds = []float64{
	1e-3, 2e-3, 4e-3, 8e-3, 16e-3, 32e-3, 64e-3, 128e-3, 256e-3, 512e-3, 1024e-3, 2048e-3, 4096e-3, 8192e-3,
}

// MetricsBucketsMilliLongSeconds covers 64ms to 131s, for work that fans out into many rpc calls.
var MetricsBucketsMilliLongSeconds = []float64{
	64e-3, 128e-3, 256e-3, 512e-3, 1024e-3, 2048e-3, 4096e-3, 8192e-3, 16384e-3, 32768e-3, 65536e-3, 131072e-3,
}

// Package dashcore is the JSON-RPC client for a Dash Core node.
package dashcore

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/settings"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/dashbook/dashbook/util"
	"github.com/dashbook/dashbook/util/tracing"
	jsoniter "github.com/json-iterator/go"
	"github.com/ordishs/gocore"
	"go.uber.org/atomic"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type rawMessage = jsoniter.RawMessage

const (
	rpcCodeInvalidAddressOrKey = -5
	rpcCodeInvalidParameter    = -8

	excerptLimit   = 500
	defaultTimeout = 30 * time.Second
)

var (
	DashcoreStat = gocore.NewStat("dashcore")
	tracer       = tracing.Tracer("dashcore")
)

type request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type response struct {
	Result rawMessage `json:"result"`
	Error  *rpcError  `json:"error"`
	ID     uint64     `json:"id"`
}

type Client struct {
	logger     ulogger.Logger
	url        string
	user       string
	password   string
	timeout    time.Duration
	httpClient *http.Client
	requestID  *atomic.Uint64
}

func NewClient(logger ulogger.Logger, tSettings *settings.Settings) (*Client, error) {
	if tSettings.RPC.URL == nil {
		return nil, errors.NewConfigurationError("[dashcore] rpc_url is not set")
	}

	if tSettings.RPC.URL.Scheme == "" || tSettings.RPC.URL.Host == "" {
		return nil, errors.NewConfigurationError("[dashcore] rpc_url %q is not a valid http url", tSettings.RPC.URL.String())
	}

	initPrometheusMetrics()

	timeout := tSettings.RPC.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		logger:     logger,
		url:        tSettings.RPC.URL.String(),
		user:       tSettings.RPC.User,
		password:   tSettings.RPC.Password,
		timeout:    timeout,
		httpClient: &http.Client{},
		requestID:  atomic.NewUint64(0),
	}, nil
}

// Call sends one JSON-RPC request and decodes its result into result. A nil result discards the payload.
func (c *Client) Call(ctx context.Context, method string, params []interface{}, result interface{}) (err error) {
	ctx, _, endSpan := tracer.Start(ctx, "Call",
		tracing.WithParentStat(DashcoreStat),
		tracing.WithTag("method", method),
		tracing.WithHistogram(prometheusDashcoreCallDuration.WithLabelValues(method)),
		tracing.WithDebugLogMessage(c.logger, "[dashcore][%s] calling", method),
	)

	defer func() {
		prometheusDashcoreCalls.WithLabelValues(method, errors.GetErrorCategory(err)).Inc()
		endSpan(err)
	}()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if params == nil {
		params = []interface{}{}
	}

	id := c.requestID.Inc()

	body, err := json.Marshal(request{
		JSONRPC: "1.0",
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.NewProcessingError("[dashcore][%s] failed to encode request", method, err)
	}

	resp, err := util.DoHTTPRequest(ctx, c.httpClient, util.HTTPRequest{
		URL:      c.url,
		Body:     body,
		Header:   http.Header{"Content-Type": []string{"text/plain"}},
		User:     c.user,
		Password: c.password,
	})
	if err != nil {
		return err
	}

	return decodeResponse(method, resp.StatusCode, resp.Body, result)
}

func decodeResponse(method string, statusCode int, body []byte, result interface{}) error {
	var envelope response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errors.NewInvalidResponseError("[dashcore][%s] cannot parse response (http %d): %s", method, statusCode, excerpt(body), err)
	}

	if envelope.Error != nil {
		switch envelope.Error.Code {
		case rpcCodeInvalidAddressOrKey, rpcCodeInvalidParameter:
			return errors.NewNotFoundError("%s", envelope.Error.Message)
		default:
			return errors.NewUpstreamError(envelope.Error.Code, envelope.Error.Message)
		}
	}

	if isNull(envelope.Result) {
		return errors.NewEmptyResponseError("[dashcore][%s] response has neither result nor error", method)
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return errors.NewInvalidResponseError("[dashcore][%s] cannot decode result: %s", method, excerpt(envelope.Result), err)
	}

	return nil
}

func isNull(raw rawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func excerpt(body []byte) string {
	if len(body) > excerptLimit {
		return string(body[:excerptLimit]) + "..."
	}

	return string(body)
}

// Health reports liveness unconditionally, readiness needs a successful getblockcount.
func (c *Client) Health(ctx context.Context, checkLiveness bool) (int, string, error) {
	if checkLiveness {
		return http.StatusOK, "OK", nil
	}

	height, err := c.GetBlockCount(ctx)
	if err != nil {
		return http.StatusServiceUnavailable, "dash core node unreachable", err
	}

	return http.StatusOK, "block count " + formatUint(height), nil
}

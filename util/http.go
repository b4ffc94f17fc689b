package util

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/dashbook/dashbook/errors"
	"github.com/ordishs/gocore"
)

var (
	// httpRequestTimeout is applied when the context carries no deadline.
	httpRequestTimeout, _ = gocore.Config().GetInt("http_timeout", 30)
)

// HTTPRequest describes a single outgoing request. A nil Body means GET.
type HTTPRequest struct {
	URL      string
	Body     []byte
	Header   http.Header
	User     string
	Password string
}

// HTTPResponse carries the status and the full body. Non-2xx statuses are not errors,
// callers that speak a protocol with error bodies decide themselves.
type HTTPResponse struct {
	StatusCode int
	Body       []byte
}

// DoHTTPRequest performs the request with client (http.DefaultClient when nil) and reads the whole body.
func DoHTTPRequest(ctx context.Context, client *http.Client, r HTTPRequest) (*HTTPResponse, error) {
	cancelFn := func() {
		// noop
	}

	if _, ok := ctx.Deadline(); !ok {
		ctx, cancelFn = context.WithTimeout(ctx, time.Duration(httpRequestTimeout)*time.Second)
	}
	defer cancelFn()

	if client == nil {
		client = http.DefaultClient
	}

	method := http.MethodGet

	var body io.Reader
	if r.Body != nil {
		method = http.MethodPost
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return nil, errors.NewServiceError("failed to create http request", err)
	}

	for k, values := range r.Header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	if r.User != "" || r.Password != "" {
		req.SetBasicAuth(r.User, r.Password)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, r.URL, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		return nil, errors.NewServiceError("http request [%s] returned HTML - assume bad URL", r.URL)
	}

	// read the body with context deadline support
	done := make(chan struct{})

	var (
		respBytes []byte
		readErr   error
	)

	go func() {
		respBytes, readErr = io.ReadAll(resp.Body)
		close(done)
	}()

	select {
	case <-ctx.Done():
		return nil, errors.NewNetworkTimeoutError("http request [%s] timed out while reading body", r.URL)
	case <-done:
		if readErr != nil {
			return nil, classifyTransportError(ctx, r.URL, readErr)
		}

		return &HTTPResponse{StatusCode: resp.StatusCode, Body: respBytes}, nil
	}
}

func classifyTransportError(ctx context.Context, url string, err error) error {
	var netErr net.Error

	switch {
	case stderrors.Is(err, context.DeadlineExceeded), ctx.Err() == context.DeadlineExceeded:
		return errors.NewNetworkTimeoutError("http request [%s] timed out", url, err)
	case stderrors.As(err, &netErr) && netErr.Timeout():
		return errors.NewNetworkTimeoutError("http request [%s] timed out", url, err)
	case stderrors.Is(err, syscall.ECONNREFUSED):
		return errors.NewNetworkConnectionRefusedError("http request [%s] connection refused", url, err)
	case stderrors.Is(err, context.Canceled):
		return errors.NewContextCanceledError("http request [%s] canceled", url, err)
	default:
		return errors.NewNetworkError("failed to do http request [%s]", url, err)
	}
}

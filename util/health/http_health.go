package health

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dashbook/dashbook/util"
)

// CheckHTTPServer probes baseURL+path with a GET. Any 2xx answer is healthy, the body of the
// answer becomes the details.
func CheckHTTPServer(baseURL string, path string, timeout time.Duration) func(context.Context, bool) (int, string, error) {
	url := strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	client := &http.Client{Timeout: timeout}

	return func(ctx context.Context, _ bool) (int, string, error) {
		resp, err := util.DoHTTPRequest(ctx, client, util.HTTPRequest{URL: url})
		if err != nil {
			return http.StatusServiceUnavailable, fmt.Sprintf("%s is not accepting connections", url), err
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return http.StatusServiceUnavailable, string(resp.Body), nil
		}

		return http.StatusOK, string(resp.Body), nil
	}
}

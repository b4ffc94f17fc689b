// Package health aggregates dependency checks into one status code and a JSON report.
package health

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Check is one named dependency. Its details are embedded verbatim when they are a JSON document.
type Check struct {
	Name  string
	Check func(context.Context, bool) (int, string, error)
}

type dependency struct {
	Resource     string              `json:"resource"`
	Status       int                 `json:"status"`
	Error        string              `json:"error,omitempty"`
	Message      string              `json:"message,omitempty"`
	Dependencies jsoniter.RawMessage `json:"dependencies,omitempty"`
}

type report struct {
	Status       int          `json:"status"`
	Dependencies []dependency `json:"dependencies"`
}

// CheckAll runs every check in order. Any error or non-200 status makes the result 503.
func CheckAll(ctx context.Context, checkLiveness bool, checks []Check) (int, string, error) {
	r := report{
		Status:       http.StatusOK,
		Dependencies: make([]dependency, 0, len(checks)),
	}

	for _, check := range checks {
		status, details, err := check.Check(ctx, checkLiveness)
		if err != nil || status != http.StatusOK {
			r.Status = http.StatusServiceUnavailable
		}

		dep := dependency{
			Resource: check.Name,
			Status:   status,
		}

		if err != nil {
			dep.Error = err.Error()
		}

		if json.Valid([]byte(details)) && len(details) > 0 && details[0] == '{' {
			dep.Dependencies = jsoniter.RawMessage(details)
		} else {
			dep.Message = details
		}

		r.Dependencies = append(r.Dependencies, dep)
	}

	b, err := json.Marshal(r)
	if err != nil {
		return http.StatusInternalServerError, "", err
	}

	return r.Status, string(b), nil
}

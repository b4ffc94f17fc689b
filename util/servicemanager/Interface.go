package servicemanager

import "context"

// Service is a long-lived component managed by the ServiceManager.
// Start blocks until ctx is done or the service fails, and closes readyCh once it accepts work.
type Service interface {
	Init(ctx context.Context) error
	Start(ctx context.Context, readyCh chan<- struct{}) error
	Stop(ctx context.Context) error
	Health(ctx context.Context, checkLiveness bool) (int, string, error)
}

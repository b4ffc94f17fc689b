package errors

var (
	ErrInvalidArgument          = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrThresholdExceeded        = New(ERR_THRESHOLD_EXCEEDED, "threshold exceeded")
	ErrNotFound                 = New(ERR_NOT_FOUND, "not found")
	ErrProcessing               = New(ERR_PROCESSING, "error processing")
	ErrConfiguration            = New(ERR_CONFIGURATION, "configuration error")
	ErrContextCanceled          = New(ERR_CONTEXT_CANCELED, "context canceled")
	ErrServiceUnavailable       = New(ERR_SERVICE_UNAVAILABLE, "service unavailable")
	ErrServiceNotStarted        = New(ERR_SERVICE_NOT_STARTED, "service not started")
	ErrServiceError             = New(ERR_SERVICE_ERROR, "service error")
	ErrUpstream                 = New(ERR_UPSTREAM, "upstream error")
	ErrInvalidResponse          = New(ERR_INVALID_RESPONSE, "invalid upstream response")
	ErrEmptyResponse            = New(ERR_EMPTY_RESPONSE, "empty upstream response")
	ErrNetworkError             = New(ERR_NETWORK_ERROR, "network error")
	ErrNetworkTimeout           = New(ERR_NETWORK_TIMEOUT, "network timeout")
	ErrNetworkConnectionRefused = New(ERR_NETWORK_CONNECTION_REFUSED, "connection refused")
)

// errors initialization functions

func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewThresholdExceededError(message string, params ...interface{}) error {
	return New(ERR_THRESHOLD_EXCEEDED, message, params...)
}
func NewNotFoundError(message string, params ...interface{}) error {
	return New(ERR_NOT_FOUND, message, params...)
}
func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewContextCanceledError(message string, params ...interface{}) error {
	return New(ERR_CONTEXT_CANCELED, message, params...)
}
func NewServiceUnavailableError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_UNAVAILABLE, message, params...)
}
func NewServiceNotStartedError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_NOT_STARTED, message, params...)
}
func NewServiceError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_ERROR, message, params...)
}
func NewInvalidResponseError(message string, params ...interface{}) error {
	return New(ERR_INVALID_RESPONSE, message, params...)
}
func NewEmptyResponseError(message string, params ...interface{}) error {
	return New(ERR_EMPTY_RESPONSE, message, params...)
}
func NewNetworkError(message string, params ...interface{}) error {
	return New(ERR_NETWORK_ERROR, message, params...)
}
func NewNetworkTimeoutError(message string, params ...interface{}) error {
	return New(ERR_NETWORK_TIMEOUT, message, params...)
}
func NewNetworkConnectionRefusedError(message string, params ...interface{}) error {
	return New(ERR_NETWORK_CONNECTION_REFUSED, message, params...)
}

// NewUpstreamError builds an ERR_UPSTREAM error keeping the node's own code and message.
func NewUpstreamError(rpcCode int, rpcMessage string, params ...interface{}) error {
	e := New(ERR_UPSTREAM, "rpc error %d: %s", append([]interface{}{rpcCode, rpcMessage}, params...)...)
	e.data = &UpstreamErrData{RPCCode: rpcCode, RPCMessage: rpcMessage}

	return e
}

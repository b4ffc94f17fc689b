package errors

import (
	"encoding/json"
	"fmt"
)

// ErrDataI is an interface for error data that can be set, retrieved, and encoded.
type ErrDataI interface {
	EncodeErrorData() []byte
	Error() string
	GetData(key string) interface{}
	SetData(key string, value interface{})
}

// ErrData is a generic error data structure that implements the ErrDataI interface.
type ErrData map[string]interface{}

// Error returns a string representation of the error data.
func (e *ErrData) Error() string {
	return fmt.Sprintf(" %v", *e)
}

// SetData sets a key-value pair in the error data.
func (e *ErrData) SetData(key string, value interface{}) {
	if e == nil {
		return
	}

	if *e == nil {
		*e = ErrData{}
	}

	(*e)[key] = value
}

// GetData retrieves the value associated with a key in the error data.
func (e *ErrData) GetData(key string) interface{} {
	if e == nil {
		return nil
	}

	return (*e)[key]
}

// EncodeErrorData encodes the error data to a byte slice using JSON encoding.
func (e *ErrData) EncodeErrorData() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return []byte{}
	}

	return data
}

// UpstreamErrData holds the structured error returned by the node.
type UpstreamErrData struct {
	RPCCode    int    `json:"code"`
	RPCMessage string `json:"message"`
}

func (d *UpstreamErrData) Error() string {
	return fmt.Sprintf(" rpc error %d: %s", d.RPCCode, d.RPCMessage)
}

func (d *UpstreamErrData) SetData(key string, value interface{}) {
	switch key {
	case "code":
		if v, ok := value.(int); ok {
			d.RPCCode = v
		}
	case "message":
		if v, ok := value.(string); ok {
			d.RPCMessage = v
		}
	}
}

func (d *UpstreamErrData) GetData(key string) interface{} {
	switch key {
	case "code":
		return d.RPCCode
	case "message":
		return d.RPCMessage
	}

	return nil
}

func (d *UpstreamErrData) EncodeErrorData() []byte {
	data, err := json.Marshal(d)
	if err != nil {
		return []byte{}
	}

	return data
}

// GetErrorData decodes error data based on the error code.
func GetErrorData(code ERR, dataBytes []byte) (ErrDataI, error) {
	var errData ErrDataI

	switch code {
	case ERR_UPSTREAM:
		errData = &UpstreamErrData{}
	default:
		errData = &ErrData{}
	}

	if err := json.Unmarshal(dataBytes, errData); err != nil {
		return errData, err
	}

	return errData, nil
}

package errors

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Error is a coded error. The code decides the kind at the HTTP boundary, the message is
// what clients see and wrappedErr keeps the cause for logs.
type Error struct {
	code       ERR
	message    string
	wrappedErr error
	data       ErrDataI
}

// Error renders "CODE (n): message [data]: cause".
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s (%d): %s", e.code, e.code, e.message)

	if e.data != nil {
		if d := strings.TrimSpace(e.data.Error()); d != "" {
			sb.WriteString(" [" + d + "]")
		}
	}

	if e.wrappedErr != nil {
		sb.WriteString(": ")
		sb.WriteString(e.wrappedErr.Error())
	}

	return sb.String()
}

// Is reports whether any *Error in the chain below e, e included, has the code of target.
// Targets that are not an *Error never match here, errors.Is keeps unwrapping for them.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}

	targetError, ok := target.(*Error)
	if !ok || targetError == nil {
		return false
	}

	for cur := error(e); cur != nil; cur = errors.Unwrap(cur) {
		if coded, ok := cur.(*Error); ok && coded != nil && coded.code == targetError.code {
			return true
		}
	}

	return false
}

// As fills a **Error target with e, otherwise looks at the data and then the cause.
func (e *Error) As(target interface{}) bool {
	if e == nil {
		return false
	}

	if targetErr, ok := target.(**Error); ok {
		*targetErr = e
		return true
	}

	if data, ok := e.data.(error); ok && data != nil && errors.As(data, target) {
		return true
	}

	if e.wrappedErr == nil {
		return false
	}

	// a typed nil pointer behind the interface would panic inside errors.As
	if v := reflect.ValueOf(e.wrappedErr); v.Kind() == reflect.Ptr && v.IsNil() {
		return false
	}

	return errors.As(e.wrappedErr, target)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

func (e *Error) Code() ERR {
	if e == nil {
		return ERR_UNKNOWN
	}

	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

func (e *Error) WrappedErr() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

func (e *Error) Data() ErrDataI {
	if e == nil {
		return nil
	}

	return e.data
}

func (e *Error) SetData(key string, value interface{}) {
	if e.data == nil {
		e.data = &ErrData{}
	}

	e.data.SetData(key, value)
}

func (e *Error) GetData(key string) interface{} {
	if e.data == nil {
		return nil
	}

	return e.data.GetData(key)
}

// New creates an *Error. A trailing error param becomes the cause, the other params
// format the message. An unknown code keeps the cause but replaces the message.
func New(code ERR, message string, params ...interface{}) *Error {
	e := &Error{code: code}

	if n := len(params); n > 0 {
		if cause, ok := params[n-1].(error); ok {
			e.wrappedErr = cause
			params = params[:n-1]
		}
	}

	if _, known := ERR_name[int32(code)]; !known {
		e.message = "invalid error code"
		return e
	}

	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}

	e.message = message

	return e
}

// Join flattens errs into one plain error, nil when all of them are nil.
func Join(errs ...error) error {
	messages := make([]string, 0, len(errs))

	for _, err := range errs {
		if err != nil {
			messages = append(messages, err.Error())
		}
	}

	if len(messages) == 0 {
		return nil
	}

	return errors.New(strings.Join(messages, ", "))
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	if coded, ok := err.(*Error); ok && coded.As(target) {
		return true
	}

	return errors.As(err, target)
}

// AsData reports whether any error in the chain carries data assignable to target.
func AsData(err error, target interface{}) bool {
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		coded, ok := cur.(*Error)
		if !ok || coded == nil {
			continue
		}

		if coded.data != nil && errors.As(coded.data, target) {
			return true
		}
	}

	return false
}

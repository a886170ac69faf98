// Package core carries the error vocabulary shared by the font store,
// the container codec, the importers and the atlas packer.
//
// Errors travel with a numeric code and a user-facing message: a
// missing page image reports EMISSING, a container whose glyph table
// does not tile its pixel arena reports EINVALID, a font stream that
// cannot be opened, read or written reports EIO. Callers branch on Code and show
// UserMessage; the wrapped cause stays available for errors.Is/As.
package core

import (
	"errors"
	"fmt"
	"os"
)

// General error codes
const (
	NOERROR   int = 0
	EMISSING  int = 122 // resource does not exist: font file, descriptor, page image
	EINVALID  int = 123 // validation failed: bad magic, broken arena tiling, bad glyph size
	EIO       int = 124 // stream could not be opened, read or written
	EINTERNAL int = 125 // internal error
)

// messages are the generic per-code fallback texts.
var messages = map[int]string{
	NOERROR:   "OK",
	EMISSING:  "not found",
	EINVALID:  "invalid",
	EIO:       "i/o-error",
	EINTERNAL: "internal error",
}

func errorText(ecode int) string {
	if msg, ok := messages[ecode]; ok {
		return msg
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type appError struct {
	error
	code int
	msg  string
}

func (e appError) Error() string {
	return fmt.Sprintf("[%d] %v", e.code, e.error)
}

func (e appError) Unwrap() error {
	return e.error
}

func (e appError) ErrorCode() int {
	return e.code
}

func (e appError) UserMessage() string {
	return e.msg
}

var _ AppError = appError{}

// Error creates an error with an error code and a user-message, e.g.
//
//	core.Error(core.EINVALID, "unmatched character data size %d", n)
func Error(code int, format string, v ...interface{}) error {
	return appError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}

// WrapError attaches an error code and a user message to an underlying
// cause, typically an os or decoding error surfacing through the codec
// or an importer. If err is nil, the generic message of code stands in
// as the cause.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return appError{err, code, fmt.Sprintf(format, v...)}
}

// Code returns the status code associated with an error.
// If no status code is found, it returns EINTERNAL.
// If err is nil, NOERROR is returned.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error, e.g.
// which page image of a BMFont import could not be decoded. If no
// message is found, it falls back to the generic message for the
// error's code.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// UserError prints an error's user message to stderr.
func UserError(err error) {
	if e, ok := err.(AppError); ok {
		fmt.Fprintf(os.Stderr, "[%d] %s\n", e.ErrorCode(), e.UserMessage())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}

// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wdlite

import (
	"errors"
	"fmt"
)

//Code identifies the outcome of a command. Codes other than Success map one to
//one onto the W3C WebDriver error identifiers.
type Code int

const (
	Success Code = iota

	UnknownWebDriverError
	ElementClickIntercepted
	ElementNotInteractable
	InsecureCertificate
	InvalidArgument
	InvalidCookieDomain
	InvalidElementState
	InvalidSelector
	InvalidSessionID
	JavaScriptError
	MoveTargetOutOfBounds
	NoSuchAlert
	NoSuchCookie
	NoSuchElement
	NoSuchFrame
	NoSuchWindow
	NoSuchShadowRoot
	ScriptTimeout
	SessionNotCreated
	StaleElementReference
	DetachedShadowRoot
	Timeout
	UnableToSetCookie
	UnableToCaptureScreen
	UnexpectedAlertOpen
	UnknownCommand
	UnknownError
	UnknownMethod
	UnsupportedOperation
)

//Condition is the coarse group a Code belongs to.
type Condition int

const (
	ConditionSuccess Condition = iota
	ConditionWebDriver
	//Failures that never reached the JSON layer (connection, DNS, cancellation).
	ConditionTransport
	//The command was rejected before anything was sent. See ErrInvalidCommand.
	ConditionCaller
)

//ErrInvalidCommand is wrapped by errors for commands that could not be built:
//an unsupported HTTP method, parameters that do not encode as JSON, or a URL
//that does not parse.
var ErrInvalidCommand = errors.New("invalid command")

func (c Condition) String() string {
	switch c {
	case ConditionSuccess:
		return "success"
	case ConditionWebDriver:
		return "webdriver"
	case ConditionTransport:
		return "transport"
	case ConditionCaller:
		return "caller"
	}
	return "(unrecognized error condition)"
}

// Identifiers as sent in the "error" field of a failed response.
var errorCodes = map[string]Code{
	"element click intercepted": ElementClickIntercepted,
	"element not interactable":  ElementNotInteractable,
	"insecure certificate":      InsecureCertificate,
	"invalid argument":          InvalidArgument,
	"invalid cookie domain":     InvalidCookieDomain,
	"invalid element state":     InvalidElementState,
	"invalid selector":          InvalidSelector,
	"invalid session id":        InvalidSessionID,
	"javascript error":          JavaScriptError,
	"move target out of bounds": MoveTargetOutOfBounds,
	"no such alert":             NoSuchAlert,
	"no such cookie":            NoSuchCookie,
	"no such element":           NoSuchElement,
	"no such frame":             NoSuchFrame,
	"no such window":            NoSuchWindow,
	"no such shadow root":       NoSuchShadowRoot,
	"script timeout":            ScriptTimeout,
	"session not created":       SessionNotCreated,
	"stale element reference":   StaleElementReference,
	"detached shadow root":      DetachedShadowRoot,
	"timeout":                   Timeout,
	"unable to set cookie":      UnableToSetCookie,
	"unable to capture screen":  UnableToCaptureScreen,
	"unexpected alert open":     UnexpectedAlertOpen,
	"unknown command":           UnknownCommand,
	"unknown error":             UnknownError,
	"unknown method":            UnknownMethod,
	"unsupported operation":     UnsupportedOperation,
}

var codeIdentifiers = func() map[Code]string {
	m := make(map[Code]string, len(errorCodes))
	for id, c := range errorCodes {
		m[c] = id
	}
	return m
}()

// Descriptions are the ones of https://www.w3.org/TR/webdriver2/#errors.
var codeDescriptions = map[Code]string{
	Success:                 "success",
	UnknownWebDriverError:   "unknown webdriver error",
	ElementClickIntercepted: "The Element Click command could not be completed because the element receiving the events is obscuring the element that was requested clicked.",
	ElementNotInteractable:  "A command could not be completed because the element is not pointer- or keyboard interactable.",
	InsecureCertificate:     "Navigation caused the user agent to hit a certificate warning, which is usually the result of an expired or invalid TLS certificate.",
	InvalidArgument:         "The arguments passed to a command are either invalid or malformed.",
	InvalidCookieDomain:     "An illegal attempt was made to set a cookie under a different domain than the current page.",
	InvalidElementState:     "A command could not be completed because the element is in an invalid state, e.g. attempting to clear an element that isn't both editable and resettable.",
	InvalidSelector:         "Argument was an invalid selector.",
	InvalidSessionID:        "Occurs if the given session id is not in the list of active sessions, meaning the session either does not exist or that it's not active.",
	JavaScriptError:         "An error occurred while executing JavaScript supplied by the user.",
	MoveTargetOutOfBounds:   "The target for mouse interaction is not in the browser's viewport and cannot be brought into that viewport.",
	NoSuchAlert:             "An attempt was made to operate on a modal dialog when one was not open.",
	NoSuchCookie:            "No cookie matching the given path name was found amongst the associated cookies of session's current browsing context's active document.",
	NoSuchElement:           "An element could not be located on the page using the given search parameters.",
	NoSuchFrame:             "A command to switch to a frame could not be satisfied because the frame could not be found.",
	NoSuchWindow:            "A command to switch to a window could not be satisfied because the window could not be found.",
	NoSuchShadowRoot:        "The element does not have a shadow root.",
	ScriptTimeout:           "A script did not complete before its timeout expired.",
	SessionNotCreated:       "A new session could not be created.",
	StaleElementReference:   "A command failed because the referenced element is no longer attached to the DOM.",
	DetachedShadowRoot:      "A command failed because the referenced shadow root is no longer attached to the DOM.",
	Timeout:                 "An operation did not complete before its timeout expired.",
	UnableToSetCookie:       "A command to set a cookie's value could not be satisfied.",
	UnableToCaptureScreen:   "A screen capture was made impossible.",
	UnexpectedAlertOpen:     "A modal dialog was open, blocking this operation.",
	UnknownCommand:          "A command could not be executed because the remote end is not aware of it.",
	UnknownError:            "An unknown error occurred in the remote end while processing the command.",
	UnknownMethod:           "The requested command matched a known URL but did not match any method for that URL.",
	UnsupportedOperation:    "Indicates that a command that should have executed properly cannot be supported for some reason.",
}

//Map a protocol error identifier (e.g. "no such element") to its Code.
//Identifiers that are not part of the W3C table yield UnknownWebDriverError.
func ParseCode(identifier string) Code {
	if c, found := errorCodes[identifier]; found {
		return c
	}
	return UnknownWebDriverError
}

//The protocol identifier of the code, e.g. "stale element reference".
func (c Code) Identifier() string {
	switch c {
	case Success:
		return "success"
	case UnknownWebDriverError:
		return "unknown webdriver error"
	}
	if id, found := codeIdentifiers[c]; found {
		return id
	}
	return fmt.Sprintf("code(%d)", int(c))
}

func (c Code) String() string { return c.Identifier() }

//Human readable description, for diagnostics only.
func (c Code) Description() string {
	if d, found := codeDescriptions[c]; found {
		return d
	}
	return "(unrecognized error code)"
}

func (c Code) Condition() Condition {
	if c == Success {
		return ConditionSuccess
	}
	return ConditionWebDriver
}

//Code implements error so that errors.Is(err, wdlite.NoSuchElement) can be used
//on any error returned by this package.
func (c Code) Error() string {
	return c.Identifier() + ": " + c.Description()
}

//CommandError is returned when the remote end answered a command with a
//WebDriver error, or with a response that is not a valid WebDriver envelope.
type CommandError struct {
	Code Code
	//Identifier as returned by the remote end, empty for malformed responses.
	ErrorType  string
	Message    string
	Stacktrace string
	StatusCode int
	//Cause of a malformed response (JSON syntax error, unexpected payload shape).
	Err error
}

func (e *CommandError) Error() string {
	m := e.Code.Identifier()
	if e.StatusCode != 0 {
		m = fmt.Sprintf("%d %s", e.StatusCode, m)
	}
	if e.Message != "" {
		m += ": " + e.Message
	} else {
		m += ": " + e.Code.Description()
	}
	if e.Err != nil {
		m += ": " + e.Err.Error()
	}
	return m
}

func (e *CommandError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Code, e.Err}
	}
	return []error{e.Code}
}

//TransportError is returned when a request could not be started or its
//response body could not be read. It never carries a WebDriver Code.
type TransportError struct {
	//"start" or "read"
	Op     string
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

//CodeOf returns the WebDriver code carried by err: Success for nil,
//UnknownWebDriverError for errors that carry no code (transport failures and
//caller errors included). Use ConditionOf to tell those apart.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return UnknownWebDriverError
}

//ConditionOf classifies err into its coarse condition group.
func ConditionOf(err error) Condition {
	if err == nil {
		return ConditionSuccess
	}
	var te *TransportError
	if errors.As(err, &te) {
		return ConditionTransport
	}
	if errors.Is(err, ErrInvalidCommand) {
		return ConditionCaller
	}
	return ConditionWebDriver
}

func newMalformedError(status int, format string, args ...interface{}) *CommandError {
	return &CommandError{
		Code:       UnknownWebDriverError,
		StatusCode: status,
		Err:        fmt.Errorf(format, args...),
	}
}

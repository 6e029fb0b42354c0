// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wdlite

import (
	"context"
	"net/http"
	"net/url"

	json "github.com/json-iterator/go"
)

//Element is a handle on a DOM node of a Session. Elements are only obtained
//from find commands. The remote element is never released explicitly; it
//lives as long as the page or the session does.
type Element struct {
	s  *Session
	id string
	//"session/<session id>/element/<id>"
	prefix string
}

func newElement(s *Session, id string) *Element {
	return &Element{s: s, id: id, prefix: elementPrefix(s.prefix, id)}
}

func (e *Element) ID() string        { return e.id }
func (e *Element) Prefix() string    { return e.prefix }
func (e *Element) Session() *Session { return e.s }

//Search for an element, starting from the identified element.
//A nil Element and a nil error are returned when nothing matches.
func (e *Element) FindElement(ctx context.Context, using FindElementStrategy, value string) (*Element, error) {
	return e.s.findElement(ctx, e.prefix, using, value)
}

//Search for multiple elements, starting from the identified element.
func (e *Element) FindElements(ctx context.Context, using FindElementStrategy, value string) ([]*Element, error) {
	return e.s.findElements(ctx, e.prefix, using, value)
}

//Returns the visible text for the element.
func (e *Element) Text(ctx context.Context) (string, error) {
	return e.s.getString(ctx, e.prefix+"/text")
}

//Get the value of an element's attribute. found is false when the element
//has no such attribute.
func (e *Element) Attribute(ctx context.Context, name string) (value string, found bool, err error) {
	return e.optionalString(ctx, e.prefix+"/attribute/"+url.PathEscape(name))
}

//Get the value of an element's DOM property. Non string properties are
//returned as JSON text.
func (e *Element) Property(ctx context.Context, name string) (value string, found bool, err error) {
	return e.optionalString(ctx, e.prefix+"/property/"+url.PathEscape(name))
}

//Query the value of an element's computed CSS property.
func (e *Element) CSSValue(ctx context.Context, name string) (string, error) {
	return e.s.getString(ctx, e.prefix+"/css/"+url.PathEscape(name))
}

//Query for an element's tag name.
func (e *Element) TagName(ctx context.Context) (string, error) {
	return e.s.getString(ctx, e.prefix+"/name")
}

//Determine if an OPTION element, or an INPUT element of type checkbox or radiobutton is currently selected.
func (e *Element) IsSelected(ctx context.Context) (bool, error) {
	return execute(ctx, e.s.client, command{method: http.MethodGet, path: e.prefix + "/selected"}, decodeBool)
}

//Determine if an element is currently enabled.
func (e *Element) IsEnabled(ctx context.Context) (bool, error) {
	return execute(ctx, e.s.client, command{method: http.MethodGet, path: e.prefix + "/enabled"}, decodeBool)
}

//Determine an element's position and size.
func (e *Element) Rect(ctx context.Context) (Rect, error) {
	return execute(ctx, e.s.client, command{method: http.MethodGet, path: e.prefix + "/rect", structured: true},
		func(data json.RawMessage) (Rect, error) {
			var r Rect
			err := json.Unmarshal(data, &r)
			return r, err
		})
}

//Click on an element.
func (e *Element) Click(ctx context.Context) error {
	return e.s.post(ctx, e.prefix+"/click", nil)
}

//Clear a TEXTAREA or text INPUT element's value.
func (e *Element) Clear(ctx context.Context) error {
	return e.s.post(ctx, e.prefix+"/clear", nil)
}

//Send a sequence of key strokes to an element. See keys.go for special keys.
func (e *Element) SendKeys(ctx context.Context, text string) error {
	return e.s.post(ctx, e.prefix+"/value", params{"text": text})
}

//Take a screenshot of the element. The result is base64 encoded PNG data.
func (e *Element) TakeScreenshot(ctx context.Context) (string, error) {
	return e.s.getString(ctx, e.prefix+"/screenshot")
}

func (e *Element) optionalString(ctx context.Context, path string) (string, bool, error) {
	v, err := execute(ctx, e.s.client, command{method: http.MethodGet, path: path, optional: true}, decodeOptionalString)
	if err != nil || v == nil {
		return "", false, err
	}
	return *v, true, nil
}

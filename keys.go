// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wdlite

//Code points of the non-printable keys, for use in Element.SendKeys:
//
//	elem.SendKeys(ctx, "golang"+wdlite.KeyEnter)
const (
	KeyNull       = "\uE000"
	KeyCancel     = "\uE001"
	KeyHelp       = "\uE002"
	KeyBackSpace  = "\uE003"
	KeyTab        = "\uE004"
	KeyClear      = "\uE005"
	KeyReturn     = "\uE006"
	KeyEnter      = "\uE007"
	KeyShift      = "\uE008"
	KeyControl    = "\uE009"
	KeyAlt        = "\uE00A"
	KeyPause      = "\uE00B"
	KeyEscape     = "\uE00C"
	KeySpace      = "\uE00D"
	KeyPageUp     = "\uE00E"
	KeyPageDown   = "\uE00F"
	KeyEnd        = "\uE010"
	KeyHome       = "\uE011"
	KeyArrowLeft  = "\uE012"
	KeyLeft       = KeyArrowLeft
	KeyArrowUp    = "\uE013"
	KeyUp         = KeyArrowUp
	KeyArrowRight = "\uE014"
	KeyRight      = KeyArrowRight
	KeyArrowDown  = "\uE015"
	KeyDown       = KeyArrowDown
	KeyInsert     = "\uE016"
	KeyDelete     = "\uE017"
	KeySemicolon  = "\uE018"
	KeyEquals     = "\uE019"

	KeyNumpad0   = "\uE01A"
	KeyNumpad1   = "\uE01B"
	KeyNumpad2   = "\uE01C"
	KeyNumpad3   = "\uE01D"
	KeyNumpad4   = "\uE01E"
	KeyNumpad5   = "\uE01F"
	KeyNumpad6   = "\uE020"
	KeyNumpad7   = "\uE021"
	KeyNumpad8   = "\uE022"
	KeyNumpad9   = "\uE023"
	KeyMultiply  = "\uE024"
	KeyAdd       = "\uE025"
	KeySeparator = "\uE026"
	KeySubtract  = "\uE027"
	KeyDecimal   = "\uE028"
	KeyDivide    = "\uE029"

	KeyF1  = "\uE031"
	KeyF2  = "\uE032"
	KeyF3  = "\uE033"
	KeyF4  = "\uE034"
	KeyF5  = "\uE035"
	KeyF6  = "\uE036"
	KeyF7  = "\uE037"
	KeyF8  = "\uE038"
	KeyF9  = "\uE039"
	KeyF10 = "\uE03A"
	KeyF11 = "\uE03B"
	KeyF12 = "\uE03C"

	KeyCommand = "\uE03D"
	KeyMeta    = KeyCommand
)

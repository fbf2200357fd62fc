//go:build js
// +build js

// Package web hosts the sequencer in the browser: canvas drawing, image
// decoding, timers, the settings panel and the autoplay prompt.
package web

import (
	"fmt"

	"github.com/gopherjs/gopherjs/js"
)

var EnableDebug = true

// Debug logs a message to the browser console if debug mode is enabled.
func Debug(args ...interface{}) {
	if EnableDebug {
		js.Global.Get("console").Call("log", args...)
	}
}

// Debugf logs a formatted message to the browser console if debug mode is enabled.
func Debugf(format string, args ...interface{}) {
	if EnableDebug {
		js.Global.Get("console").Call("log", fmt.Sprintf(format, args...))
	}
}

// DebugWarn logs a warning to the browser console if debug mode is enabled.
func DebugWarn(args ...interface{}) {
	if EnableDebug {
		js.Global.Get("console").Call("warn", args...)
	}
}

// DebugError logs an error to the browser console. Errors are always shown.
func DebugError(args ...interface{}) {
	js.Global.Get("console").Call("error", args...)
}

// ConsoleLogger routes sequencer and controller messages to the console.
type ConsoleLogger struct{}

func (ConsoleLogger) Debug(args ...interface{}) { Debug(args...) }
func (ConsoleLogger) Warn(args ...interface{})  { DebugWarn(args...) }
func (ConsoleLogger) Error(args ...interface{}) { DebugError(args...) }

package main

import (
	"log"
	"os"
)

// LogFn is the debug logger type.
type LogFn func(format string, args ...interface{})

// NewLog returns a logger writing "[ns] message" lines to stderr, or a
// no-op when enable is false.
func NewLog(ns string, enable bool) LogFn {
	logger := log.New(os.Stderr, "", 0)

	return func(format string, args ...interface{}) {
		if enable {
			logger.Printf("["+ns+"] "+format, args...)
		}
	}
}

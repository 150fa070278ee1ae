// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package logger_test

import (
	"testing"

	"picovga/logger"
	"picovga/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()
	w := &test.Writer{}

	logger.Write(w)
	test.ExpectSuccess(t, w.Compare(""))

	logger.Log("test", "this is a test")
	logger.Write(w)
	test.ExpectSuccess(t, w.Compare("test: this is a test\n"))

	w.Clear()
	logger.Logf("test2", "value %d", 10)
	logger.Write(w)
	test.ExpectSuccess(t, w.Compare("test: this is a test\ntest2: value 10\n"))

	// too many entries asked for is fine
	w.Clear()
	logger.Tail(w, 100)
	test.ExpectSuccess(t, w.Compare("test: this is a test\ntest2: value 10\n"))

	w.Clear()
	logger.Tail(w, 1)
	test.ExpectSuccess(t, w.Compare("test2: value 10\n"))

	w.Clear()
	logger.Tail(w, 0)
	test.ExpectSuccess(t, w.Compare(""))
}

func TestRepeatFolding(t *testing.T) {
	logger.Clear()
	w := &test.Writer{}

	logger.Log("clock", "invalid")
	logger.Log("clock", "invalid")
	logger.Log("clock", "invalid")
	logger.Write(w)
	test.ExpectSuccess(t, w.Compare("clock: invalid (repeat x3)\n"))
	test.ExpectEquality(t, len(logger.Recent(10)), 1)
}

func TestEcho(t *testing.T) {
	logger.Clear()
	w := &test.Writer{}
	logger.SetEcho(w)
	defer logger.SetEcho(nil)

	logger.Log("echo", "hello")
	test.ExpectSuccess(t, w.Compare("echo: hello\n"))
}

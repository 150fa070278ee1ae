// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package test_test

import (
	"errors"
	"testing"

	"picovga/test"
)

func TestExpect(t *testing.T) {
	test.ExpectSuccess(t, true)
	test.ExpectSuccess(t, nil)
	test.ExpectSuccess(t, error(nil))
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("failure"))
	test.ExpectEquality(t, 10, 10)
	test.ExpectInequality(t, "a", "b")
}

func TestWriter(t *testing.T) {
	w := &test.Writer{}
	test.ExpectSuccess(t, w.Compare(""))
	w.Write([]byte("abc"))
	test.ExpectSuccess(t, w.Compare("abc"))
	w.Clear()
	test.ExpectEquality(t, w.String(), "")
}

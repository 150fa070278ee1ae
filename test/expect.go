// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package test

import (
	"fmt"
	"testing"
)

func tag(tags ...any) string {
	if len(tags) == 0 {
		return ""
	}
	return fmt.Sprint(tags...) + ": "
}

func success(v any) (bool, bool) {
	switch v := v.(type) {
	case nil:
		return true, true
	case bool:
		return v, true
	case error:
		return v == nil, true
	}
	return false, false
}

// ExpectEquality tests that v is equal to expected.
func ExpectEquality[T comparable](t *testing.T, v T, expected T, tags ...any) bool {
	t.Helper()
	if v != expected {
		t.Errorf("%sequality test of type %T failed: '%v' does not equal '%v'", tag(tags...), v, v, expected)
		return false
	}
	return true
}

// ExpectInequality tests that v is not equal to unexpected.
func ExpectInequality[T comparable](t *testing.T, v T, unexpected T, tags ...any) bool {
	t.Helper()
	if v == unexpected {
		t.Errorf("%sinequality test of type %T failed: '%v' equals '%v'", tag(tags...), v, v, unexpected)
		return false
	}
	return true
}

// ExpectSuccess tests v for a success value suitable for its type.
func ExpectSuccess(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	ok, supported := success(v)
	if !supported {
		t.Fatalf("%sunsupported type (%T) for expectation testing", tag(tags...), v)
		return false
	}
	if !ok {
		t.Errorf("%sexpected success (%T: %v)", tag(tags...), v, v)
	}
	return ok
}

// ExpectFailure tests v for a failure value suitable for its type.
func ExpectFailure(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if v == nil {
		t.Errorf("%sexpected failure (nil)", tag(tags...))
		return false
	}
	ok, supported := success(v)
	if !supported {
		t.Fatalf("%sunsupported type (%T) for expectation testing", tag(tags...), v)
		return false
	}
	if ok {
		t.Errorf("%sexpected failure (%T)", tag(tags...), v)
	}
	return !ok
}

// DemandEquality is like ExpectEquality but a failure ends the test. Useful
// when later tests depend on the value being correct.
func DemandEquality[T comparable](t *testing.T, v T, expected T, tags ...any) {
	t.Helper()
	if v != expected {
		t.Fatalf("%sequality test of type %T failed: '%v' does not equal '%v'", tag(tags...), v, v, expected)
	}
}

// DemandSuccess is like ExpectSuccess but a failure ends the test.
func DemandSuccess(t *testing.T, v any, tags ...any) {
	t.Helper()
	ok, supported := success(v)
	if !supported || !ok {
		t.Fatalf("%sa success value is demanded for type %T (%v)", tag(tags...), v, v)
	}
}

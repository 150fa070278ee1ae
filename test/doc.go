// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package test contains helper functions to remove common boilerplate from
// tests.
//
// The Expect functions report a test error and carry on. The Demand
// functions stop the test. Success and failure are judged by type: a bool
// succeeds when true, an error succeeds when nil. A nil value is a success.
//
// Writer implements io.Writer and is used to capture output for
// comparison.
package test

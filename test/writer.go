// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package test

// Writer captures output for comparison with expected strings.
type Writer struct {
	buffer []byte
}

func (w *Writer) Write(p []byte) (n int, err error) {
	w.buffer = append(w.buffer, p...)
	return len(p), nil
}

// Clear empties the buffer.
func (w *Writer) Clear() {
	w.buffer = w.buffer[:0]
}

// Compare buffered output with s.
func (w *Writer) Compare(s string) bool {
	return s == string(w.buffer)
}

func (w *Writer) String() string {
	return string(w.buffer)
}

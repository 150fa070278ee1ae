// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package logger is the central log for the program. There is only ever one
// log and it is bounded; once full the oldest entries are discarded.
// Identical consecutive entries are folded into one entry with a repeat
// count.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// maximum number of entries kept by the central log
const maxEntries = 256

// Entry is a single line in the log.
type Entry struct {
	Tag      string
	Detail   string
	repeated int
}

func (e Entry) String() string {
	if e.repeated > 0 {
		return fmt.Sprintf("%s: %s (repeat x%d)\n", e.Tag, e.Detail, e.repeated+1)
	}
	return fmt.Sprintf("%s: %s\n", e.Tag, e.Detail)
}

type central struct {
	crit    sync.Mutex
	entries []Entry
	echo    io.Writer
}

var log = &central{
	entries: make([]Entry, 0, maxEntries),
}

func (l *central) add(tag, detail string) {
	l.crit.Lock()
	defer l.crit.Unlock()

	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	if n := len(l.entries); n > 0 && l.entries[n-1].Tag == tag && l.entries[n-1].Detail == detail {
		l.entries[n-1].repeated++
	} else {
		l.entries = append(l.entries, Entry{Tag: tag, Detail: detail})
		if len(l.entries) > maxEntries {
			l.entries = l.entries[len(l.entries)-maxEntries:]
		}
	}

	if l.echo != nil {
		io.WriteString(l.echo, l.entries[len(l.entries)-1].String())
	}
}

// Log adds an entry to the central log.
func Log(tag, detail string) {
	log.add(tag, detail)
}

// Logf adds a formatted entry to the central log.
func Logf(tag, detail string, args ...interface{}) {
	log.add(tag, fmt.Sprintf(detail, args...))
}

// Clear removes all entries.
func Clear() {
	log.crit.Lock()
	defer log.crit.Unlock()
	log.entries = log.entries[:0]
}

// Write every entry to output.
func Write(output io.Writer) {
	log.crit.Lock()
	defer log.crit.Unlock()
	for _, e := range log.entries {
		io.WriteString(output, e.String())
	}
}

// Tail writes the last number entries to output.
func Tail(output io.Writer, number int) {
	log.crit.Lock()
	defer log.crit.Unlock()
	if number > len(log.entries) {
		number = len(log.entries)
	}
	if number <= 0 {
		return
	}
	for _, e := range log.entries[len(log.entries)-number:] {
		io.WriteString(output, e.String())
	}
}

// Recent returns a copy of the last number entries.
func Recent(number int) []Entry {
	log.crit.Lock()
	defer log.crit.Unlock()
	if number > len(log.entries) {
		number = len(log.entries)
	}
	if number < 0 {
		number = 0
	}
	c := make([]Entry, number)
	copy(c, log.entries[len(log.entries)-number:])
	return c
}

// SetEcho prints new entries to output as they are added. A nil output
// turns echoing off.
func SetEcho(output io.Writer) {
	log.crit.Lock()
	defer log.crit.Unlock()
	log.echo = output
}

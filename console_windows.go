//go:build windows

// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

type ConsoleState struct {
	modeStdin uint32
}

func SetRawConsole() (*ConsoleState, error) {
	var stIn uint32

	stdin := windows.Handle(os.Stdin.Fd())
	if err := windows.GetConsoleMode(stdin, &stIn); err != nil {
		return nil, err
	}
	raw := stIn &^ (windows.ENABLE_ECHO_INPUT | windows.ENABLE_PROCESSED_INPUT | windows.ENABLE_LINE_INPUT)
	raw |= windows.ENABLE_VIRTUAL_TERMINAL_INPUT
	if err := windows.SetConsoleMode(stdin, raw); err != nil {
		return nil, err
	}
	return &ConsoleState{stIn}, nil
}

func RestoreConsole(st *ConsoleState) error {
	return windows.SetConsoleMode(windows.Handle(os.Stdin.Fd()), st.modeStdin)
}

func ConsoleRead(buf []byte) (count int, err error) {
	return os.Stdin.Read(buf)
}

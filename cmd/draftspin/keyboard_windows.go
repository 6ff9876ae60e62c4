//go:build windows
// +build windows

package main

import (
	"os"

	"github.com/draftspin/draftspin/internal/logger"
)

// listenForKeyboard listens for keyboard input on Windows.
// Simple line-based reading; terminal manipulation is more complex there.
func listenForKeyboard(gameURL string, appLog *logger.SlogLogger) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			continue
		}
		handleKeyPress(buf[0], gameURL, appLog, nil)
	}
}

//go:build darwin
// +build darwin

package main

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/draftspin/draftspin/internal/logger"
)

// listenForKeyboard listens for keyboard input and performs actions
func listenForKeyboard(gameURL string, appLog *logger.SlogLogger) {
	// Get the current terminal state
	fd := int(os.Stdin.Fd())
	oldState, err := unix.IoctlGetTermios(fd, unix.TIOCGETA)
	if err != nil {
		// Can't get terminal state, silently return
		return
	}

	// Disable canonical mode (line buffering) and echo so single
	// characters are read without Enter
	newState := *oldState
	newState.Lflag &^= unix.ICANON | unix.ECHO
	newState.Cc[unix.VMIN] = 1
	newState.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TIOCSETA, &newState); err != nil {
		return
	}

	restore := func() {
		unix.IoctlSetTermios(fd, unix.TIOCSETA, oldState)
	}
	defer restore()

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			continue
		}
		handleKeyPress(buf[0], gameURL, appLog, restore)
	}
}

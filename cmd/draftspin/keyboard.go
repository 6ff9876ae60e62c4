package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/draftspin/draftspin/internal/browser"
	"github.com/draftspin/draftspin/internal/logger"
)

// handleKeyPress dispatches one keyboard shortcut. restore puts the
// terminal back before the process exits.
func handleKeyPress(key byte, gameURL string, appLog *logger.SlogLogger, restore func()) {
	switch strings.ToLower(string(key)) {
	case "g":
		fmt.Printf("%sOpening game page in browser...%s\n", cyan, reset)
		if err := browser.Open(gameURL); err != nil {
			fmt.Printf("%sError opening browser: %v%s\n", red, err, reset)
		}
	case "h":
		if appLog.IsHTTPLoggingEnabled() {
			appLog.DisableHTTPLogging()
			fmt.Printf("%sHTTP logging disabled%s\n", yellow, reset)
		} else {
			appLog.EnableHTTPLogging()
			fmt.Printf("%sHTTP logging enabled%s\n", green, reset)
		}
	case "l":
		cycleLogLevel(appLog)
	case "q", "\x03": // q or Ctrl+C
		fmt.Printf("%sShutting down server...%s\n", yellow, reset)
		if restore != nil {
			restore()
		}
		os.Exit(0)
	case "?":
		printKeyboardHelp()
	}
}

package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/draftspin/draftspin/internal/app"
	"github.com/draftspin/draftspin/internal/cache"
	"github.com/draftspin/draftspin/internal/logger"
	"github.com/draftspin/draftspin/pkg/sportsfeed"
	"github.com/draftspin/draftspin/web"
)

// ANSI escape codes
const (
	clearLine = "\033[2K"
	moveUp    = "\033[%dA"
	reset     = "\033[0m"
	yellow    = "\033[33m"
	red       = "\033[31m"
	green     = "\033[32m"
	cyan      = "\033[36m"
	orange    = "\033[38;5;208m"
	bold      = "\033[1m"
)

var (
	version = "dev"
)

// defaultSeason is the NBA season the roster endpoint is queried for
const defaultSeason = "2025-26"

// showStartupAnimation displays the DraftSpin logo then an animated reel
func showStartupAnimation(skipReel bool) {
	width := 58
	border := ""
	for i := 0; i < width; i++ {
		border += "═"
	}

	logo := []string{
		`    ____             __ _   _____       _          `,
		`   |  _ \ _ __ __ _ / _| |_/ ____| _ __ (_)_ __      `,
		`   | | | | '__/ _' | |_| __\___ \ | '_ \| | '_ \     `,
		`   | |_| | | | (_| |  _| |_ ___) || |_) | | | | |    `,
		`   |____/|_|  \__,_|_|  \__|____/ | .__/|_|_| |_|    `,
		`                                  |_|                `,
	}

	fmt.Printf("\n  %s╔%s╗%s\n", cyan, border, reset)
	for _, line := range logo {
		for len(line) < width {
			line += " "
		}
		fmt.Printf("  %s║%s%s%s║%s\n", cyan, orange, line[:width], cyan, reset)
	}
	fmt.Printf("  %s╚%s╝%s\n", cyan, border, reset)

	if skipReel {
		fmt.Print("\n")
		return
	}

	// Spin a little reel of team names, slowing down as it "stops"
	reel := []string{
		"HAWKS", "CELTICS", "BULLS", "LAKERS", "KNICKS",
		"SPURS", "SUNS", "HEAT", "BUCKS", "WARRIORS",
	}
	rand.Shuffle(len(reel), func(i, j int) { reel[i], reel[j] = reel[j], reel[i] })

	for i := 0; i < 15; i++ {
		name := reel[i%len(reel)]
		pad := (width - len(name)) / 2
		fmt.Printf("%s  %s>%s%*s%s%*s%s<%s\r",
			clearLine, orange, bold, pad+len(name), name, reset, width-pad-len(name), "", orange, reset)
		delay := 40 + i*12
		time.Sleep(time.Duration(delay) * time.Millisecond)
	}
	fmt.Print("\n\n")
}

// cycleLogLevel cycles through debug -> info -> warn -> error
func cycleLogLevel(appLog *logger.SlogLogger) {
	var next string
	switch appLog.GetLevel().String() {
	case "DEBUG":
		next = "info"
	case "INFO":
		next = "warn"
	case "WARN":
		next = "error"
	default:
		next = "debug"
	}

	appLog.SetLevel(logger.ParseLevel(next))
	fmt.Printf("%sLog level: %s%s%s\n", green, yellow, next, reset)
}

// printKeyboardHelp displays all available keyboard shortcuts
func printKeyboardHelp() {
	fmt.Printf("\n%s%s  Keyboard Shortcuts:%s\n", bold, green, reset)
	fmt.Printf("    %sg%s      - Open game page in browser\n", cyan, reset)
	fmt.Printf("    %sh%s      - Toggle HTTP request logging\n", cyan, reset)
	fmt.Printf("    %sl%s      - Cycle log level (debug → info → warn → error)\n", cyan, reset)
	fmt.Printf("    %sq%s      - Quit server\n", cyan, reset)
	fmt.Printf("    %s?%s      - Show this help\n\n", cyan, reset)
}

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	cacheDB := flag.String("cachedb", "", "SQLite feed cache path (in-memory cache if not set)")
	cacheTTL := flag.Duration("cachettl", sportsfeed.DefaultTTL, "Feed cache TTL")
	season := flag.String("season", defaultSeason, "NBA season for roster lookups (e.g. 2025-26)")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	noAnimate := flag.Bool("noanimate", false, "Show logo only, skip reel animation")
	noKeyboard := flag.Bool("nokeyboard", false, "Disable keyboard shortcuts")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `DraftSpin - Spin-to-Draft Fantasy Showdown

Usage:
  draftspin [options]

Options:
  -port int       HTTP server port (default 8080)
  -cachedb str    SQLite feed cache path (in-memory cache if not set)
  -cachettl dur   Feed cache TTL (default 24h)
  -season str     NBA season for roster lookups (default "2025-26")
  -loglevel str   Log level: debug, info, warn, error (default "info")
  -noanimate      Show logo only, skip reel animation
  -nokeyboard     Disable keyboard shortcuts
  -version        Show version and exit
  -help           Show this help message

Keyboard Shortcuts (when enabled):
  g               Open game page in browser
  h               Toggle HTTP request logging
  l               Cycle log level (debug → info → warn → error)
  q               Quit server
  ?               Show keyboard help

Examples:
  draftspin                          # Run on port 8080, in-memory cache
  draftspin -port 9090               # Run on port 9090
  draftspin -cachedb feeds.db        # Keep feed cache across restarts
  draftspin -season 2024-25          # Query last season's NBA rosters

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("draftspin %s\n", version)
		os.Exit(0)
	}

	showStartupAnimation(*noAnimate)

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	// Feed cache: optional sqlite so rosters survive restarts
	var store cache.Store
	if *cacheDB != "" {
		sqliteStore, err := cache.NewSQLiteStore(*cacheDB)
		if err != nil {
			log.Fatal("Failed to open feed cache:", err)
		}
		defer sqliteStore.Close()
		store = sqliteStore
	} else {
		store = cache.NewMemoryStore(0)
	}

	// Live feeds for NBA and the Premier League, synthetic data elsewhere
	router := sportsfeed.NewRouter(sportsfeed.NewSyntheticClient())
	router.Register("nba", sportsfeed.NewNBAClient(*season, appLog))
	router.Register("epl", sportsfeed.NewFPLClient(appLog))
	feed := sportsfeed.NewCachedClient(router, store, *cacheTTL, appLog)

	a, err := app.New(appLog, feed, web.TemplatesFS(), web.StaticFS(), time.Now().UnixNano())
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	addr := fmt.Sprintf(":%d", *port)

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Run(addr)
	}()

	// Wait a moment for server to start
	time.Sleep(100 * time.Millisecond)

	gameURL := fmt.Sprintf("http://localhost:%d/", *port)

	if !*noKeyboard {
		printKeyboardHelp()
		go listenForKeyboard(gameURL, appLog)
	} else {
		fmt.Printf("\n%sKeyboard shortcuts disabled (use -nokeyboard=false to enable)%s\n\n", yellow, reset)
	}

	// Wait for server error or signal
	if err := <-serverErr; err != nil {
		log.Fatal(err)
	}
}

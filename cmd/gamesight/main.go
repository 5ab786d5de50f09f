package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"gamesight/internal/agent"
	"gamesight/internal/config"
	"gamesight/internal/history"
	"gamesight/internal/ipc"
	"gamesight/internal/proxy"
	"gamesight/internal/screen"
)

const openrouterBaseURL = "https://openrouter.ai/api/v1"

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	proxyAddr := cli.StringP("proxy", "p", "", "SOCKS proxy address (empty = direct)")
	logLevel := cli.StringP("log", "l", "warn", "Log level")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	godotenv.Load(*envFile)
	cfg := config.Load()

	if cfg.APIKey == "" {
		log.Error("OPENROUTER_API_KEY not set")
		fmt.Fprintln(os.Stderr, "Please create a .env file with your API key.")
		os.Exit(1)
	}

	log.Debug("Loaded API key")

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(openrouterBaseURL),
	}

	if *proxyAddr != "" {
		httpClient, err := proxy.NewSocksClient(*proxyAddr)
		if err != nil {
			log.Error("Failed to dial socks proxy", "proxy", *proxyAddr, "err", err)
			os.Exit(1)
		}
		opts = append(opts, option.WithHTTPClient(httpClient))
		log.Debug("Loaded proxy")
	}

	client := openai.NewClient(opts...)

	app := &app{
		cfg:        cfg,
		bot:        agent.New(client, cfg.Model, screen.NewCapturer(cfg.ScreenshotDir)),
		ttsEnabled: cfg.EnableTTS,
		sessionID:  time.Now().Format("20060102_150405"),
		triggers:   make(chan struct{}, 1),
	}

	if store, err := history.Open(cfg.HistoryPath); err != nil {
		log.Warn("History disabled", "path", cfg.HistoryPath, "err", err)
	} else {
		app.store = store
		defer store.Close()
	}

	app.initSpeech()
	defer app.closeSpeech()

	if err := ipc.StartServer(func(msg ipc.ControlMessage) {
		switch msg.Cmd {
		case "trigger":
			select {
			case app.triggers <- struct{}{}:
			default:
				// a trigger is already pending; drop this one
			}
		default:
			log.Warn("Unknown command", "cmd", msg.Cmd)
		}
	}); err != nil {
		log.Warn("External trigger disabled", "err", err)
	}

	app.banner()
	app.run(readLines())
}

// readLines feeds typed input to the main loop so it can also react to
// external triggers while waiting at the prompt.
func readLines() <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	return lines
}

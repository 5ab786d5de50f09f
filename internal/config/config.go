// Package config reads the assistant's environment-variable surface.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	APIKey string // OPENROUTER_API_KEY, required
	Model  string

	EnableTTS bool
	EnableSTT bool

	PTTMode    string // keyboard | xbox | timer
	PTTKey     string
	XboxButton string

	STTLanguage  string
	GoogleKey    string
	WhisperModel string // path to a ggml model; enables the local backend

	TTSVoice   string
	DuckOthers bool

	ScreenshotDir string
	AudioInDir    string
	AudioOutDir   string
	HistoryPath   string

	RecordWindow time.Duration // fixed capture window for the timer binding
	MaxRecord    time.Duration // hard cap on any single capture
}

func Load() *Config {
	return &Config{
		APIKey: os.Getenv("OPENROUTER_API_KEY"),
		Model:  getEnv("MODEL", "google/gemini-2.0-flash-001"),

		EnableTTS: getBool("ENABLE_TTS", true),
		EnableSTT: getBool("ENABLE_STT", false),

		PTTMode:    strings.ToLower(getEnv("PTT_MODE", "keyboard")),
		PTTKey:     strings.ToLower(getEnv("PTT_KEY", "m")),
		XboxButton: getEnv("XBOX_BUTTON", "a"),

		STTLanguage:  getEnv("STT_LANGUAGE", "pt-BR"),
		GoogleKey:    os.Getenv("GOOGLE_SPEECH_KEY"),
		WhisperModel: os.Getenv("WHISPER_MODEL"),

		TTSVoice:   getEnv("TTS_VOICE", "pt-BR-FranciscaNeural"),
		DuckOthers: getBool("DUCK_OTHERS", false),

		ScreenshotDir: getEnv("SCREENSHOT_DIR", "screenshots"),
		AudioInDir:    getEnv("AUDIO_IN_DIR", "audio_input"),
		AudioOutDir:   getEnv("AUDIO_OUT_DIR", "audio_output"),
		HistoryPath:   getEnv("HISTORY_PATH", "history/sessions.bolt"),

		RecordWindow: getSeconds("RECORD_SECONDS", 5),
		MaxRecord:    getSeconds("MAX_RECORD_SECONDS", 30),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	return strings.ToLower(value) == "true"
}

func getSeconds(key string, fallback int) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}

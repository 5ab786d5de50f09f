package tts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const voicesEndpoint = "https://speech.platform.bing.com/consumer/speech/synthesize/readaloud/voices/list"

type Voice struct {
	Name         string `json:"Name"`
	ShortName    string `json:"ShortName"`
	Gender       string `json:"Gender"`
	Locale       string `json:"Locale"`
	FriendlyName string `json:"FriendlyName"`
}

// ListVoices fetches the service's voice catalogue, filtered by locale prefix
// ("pt-BR", "en", ...). Empty prefix returns everything.
func ListVoices(ctx context.Context, localePrefix string) ([]Voice, error) {
	url := fmt.Sprintf("%s?trustedclienttoken=%s", voicesEndpoint, trustedClientToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list voices: %s", resp.Status)
	}

	var all []Voice
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		return nil, fmt.Errorf("decode voices: %w", err)
	}

	return filterVoices(all, localePrefix), nil
}

func filterVoices(all []Voice, localePrefix string) []Voice {
	if localePrefix == "" {
		return all
	}

	var out []Voice
	for _, v := range all {
		if strings.HasPrefix(v.Locale, localePrefix) {
			out = append(out, v)
		}
	}
	return out
}

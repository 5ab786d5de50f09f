// Package tts synthesizes speech through the Microsoft Edge read-aloud
// service and plays the result locally.
package tts

import (
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	trustedClientToken = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"
	wssEndpoint        = "wss://speech.platform.bing.com/consumer/speech/synthesize/readaloud/edge/v1"
	outputFormat       = "audio-24khz-48kbitrate-mono-mp3"

	// DefaultVoice is a natural Brazilian Portuguese female voice.
	DefaultVoice = "pt-BR-FranciscaNeural"
)

// Synthesizer converts reply text to mp3 files under Dir.
type Synthesizer struct {
	Voice string
	Dir   string
}

func NewSynthesizer(voice, dir string) *Synthesizer {
	if voice == "" {
		voice = DefaultVoice
	}
	if dir == "" {
		dir = "audio_output"
	}
	return &Synthesizer{Voice: voice, Dir: dir}
}

// Synthesize speaks text through the service and returns the path of the
// generated mp3. The file is a temp-named artifact; nothing cleans it up.
func (s *Synthesizer) Synthesize(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty text")
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}

	audio, err := s.stream(text)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp(s.Dir, "speech_*.mp3")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(audio); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	return filepath.Join(s.Dir, filepath.Base(f.Name())), nil
}

func (s *Synthesizer) stream(text string) ([]byte, error) {
	connID := strings.ReplaceAll(uuid.NewString(), "-", "")

	url := fmt.Sprintf("%s?TrustedClientToken=%s&ConnectionId=%s",
		wssEndpoint, trustedClientToken, connID)

	header := http.Header{}
	header.Set("Origin", "chrome-extension://jdiccldimpdaibmpdkjnbmckianbfold")

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		return nil, fmt.Errorf("dial speech service: %w", err)
	}
	defer conn.Close()

	ts := time.Now().UTC().Format("Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)")

	config := "X-Timestamp:" + ts + "\r\n" +
		"Content-Type:application/json; charset=utf-8\r\n" +
		"Path:speech.config\r\n\r\n" +
		`{"context":{"synthesis":{"audio":{"metadataoptions":{"sentenceBoundaryEnabled":"false","wordBoundaryEnabled":"false"},"outputFormat":"` + outputFormat + `"}}}}`

	if err := conn.WriteMessage(websocket.TextMessage, []byte(config)); err != nil {
		return nil, fmt.Errorf("send speech.config: %w", err)
	}

	ssml := "X-RequestId:" + connID + "\r\n" +
		"Content-Type:application/ssml+xml\r\n" +
		"X-Timestamp:" + ts + "\r\n" +
		"Path:ssml\r\n\r\n" +
		buildSSML(s.Voice, text)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(ssml)); err != nil {
		return nil, fmt.Errorf("send ssml: %w", err)
	}

	var audio []byte

	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("read speech frame: %w", err)
		}

		switch kind {
		case websocket.TextMessage:
			if strings.Contains(string(msg), "Path:turn.end") {
				if len(audio) == 0 {
					return nil, fmt.Errorf("service returned no audio")
				}
				return audio, nil
			}
		case websocket.BinaryMessage:
			payload, ok := audioPayload(msg)
			if ok {
				audio = append(audio, payload...)
			}
		}
	}
}

// audioPayload strips the service's binary framing: a 2-byte big-endian
// header length, the header itself, then mp3 data on Path:audio frames.
func audioPayload(frame []byte) ([]byte, bool) {
	if len(frame) < 2 {
		return nil, false
	}

	headerLen := int(binary.BigEndian.Uint16(frame[:2]))
	if len(frame) < 2+headerLen {
		return nil, false
	}

	header := string(frame[2 : 2+headerLen])
	if !strings.Contains(header, "Path:audio") {
		return nil, false
	}

	return frame[2+headerLen:], true
}

func buildSSML(voice, text string) string {
	var escaped strings.Builder
	xml.EscapeText(&escaped, []byte(text))

	return "<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='en-US'>" +
		"<voice name='" + voice + "'>" +
		"<prosody pitch='+0Hz' rate='+0%' volume='+0%'>" +
		escaped.String() +
		"</prosody></voice></speak>"
}

package tts

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func binaryFrame(header string, payload []byte) []byte {
	frame := make([]byte, 2, 2+len(header)+len(payload))
	binary.BigEndian.PutUint16(frame, uint16(len(header)))
	frame = append(frame, header...)
	return append(frame, payload...)
}

func TestAudioPayloadExtractsMP3Data(t *testing.T) {
	payload := []byte{0xff, 0xfb, 0x90, 0x00}
	frame := binaryFrame("X-RequestId:abc\r\nPath:audio\r\n", payload)

	got, ok := audioPayload(frame)
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestAudioPayloadIgnoresNonAudioFrames(t *testing.T) {
	frame := binaryFrame("Path:turn.start\r\n", []byte("x"))
	_, ok := audioPayload(frame)
	assert.False(t, ok)
}

func TestAudioPayloadRejectsTruncatedFrames(t *testing.T) {
	_, ok := audioPayload([]byte{0x00})
	assert.False(t, ok)

	// header length claims more bytes than present
	frame := []byte{0x00, 0xff, 'P'}
	_, ok = audioPayload(frame)
	assert.False(t, ok)
}

func TestBuildSSMLEscapesText(t *testing.T) {
	ssml := buildSSML("pt-BR-FranciscaNeural", "HP < 50% & falling")

	assert.Contains(t, ssml, "<voice name='pt-BR-FranciscaNeural'>")
	assert.Contains(t, ssml, "HP &lt; 50% &amp; falling")
	assert.NotContains(t, ssml, "< 50")
}

func TestFilterVoices(t *testing.T) {
	all := []Voice{
		{ShortName: "pt-BR-FranciscaNeural", Locale: "pt-BR"},
		{ShortName: "pt-PT-RaquelNeural", Locale: "pt-PT"},
		{ShortName: "en-US-AriaNeural", Locale: "en-US"},
	}

	ptBR := filterVoices(all, "pt-BR")
	require.Len(t, ptBR, 1)
	assert.Equal(t, "pt-BR-FranciscaNeural", ptBR[0].ShortName)

	pt := filterVoices(all, "pt")
	assert.Len(t, pt, 2)

	assert.Len(t, filterVoices(all, ""), 3)
}

func TestNewSynthesizerDefaults(t *testing.T) {
	s := NewSynthesizer("", "")
	assert.Equal(t, DefaultVoice, s.Voice)
	assert.Equal(t, "audio_output", s.Dir)
}

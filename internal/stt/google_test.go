package stt

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamesight/internal/audio"
)

func scan(s string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(s))
}

func TestParseGoogleBodyPicksFirstAlternative(t *testing.T) {
	body := `{"result":[]}
{"result":[{"alternative":[{"transcript":"analisa essa tela","confidence":0.93},{"transcript":"analise essa tela"}],"final":true}],"result_index":0}`

	text, err := parseGoogleBody(scan(body))
	require.NoError(t, err)
	assert.Equal(t, "analisa essa tela", text)
}

func TestParseGoogleBodyEmptyResultIsUnrecognized(t *testing.T) {
	_, err := parseGoogleBody(scan(`{"result":[]}`))
	assert.ErrorIs(t, err, ErrUnrecognized)

	_, err = parseGoogleBody(scan(""))
	assert.ErrorIs(t, err, ErrUnrecognized)
}

func TestParseGoogleBodySkipsGarbageLines(t *testing.T) {
	body := "not json\n" + `{"result":[{"alternative":[{"transcript":"  hello  "}]}]}`

	text, err := parseGoogleBody(scan(body))
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestGoogleTranscribeSendsRawPCM(t *testing.T) {
	var gotContentType, gotLang string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotLang = r.URL.Query().Get("lang")
		w.Write([]byte(`{"result":[{"alternative":[{"transcript":"ok"}],"final":true}]}`))
	}))
	defer srv.Close()

	g := NewGoogle("pt-BR", "test-key")
	g.Client = srv.Client()

	// point the request at the test server
	oldTransport := g.Client.Transport
	g.Client.Transport = rewriteHost(srv.URL, oldTransport)

	text, err := g.Transcribe(context.Background(), audio.Clip{Samples: []int16{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, "audio/l16; rate=16000;", gotContentType)
	assert.Equal(t, "pt-BR", gotLang)
}

type hostRewriter struct {
	target string
	next   http.RoundTripper
}

func rewriteHost(target string, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return hostRewriter{target: strings.TrimPrefix(target, "http://"), next: next}
}

func (h hostRewriter) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = h.target
	return h.next.RoundTrip(req)
}

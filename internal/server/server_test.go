package server

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/pdf417go/internal/config"
	"github.com/ericlevine/pdf417go/internal/scan"
	"github.com/ericlevine/pdf417go/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.DefaultConfig()
	srv := httptest.NewServer(New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil))).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func symbolPNG(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testutil.Pad(testutil.Symbol(t, text, 2, 3), 20)))
	return buf.Bytes()
}

func decodeRecord(t *testing.T, resp *http.Response) scan.Record {
	t.Helper()
	defer resp.Body.Close()
	var r scan.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&r))
	return r
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var h HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&h))
	assert.Equal(t, "healthy", h.Status)
}

func TestDecodeRawBody(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/decode", "image/png", bytes.NewReader(symbolPNG(t, "raw body")))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "raw body", decodeRecord(t, resp).Text)
}

func TestDecodeMultipart(t *testing.T) {
	srv := newTestServer(t)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "label.png")
	require.NoError(t, err)
	_, err = part.Write(symbolPNG(t, "multipart"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/decode", mw.FormDataContentType(), &body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	r := decodeRecord(t, resp)
	assert.Equal(t, "multipart", r.Text)
	assert.Equal(t, "label.png", r.Source)
}

func TestDecodeRejects(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/decode", "image/png", strings.NewReader("not an image"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/decode")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	var blank bytes.Buffer
	require.NoError(t, png.Encode(&blank, imaging.New(120, 80, color.White)))
	resp, err = http.Post(srv.URL+"/decode", "image/png", &blank)
	require.NoError(t, err)
	r := decodeRecord(t, resp)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.NotEmpty(t, r.Error)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/decode", "image/png", bytes.NewReader(symbolPNG(t, "counted")))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `pdf417scan_decodes_total{outcome="ok",source="image"}`)
}

func TestWebSocketSession(t *testing.T) {
	srv := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, symbolPNG(t, "streamed")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))

	var first, second WebSocketResponse
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))

	assert.Equal(t, "completed", first.Status)
	require.NotNil(t, first.Result)
	assert.Equal(t, "streamed", first.Result.Text)
	assert.Equal(t, 1, second.Seq)
	assert.Equal(t, "error", second.Status)
}

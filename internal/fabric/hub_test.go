package fabric

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hush/internal/auth"
	"hush/pkg/logger"
)

type neverRevoked struct{}

func (neverRevoked) IsTokenRevoked(ctx context.Context, tokenID uuid.UUID) (bool, error) {
	return false, nil
}

func newTestServer(t *testing.T, hub *Hub, issuer *auth.Issuer) *httptest.Server {
	t.Helper()
	log, err := logger.NewLogger(logger.LoggerMode{Level: "none"})
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Serve(w, r, hub, issuer, neverRevoked{}, log)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_AuthenticatesAndFansOutNotify(t *testing.T) {
	log, err := logger.NewLogger(logger.LoggerMode{Level: "none"})
	require.NoError(t, err)
	hub := NewHub(log)
	issuer := auth.NewIssuer("test-secret", time.Hour)
	srv := newTestServer(t, hub, issuer)

	accountID := uuid.New()
	token, _, err := issuer.Mint(accountID)
	require.NoError(t, err)

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "auth", "token": token}))

	var ack map[string]string
	require.NoError(t, conn.ReadJSON(&ack))
	assert.Equal(t, "auth_ok", ack["type"])

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.sockets[accountID]) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Notify(accountID, map[string]string{"type": "message_available"})

	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "message_available", got["type"])

	conn.Close()

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.sockets[accountID]
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestHub_RejectsNonAuthFirstFrame(t *testing.T) {
	log, err := logger.NewLogger(logger.LoggerMode{Level: "none"})
	require.NoError(t, err)
	hub := NewHub(log)
	issuer := auth.NewIssuer("test-secret", time.Hour)
	srv := newTestServer(t, hub, issuer)

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))

	_, _, err = conn.ReadMessage()
	closeErr, ok := err.(*websocket.CloseError)
	require.True(t, ok)
	assert.Equal(t, CloseAuthRequired, closeErr.Code)
}

func TestHub_RejectsInvalidToken(t *testing.T) {
	log, err := logger.NewLogger(logger.LoggerMode{Level: "none"})
	require.NoError(t, err)
	hub := NewHub(log)
	issuer := auth.NewIssuer("test-secret", time.Hour)
	srv := newTestServer(t, hub, issuer)

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "auth", "token": "garbage"}))

	_, _, err = conn.ReadMessage()
	closeErr, ok := err.(*websocket.CloseError)
	require.True(t, ok)
	assert.Equal(t, CloseInvalidToken, closeErr.Code)
}

func TestHub_NotifyIgnoresUnregisteredAccount(t *testing.T) {
	log, err := logger.NewLogger(logger.LoggerMode{Level: "none"})
	require.NoError(t, err)
	hub := NewHub(log)

	assert.NotPanics(t, func() {
		hub.Notify(uuid.New(), map[string]string{"type": "message_available"})
	})
}

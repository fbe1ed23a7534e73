package fabric

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"hush/internal/auth"
	"hush/pkg/logger"
)

const (
	// CloseAuthRequired is sent when the first frame is not an auth frame
	// (§4.6: Opened -> Closed(4001) on non-auth first frame).
	CloseAuthRequired = 4001
	// CloseInvalidToken is sent when the first frame is an auth frame
	// carrying a token that fails verification (§4.6: Opened -> Closed(4002)).
	CloseInvalidToken = 4002
)

type socketState int

const (
	stateOpened socketState = iota
	stateAuthenticated
	stateClosed
)

type clientFrame struct {
	Type  string `json:"type"`
	Token string `json:"token,omitempty"`
}

var upgrader = websocket.Upgrader{
	// Origin checking happens at the CORS layer in transport/httpapi; the
	// upgrader itself stays permissive so it never duplicates that policy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Socket wraps one upgraded connection and its §4.6 state machine.
type Socket struct {
	conn  *websocket.Conn
	hub   *Hub
	log   *logger.Logger
	state socketState

	writeMu sync.Mutex
}

// Serve upgrades r into a websocket connection and runs its lifecycle to
// completion, blocking until the socket closes. issuer/revocation validate
// the mandatory first auth frame.
func Serve(w http.ResponseWriter, r *http.Request, hub *Hub, issuer *auth.Issuer, revocation auth.RevocationChecker, log *logger.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	sock := &Socket{conn: conn, hub: hub, log: log, state: stateOpened}
	sock.run(r.Context(), issuer, revocation)
}

func (s *Socket) run(ctx context.Context, issuer *auth.Issuer, revocation auth.RevocationChecker) {
	defer s.conn.Close()

	var accountID uuid.UUID
	authenticated := false

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			break
		}

		var frame clientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			// Malformed frames are silently dropped (§4.6) — logging them
			// would itself be a metadata side channel.
			continue
		}

		switch s.state {
		case stateOpened:
			if frame.Type != "auth" {
				s.closeWithCode(CloseAuthRequired)
				return
			}
			claims, err := issuer.VerifyAndCheckRevocation(ctx, frame.Token, revocation)
			if err != nil {
				s.closeWithCode(CloseInvalidToken)
				return
			}
			accountID = claims.AccountID
			authenticated = true
			s.state = stateAuthenticated
			s.hub.register(accountID, s)
			defer s.hub.deregister(accountID, s)
			_ = s.writeJSON(map[string]string{"type": "auth_ok"})

		case stateAuthenticated:
			switch frame.Type {
			case "ping":
				_ = s.writeJSON(map[string]string{"type": "pong"})
			default:
				// any other frame type is dropped (§4.6)
			}
		}
	}

	_ = authenticated
}

func (s *Socket) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.writeRaw(data)
}

// writeRaw is the fanout entry point Hub.Notify calls; it never carries
// ciphertext, only metadata envelopes (§4.6).
func (s *Socket) writeRaw(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *Socket) closeWithCode(code int) {
	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(code, "")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, deadline)
}

// Package fabric is the Notification Fabric (sub-C5, §4.6): a per-account
// set of persistent bidirectional sockets bearing metadata-only envelopes.
// The registry itself is the re-architecture target named in §9 ("global
// socket registry map" -> "per-account set guarded by an appropriate
// synchronization primitive"); this is the threaded/goroutine case, so a
// sync.RWMutex-guarded map is the right primitive, not a channel actor.
package fabric

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"hush/pkg/logger"
)

type Hub struct {
	mu      sync.RWMutex
	sockets map[uuid.UUID]map[*Socket]struct{}
	logger  *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		sockets: make(map[uuid.UUID]map[*Socket]struct{}),
		logger:  log,
	}
}

// register adds sock to accountID's set. Called only from the socket's own
// goroutine once it reaches Authenticated.
func (h *Hub) register(accountID uuid.UUID, sock *Socket) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.sockets[accountID]
	if !ok {
		set = make(map[*Socket]struct{})
		h.sockets[accountID] = set
	}
	set[sock] = struct{}{}
}

// deregister removes sock from accountID's set, deleting the set entirely
// once it empties. Safe to call more than once for the same socket and
// safe to call from a deferred cleanup on every exit path, including a
// panic recovered further up the call stack.
func (h *Hub) deregister(accountID uuid.UUID, sock *Socket) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.sockets[accountID]
	if !ok {
		return
	}
	delete(set, sock)
	if len(set) == 0 {
		delete(h.sockets, accountID)
	}
}

// Notify serializes payload once and writes it to every socket currently
// registered for accountID. A write failure deregisters only the failing
// socket; missing or errored sockets are otherwise silently ignored
// (§4.5: "missing or errored sockets are ignored").
func (h *Hub) Notify(accountID uuid.UUID, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("fabric: marshal notification failed", "err", err)
		return
	}

	h.mu.RLock()
	set := h.sockets[accountID]
	targets := make([]*Socket, 0, len(set))
	for sock := range set {
		targets = append(targets, sock)
	}
	h.mu.RUnlock()

	for _, sock := range targets {
		if err := sock.writeRaw(data); err != nil {
			h.deregister(accountID, sock)
		}
	}
}

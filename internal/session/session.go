package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/muhammedshamilmt/snapgro-backend/internal/cart"
	"github.com/muhammedshamilmt/snapgro-backend/internal/screenflow"
)

// Session is one shopper's storefront: their navigation state plus their
// cart. All access goes through the session mutex; the manager never
// touches state without holding it.
type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	state    screenflow.State
	cart     *cart.Aggregator
	userID   *uuid.UUID
	lastSeen time.Time

	splashTimer *time.Timer
}

func newSession(id uuid.UUID, now time.Time) *Session {
	return &Session{
		ID:       id,
		state:    screenflow.Initial(),
		cart:     cart.NewAggregator(),
		lastSeen: now,
	}
}

func (s *Session) touch(now time.Time) {
	s.lastSeen = now
}

func (s *Session) stopSplashTimer() {
	if s.splashTimer != nil {
		s.splashTimer.Stop()
		s.splashTimer = nil
	}
}

// CartView is the cart as the client renders it.
type CartView struct {
	Lines     []cart.Line `json:"lines"`
	ItemCount int         `json:"item_count"`
	Subtotal  string      `json:"subtotal"`
}

// SessionDTO is the wire shape of one session snapshot.
type SessionDTO struct {
	ID       uuid.UUID        `json:"id"`
	State    screenflow.State `json:"state"`
	Cart     CartView         `json:"cart"`
	UserID   *uuid.UUID       `json:"user_id,omitempty"`
	LastSeen time.Time        `json:"last_seen"`
}

// snapshot builds the DTO. Caller holds the session mutex.
func (s *Session) snapshot() *SessionDTO {
	return &SessionDTO{
		ID:    s.ID,
		State: s.state,
		Cart: CartView{
			Lines:     s.cart.Lines(),
			ItemCount: s.cart.ItemCount(),
			Subtotal:  s.cart.Subtotal().StringFixed(2),
		},
		UserID:   s.userID,
		LastSeen: s.lastSeen,
	}
}

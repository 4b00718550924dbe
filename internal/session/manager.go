package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/muhammedshamilmt/snapgro-backend/internal/cart"
	"github.com/muhammedshamilmt/snapgro-backend/internal/catalog"
	"github.com/muhammedshamilmt/snapgro-backend/internal/orders"
	"github.com/muhammedshamilmt/snapgro-backend/internal/screenflow"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/config"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/enums"
	pkgerrors "github.com/muhammedshamilmt/snapgro-backend/pkg/errors"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/logger"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/metrics"
)

type orderPlacer interface {
	Place(ctx context.Context, input orders.CreateOrderInput) (*orders.OrderDTO, error)
	Quote(subtotal decimal.Decimal, itemCount int) orders.QuoteDTO
}

// EventInput is one reported user action. ProductID resolves against the
// catalog; Product carries an inline payload for surfaces the catalog
// does not index. UserID only matters for auth_success.
type EventInput struct {
	Name    enums.UIEvent
	Target  enums.Screen
	Product *cart.ProductPayload

	ProductID string
	OrderID   string
	UserID    *uuid.UUID
}

// AddItemInput identifies the product joining the cart, either by
// catalog id or by inline payload.
type AddItemInput struct {
	ProductID string
	Product   *cart.ProductPayload
}

// CheckoutResult pairs the placed order with the session it came from.
type CheckoutResult struct {
	Order   *orders.OrderDTO `json:"order"`
	Session *SessionDTO      `json:"session"`
}

// Manager owns every live storefront session. Sessions live in memory
// only; an idle sweeper reclaims the ones the client abandoned.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	cfg     config.SessionConfig
	catalog catalog.Service
	orders  orderPlacer
	metrics *metrics.SessionMetrics
	logg    *logger.Logger
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// ManagerParams wires the manager's dependencies.
type ManagerParams struct {
	Config  config.SessionConfig
	Catalog catalog.Service
	Orders  orders.Service
	Metrics *metrics.SessionMetrics
	Logger  *logger.Logger
}

// NewManager validates params and builds an empty manager.
func NewManager(params ManagerParams) (*Manager, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("session manager requires a catalog service")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("session manager requires an order service")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("session manager requires a logger")
	}
	return &Manager{
		sessions: map[uuid.UUID]*Session{},
		cfg:      params.Config,
		catalog:  params.Catalog,
		orders:   params.Orders,
		metrics:  params.Metrics,
		logg:     params.Logger,
		now:      time.Now,
		stop:     make(chan struct{}),
	}, nil
}

// Create opens a fresh session on the splash screen. The splash screen
// advances to welcome on its own once the splash delay elapses, whether
// or not the client ever reports splash_done.
func (m *Manager) Create(ctx context.Context) *SessionDTO {
	id := uuid.New()
	sess := newSession(id, m.now())

	m.mu.Lock()
	m.sessions[id] = sess
	active := len(m.sessions)
	m.mu.Unlock()

	sess.mu.Lock()
	if m.cfg.SplashDelay > 0 {
		sess.splashTimer = time.AfterFunc(m.cfg.SplashDelay, func() {
			m.finishSplash(id)
		})
	}
	dto := sess.snapshot()
	sess.mu.Unlock()

	m.metrics.SetActiveSessions(active)
	m.logg.Info(m.logg.WithSessionID(ctx, id.String()), "session created")
	return dto
}

// Get returns the session snapshot.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*SessionDTO, error) {
	sess, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// Dispatch folds one user event into the session. Events the current
// screen does not accept leave the state untouched and are counted as
// rejected instead of failing the request.
func (m *Manager) Dispatch(ctx context.Context, id uuid.UUID, input EventInput) (*SessionDTO, error) {
	if !input.Name.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown event %q", input.Name))
	}

	sess, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	ctx = m.logg.WithSessionID(ctx, id.String())

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch(m.now())

	ev := screenflow.Event{Name: input.Name, Target: input.Target, OrderID: input.OrderID}

	switch input.Name {
	case enums.UIEventSelectProduct:
		product, err := m.resolveProduct(input)
		if err != nil {
			return nil, err
		}
		ev.Product = product

	case enums.UIEventAuthSuccess:
		if input.UserID == nil || *input.UserID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "auth_success requires a user id")
		}

	case enums.UIEventPaymentSuccess:
		if sess.userID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no signed-in user on this session")
		}
		result, err := m.payLocked(ctx, sess, *sess.userID)
		if err != nil {
			return nil, err
		}
		return result.Session, nil
	}

	before := sess.state
	sess.state = screenflow.Reduce(sess.state, ev)
	changed := stateChanged(before, sess.state)

	m.metrics.IncEvent(input.Name.String())
	if !changed && !isSelfTransition(before, ev) {
		m.metrics.IncRejected(input.Name.String())
	}

	switch input.Name {
	case enums.UIEventAuthSuccess:
		if changed {
			sess.userID = input.UserID
		}
	case enums.UIEventLogout:
		sess.userID = nil
		sess.cart.Clear()
	}

	return sess.snapshot(), nil
}

// AddItem merges a product into the session cart.
func (m *Manager) AddItem(ctx context.Context, id uuid.UUID, input AddItemInput) (*SessionDTO, error) {
	product, err := m.resolveProduct(EventInput{ProductID: input.ProductID, Product: input.Product})
	if err != nil {
		return nil, err
	}

	sess, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch(m.now())
	sess.cart.AddOrIncrement(*product)
	m.metrics.IncCartOp("add")
	return sess.snapshot(), nil
}

// AddRecipe adds every ingredient of the recipe to the cart in one step.
func (m *Manager) AddRecipe(ctx context.Context, id uuid.UUID, recipeID string) (*SessionDTO, error) {
	recipe, err := m.catalog.FindRecipe(recipeID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recipe not found")
	}

	sess, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch(m.now())
	for _, ingredient := range recipe.Ingredients {
		sess.cart.AddOrIncrement(ingredient)
	}
	m.metrics.IncCartOp("add_recipe")
	return sess.snapshot(), nil
}

// SetQuantity applies a signed delta to one cart line. Reaching zero
// removes the line.
func (m *Manager) SetQuantity(ctx context.Context, id uuid.UUID, productID string, delta int) (*SessionDTO, error) {
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	sess, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch(m.now())
	sess.cart.SetQuantity(productID, delta)
	m.metrics.IncCartOp("set_quantity")
	return sess.snapshot(), nil
}

// ClearCart empties the session cart.
func (m *Manager) ClearCart(ctx context.Context, id uuid.UUID) (*SessionDTO, error) {
	sess, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch(m.now())
	sess.cart.Clear()
	m.metrics.IncCartOp("clear")
	return sess.snapshot(), nil
}

// Quote prices the session's current cart with the checkout fees applied.
func (m *Manager) Quote(ctx context.Context, id uuid.UUID) (*orders.QuoteDTO, error) {
	sess, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	sess.touch(m.now())
	subtotal := sess.cart.Subtotal()
	itemCount := sess.cart.ItemCount()
	sess.mu.Unlock()

	quote := m.orders.Quote(subtotal, itemCount)
	return &quote, nil
}

// Pay places the order for the session's cart. The session must be on
// the payment screen; the success screen keeps the line images even
// though the cart is cleared.
func (m *Manager) Pay(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*CheckoutResult, error) {
	sess, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	ctx = m.logg.WithSessionID(ctx, id.String())

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch(m.now())
	return m.payLocked(ctx, sess, userID)
}

// payLocked runs the checkout against the held session. Caller holds the
// session mutex.
func (m *Manager) payLocked(ctx context.Context, sess *Session, userID uuid.UUID) (*CheckoutResult, error) {
	if sess.state.Current != enums.ScreenPayment {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "session is not at payment")
	}

	lines := sess.cart.Lines()
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	images := sess.cart.SnapshotImages()

	input := orders.CreateOrderInput{
		UserID:   userID,
		Subtotal: sess.cart.Subtotal(),
		Lines:    make([]orders.CreateOrderLine, 0, len(lines)),
	}
	for _, line := range lines {
		input.Lines = append(input.Lines, orders.CreateOrderLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			ImageRef:  line.ImageRef,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	order, err := m.orders.Place(ctx, input)
	if err != nil {
		return nil, err
	}

	sess.state = screenflow.Reduce(sess.state, screenflow.Event{
		Name:    enums.UIEventPaymentSuccess,
		OrderID: order.Number,
		Images:  images,
	})
	sess.cart.Clear()
	sess.userID = &userID

	m.metrics.IncEvent(enums.UIEventPaymentSuccess.String())
	m.metrics.IncCheckout()
	m.logg.Info(m.logg.WithField(ctx, "order_number", order.Number), "checkout completed")

	return &CheckoutResult{Order: order, Session: sess.snapshot()}, nil
}

// StartSweeper launches the idle reclaim loop.
func (m *Manager) StartSweeper() {
	if m.cfg.SweepInterval <= 0 {
		return
	}
	go m.sweepLoop()
}

// Close stops the sweeper. Live sessions are dropped with the process.
func (m *Manager) Close() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

func (m *Manager) sweepLoop() {
	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep drops sessions idle past the TTL and returns the number removed.
func (m *Manager) sweep() int {
	cutoff := m.now().Add(-m.cfg.IdleTTL)

	m.mu.Lock()
	var expired []*Session
	for id, sess := range m.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			expired = append(expired, sess)
			delete(m.sessions, id)
		}
	}
	active := len(m.sessions)
	m.mu.Unlock()

	for _, sess := range expired {
		sess.stopSplashTimer()
	}

	m.metrics.SetActiveSessions(active)
	if len(expired) > 0 {
		m.logg.Info(m.logg.WithField(context.Background(), "count", len(expired)), "swept idle sessions")
	}
	return len(expired)
}

// finishSplash advances the splash screen after the configured delay.
func (m *Manager) finishSplash(id uuid.UUID) {
	sess, err := m.lookup(id)
	if err != nil {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.splashTimer = nil
	if sess.state.Current != enums.ScreenSplash {
		return
	}
	sess.state = screenflow.Reduce(sess.state, screenflow.Event{Name: enums.UIEventSplashDone})
	m.metrics.IncEvent(enums.UIEventSplashDone.String())
}

func (m *Manager) lookup(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
	}
	return sess, nil
}

// resolveProduct prefers the catalog id when one is given and otherwise
// normalizes the inline payload.
func (m *Manager) resolveProduct(input EventInput) (*catalog.Product, error) {
	if input.ProductID != "" {
		product, err := m.catalog.FindByID(input.ProductID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return product, nil
	}
	if input.Product != nil {
		product := input.Product.Normalize()
		return &product, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "a product id or product payload is required")
}

// stateChanged reports whether the reducer touched anything visible.
// OrderItemImages only changes alongside the screen, so comparing the
// scalar fields is enough.
func stateChanged(before, after screenflow.State) bool {
	return before.Current != after.Current ||
		before.SelectedProduct != after.SelectedProduct ||
		before.CurrentOrderID != after.CurrentOrderID
}

// isSelfTransition reports whether the event legitimately keeps the
// current screen, so staying put is not a rejection.
func isSelfTransition(before screenflow.State, ev screenflow.Event) bool {
	switch ev.Name {
	case enums.UIEventNavigate, enums.UIEventTab:
		return ev.Target == before.Current
	}
	return false
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/muhammedshamilmt/snapgro-backend/internal/cart"
	"github.com/muhammedshamilmt/snapgro-backend/internal/catalog"
	"github.com/muhammedshamilmt/snapgro-backend/internal/orders"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/config"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/enums"
	pkgerrors "github.com/muhammedshamilmt/snapgro-backend/pkg/errors"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/logger"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/pagination"
)

type stubOrders struct {
	placed []orders.CreateOrderInput
	result *orders.OrderDTO
	err    error
}

func (s *stubOrders) Place(_ context.Context, input orders.CreateOrderInput) (*orders.OrderDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.placed = append(s.placed, input)
	if s.result != nil {
		return s.result, nil
	}
	return &orders.OrderDTO{
		ID:       uuid.New(),
		Number:   "20250817",
		Status:   enums.OrderStatusPlaced,
		Subtotal: input.Subtotal,
	}, nil
}

func (s *stubOrders) Quote(subtotal decimal.Decimal, itemCount int) orders.QuoteDTO {
	fees := orders.FeeSchedule{
		DeliveryFee: decimal.RequireFromString("2.99"),
		ServiceFee:  decimal.RequireFromString("1.50"),
		TaxRate:     decimal.RequireFromString("0.08"),
	}
	tax, total := fees.Totals(subtotal)
	return orders.QuoteDTO{
		Subtotal:    subtotal,
		DeliveryFee: fees.DeliveryFee,
		ServiceFee:  fees.ServiceFee,
		Tax:         tax,
		Total:       total,
		ItemCount:   itemCount,
	}
}

func (s *stubOrders) Track(context.Context, uuid.UUID, string) (*orders.OrderDTO, error) {
	return nil, errors.New("not implemented")
}

func (s *stubOrders) History(context.Context, uuid.UUID, pagination.Params) (*orders.OrderList, error) {
	return nil, errors.New("not implemented")
}

func newTestManager(t *testing.T) (*Manager, *stubOrders) {
	t.Helper()

	placer := &stubOrders{}
	mgr, err := NewManager(ManagerParams{
		Config: config.SessionConfig{
			IdleTTL:       time.Hour,
			SweepInterval: time.Minute,
		},
		Catalog: catalog.NewService(),
		Orders:  placer,
		Logger:  logger.New(logger.Options{ServiceName: "session-test", Level: zerolog.ErrorLevel, Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(mgr.Close)
	return mgr, placer
}

// driveTo pins the session's screen so tests can start mid-flow.
func driveTo(t *testing.T, mgr *Manager, id uuid.UUID, screen enums.Screen) {
	t.Helper()

	sess, err := mgr.lookup(id)
	if err != nil {
		t.Fatalf("lookup session: %v", err)
	}
	sess.mu.Lock()
	sess.state.Current = screen
	sess.mu.Unlock()
}

func TestCreateStartsAtSplash(t *testing.T) {
	mgr, _ := newTestManager(t)

	dto := mgr.Create(context.Background())
	if dto.State.Current != enums.ScreenSplash {
		t.Fatalf("expected splash, got %s", dto.State.Current)
	}
	if dto.State.CurrentOrderID == "" {
		t.Fatal("expected a seeded order id")
	}
	if dto.Cart.ItemCount != 0 || dto.Cart.Subtotal != "0.00" {
		t.Fatalf("expected empty cart, got %+v", dto.Cart)
	}

	got, err := mgr.Get(context.Background(), dto.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != dto.ID {
		t.Fatalf("expected session %s, got %s", dto.ID, got.ID)
	}
}

func TestGetUnknownSession(t *testing.T) {
	mgr, _ := newTestManager(t)

	_, err := mgr.Get(context.Background(), uuid.New())
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", code)
	}
}

func TestSplashAutoAdvance(t *testing.T) {
	mgr, _ := newTestManager(t)

	dto := mgr.Create(context.Background())
	mgr.finishSplash(dto.ID)

	got, err := mgr.Get(context.Background(), dto.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.State.Current != enums.ScreenWelcome {
		t.Fatalf("expected welcome after splash delay, got %s", got.State.Current)
	}

	// The timer only fires on the splash screen.
	driveTo(t, mgr, dto.ID, enums.ScreenHome)
	mgr.finishSplash(dto.ID)
	got, _ = mgr.Get(context.Background(), dto.ID)
	if got.State.Current != enums.ScreenHome {
		t.Fatalf("expected home to survive a late timer, got %s", got.State.Current)
	}
}

func TestDispatchOnboardingFlow(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	dto := mgr.Create(ctx)
	id := dto.ID

	steps := []struct {
		input EventInput
		want  enums.Screen
	}{
		{EventInput{Name: enums.UIEventSplashDone}, enums.ScreenWelcome},
		{EventInput{Name: enums.UIEventNext}, enums.ScreenOnboardingOne},
		{EventInput{Name: enums.UIEventNext}, enums.ScreenOnboardingTwo},
		{EventInput{Name: enums.UIEventBack}, enums.ScreenOnboardingOne},
		{EventInput{Name: enums.UIEventNext}, enums.ScreenOnboardingTwo},
		{EventInput{Name: enums.UIEventNext}, enums.ScreenOnboardingThree},
		{EventInput{Name: enums.UIEventNext}, enums.ScreenSecondWelcome},
		{EventInput{Name: enums.UIEventNavigate, Target: enums.ScreenLogin}, enums.ScreenLogin},
	}
	for i, step := range steps {
		got, err := mgr.Dispatch(ctx, id, step.input)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got.State.Current != step.want {
			t.Fatalf("step %d: expected %s, got %s", i, step.want, got.State.Current)
		}
	}
}

func TestDispatchIllegalEventIsNoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	dto := mgr.Create(ctx)
	driveTo(t, mgr, dto.ID, enums.ScreenHome)

	// Checkout is only reachable from the cart.
	got, err := mgr.Dispatch(ctx, dto.ID, EventInput{Name: enums.UIEventCheckout})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got.State.Current != enums.ScreenHome {
		t.Fatalf("expected home, got %s", got.State.Current)
	}
}

func TestDispatchRejectsUnknownEventName(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	dto := mgr.Create(ctx)
	_, err := mgr.Dispatch(ctx, dto.ID, EventInput{Name: enums.UIEvent("warp")})
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", code)
	}
}

func TestSelectProductFromCatalog(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	dto := mgr.Create(ctx)
	driveTo(t, mgr, dto.ID, enums.ScreenHome)

	got, err := mgr.Dispatch(ctx, dto.ID, EventInput{
		Name:      enums.UIEventSelectProduct,
		ProductID: "home:avocado",
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got.State.Current != enums.ScreenProductDetail {
		t.Fatalf("expected product detail, got %s", got.State.Current)
	}
	if got.State.SelectedProduct == nil || got.State.SelectedProduct.Name != "Fresh Avocado" {
		t.Fatalf("expected avocado selected, got %+v", got.State.SelectedProduct)
	}

	_, err = mgr.Dispatch(ctx, dto.ID, EventInput{
		Name:      enums.UIEventSelectProduct,
		ProductID: "home:does-not-exist",
	})
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", code)
	}

	_, err = mgr.Dispatch(ctx, dto.ID, EventInput{Name: enums.UIEventSelectProduct})
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", code)
	}
}

func TestCartMergeAndClamp(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	dto := mgr.Create(ctx)
	id := dto.ID

	for i := 0; i < 2; i++ {
		if _, err := mgr.AddItem(ctx, id, AddItemInput{ProductID: "home:avocado"}); err != nil {
			t.Fatalf("AddItem avocado: %v", err)
		}
	}
	got, err := mgr.AddItem(ctx, id, AddItemInput{ProductID: "grid:1"})
	if err != nil {
		t.Fatalf("AddItem tomatoes: %v", err)
	}

	if len(got.Cart.Lines) != 2 {
		t.Fatalf("expected 2 merged lines, got %d", len(got.Cart.Lines))
	}
	if got.Cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected avocado quantity 2, got %d", got.Cart.Lines[0].Quantity)
	}
	if got.Cart.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", got.Cart.ItemCount)
	}
	if got.Cart.Subtotal != "8.27" {
		t.Fatalf("expected subtotal 8.27, got %s", got.Cart.Subtotal)
	}

	got, err = mgr.SetQuantity(ctx, id, "home:avocado", -2)
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if len(got.Cart.Lines) != 1 || got.Cart.Lines[0].ProductID != "grid:1" {
		t.Fatalf("expected avocado line removed, got %+v", got.Cart.Lines)
	}

	got, err = mgr.ClearCart(ctx, id)
	if err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	if got.Cart.ItemCount != 0 {
		t.Fatalf("expected empty cart, got %d items", got.Cart.ItemCount)
	}
}

func TestQuotePricesCurrentCart(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	dto := mgr.Create(ctx)
	id := dto.ID

	quote, err := mgr.Quote(ctx, id)
	if err != nil {
		t.Fatalf("Quote empty cart: %v", err)
	}
	if !quote.Subtotal.IsZero() || quote.ItemCount != 0 {
		t.Fatalf("expected empty quote, got %+v", quote)
	}

	if _, err := mgr.AddItem(ctx, id, AddItemInput{ProductID: "home:avocado"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := mgr.AddItem(ctx, id, AddItemInput{ProductID: "grid:1"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	quote, err = mgr.Quote(ctx, id)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if quote.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", quote.ItemCount)
	}
	if !quote.Subtotal.Equal(decimal.RequireFromString("5.28")) {
		t.Fatalf("expected subtotal 5.28, got %s", quote.Subtotal)
	}
	want := quote.Subtotal.Add(quote.DeliveryFee).Add(quote.ServiceFee).Add(quote.Tax)
	if !quote.Total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, quote.Total)
	}
}

func TestAddItemInlinePayload(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	dto := mgr.Create(ctx)
	got, err := mgr.AddItem(ctx, dto.ID, AddItemInput{
		Product: &cart.ProductPayload{
			Title: "Mango Chutney",
			Price: json.RawMessage(`"$4.99"`),
		},
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got.Cart.Subtotal != "4.99" {
		t.Fatalf("expected formatted price parsed, got subtotal %s", got.Cart.Subtotal)
	}
}

func TestAddRecipeIngredients(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	dto := mgr.Create(ctx)
	got, err := mgr.AddRecipe(ctx, dto.ID, "guacamole")
	if err != nil {
		t.Fatalf("AddRecipe: %v", err)
	}
	if len(got.Cart.Lines) == 0 {
		t.Fatal("expected recipe ingredients in the cart")
	}

	_, err = mgr.AddRecipe(ctx, dto.ID, "missing-recipe")
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", code)
	}
}

func TestPayPlacesOrderAndKeepsImages(t *testing.T) {
	mgr, placer := newTestManager(t)
	ctx := context.Background()

	dto := mgr.Create(ctx)
	id := dto.ID
	userID := uuid.New()

	if _, err := mgr.AddItem(ctx, id, AddItemInput{ProductID: "home:avocado"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := mgr.AddItem(ctx, id, AddItemInput{ProductID: "grid:1"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	driveTo(t, mgr, id, enums.ScreenPayment)

	result, err := mgr.Pay(ctx, id, userID)
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if result.Order.Number != "20250817" {
		t.Fatalf("unexpected order number %s", result.Order.Number)
	}

	if len(placer.placed) != 1 {
		t.Fatalf("expected one placed order, got %d", len(placer.placed))
	}
	placed := placer.placed[0]
	if placed.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, placed.UserID)
	}
	if !placed.Subtotal.Equal(decimal.RequireFromString("5.28")) {
		t.Fatalf("expected subtotal 5.28, got %s", placed.Subtotal)
	}
	if len(placed.Lines) != 2 {
		t.Fatalf("expected 2 order lines, got %d", len(placed.Lines))
	}

	state := result.Session.State
	if state.Current != enums.ScreenOrderSuccess {
		t.Fatalf("expected order success, got %s", state.Current)
	}
	if state.CurrentOrderID != "20250817" {
		t.Fatalf("expected tracked order 20250817, got %s", state.CurrentOrderID)
	}
	if len(state.OrderItemImages) != 2 || state.OrderItemImages[0] != "products/avocado.png" {
		t.Fatalf("expected snapshot images to survive the cleared cart, got %v", state.OrderItemImages)
	}
	if result.Session.Cart.ItemCount != 0 {
		t.Fatalf("expected cart cleared after checkout, got %d items", result.Session.Cart.ItemCount)
	}
}

func TestPayRequiresPaymentScreen(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	dto := mgr.Create(ctx)
	if _, err := mgr.AddItem(ctx, dto.ID, AddItemInput{ProductID: "home:avocado"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	_, err := mgr.Pay(ctx, dto.ID, uuid.New())
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", code)
	}
}

func TestPayRejectsEmptyCart(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	dto := mgr.Create(ctx)
	driveTo(t, mgr, dto.ID, enums.ScreenPayment)

	_, err := mgr.Pay(ctx, dto.ID, uuid.New())
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", code)
	}
}

func TestPaymentSuccessEventRequiresUser(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	dto := mgr.Create(ctx)
	driveTo(t, mgr, dto.ID, enums.ScreenPayment)

	_, err := mgr.Dispatch(ctx, dto.ID, EventInput{Name: enums.UIEventPaymentSuccess})
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", code)
	}
}

func TestLogoutResetsSession(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	dto := mgr.Create(ctx)
	id := dto.ID
	userID := uuid.New()

	driveTo(t, mgr, id, enums.ScreenLogin)
	got, err := mgr.Dispatch(ctx, id, EventInput{Name: enums.UIEventAuthSuccess, UserID: &userID})
	if err != nil {
		t.Fatalf("Dispatch auth_success: %v", err)
	}
	if got.State.Current != enums.ScreenHome {
		t.Fatalf("expected home after auth, got %s", got.State.Current)
	}
	if got.UserID == nil || *got.UserID != userID {
		t.Fatalf("expected user attached, got %v", got.UserID)
	}

	if _, err := mgr.AddItem(ctx, id, AddItemInput{ProductID: "home:avocado"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	got, err = mgr.Dispatch(ctx, id, EventInput{Name: enums.UIEventLogout})
	if err != nil {
		t.Fatalf("Dispatch logout: %v", err)
	}
	if got.State.Current != enums.ScreenWelcome {
		t.Fatalf("expected welcome after logout, got %s", got.State.Current)
	}
	if got.UserID != nil {
		t.Fatal("expected user detached after logout")
	}
	if got.Cart.ItemCount != 0 {
		t.Fatalf("expected cart cleared after logout, got %d items", got.Cart.ItemCount)
	}
}

func TestSweepReclaimsIdleSessions(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	stale := mgr.Create(ctx)
	fresh := mgr.Create(ctx)

	sess, err := mgr.lookup(stale.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	sess.mu.Lock()
	sess.lastSeen = time.Now().Add(-2 * time.Hour)
	sess.mu.Unlock()

	if removed := mgr.sweep(); removed != 1 {
		t.Fatalf("expected 1 swept session, got %d", removed)
	}

	if _, err := mgr.Get(ctx, stale.ID); pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected stale session gone, got %v", err)
	}
	if _, err := mgr.Get(ctx, fresh.ID); err != nil {
		t.Fatalf("expected fresh session kept, got %v", err)
	}
}

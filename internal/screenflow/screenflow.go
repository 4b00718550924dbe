// Package screenflow holds the storefront navigation state machine. The
// renderer reports user actions as events; Reduce folds each event into
// the next screen state. Exactly one screen is active after every step,
// and events with no legal transition leave the state untouched so the
// UI stays usable even when a handler is missing.
package screenflow

import (
	"github.com/muhammedshamilmt/snapgro-backend/internal/catalog"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/enums"
)

// DefaultOrderID seeds the tracking screen before any real order exists.
const DefaultOrderID = "90786234"

// State is the full navigation state of one session.
type State struct {
	Current         enums.Screen     `json:"current_screen"`
	SelectedProduct *catalog.Product `json:"selected_product,omitempty"`
	CurrentOrderID  string           `json:"current_order_id"`
	OrderItemImages []string         `json:"order_item_images,omitempty"`
}

// Event is a user action plus its optional payload.
type Event struct {
	Name    enums.UIEvent
	Target  enums.Screen
	Product *catalog.Product
	OrderID string
	Images  []string
}

// Initial returns the state a fresh session starts in.
func Initial() State {
	return State{
		Current:        enums.ScreenSplash,
		CurrentOrderID: DefaultOrderID,
	}
}

// Reduce applies one event to the state and returns the next state. It
// is a pure function: callers own locking and side effects.
func Reduce(s State, ev Event) State {
	switch ev.Name {
	case enums.UIEventSplashDone:
		if s.Current == enums.ScreenSplash {
			s.Current = enums.ScreenWelcome
		}
		return s

	case enums.UIEventNext:
		if target, ok := nextEdges[s.Current]; ok {
			s.Current = target
		}
		return s

	case enums.UIEventBack:
		target, ok := backEdges[s.Current]
		if !ok {
			return s
		}
		return leave(s, target)

	case enums.UIEventNavigate:
		if !allowsNavigate(s.Current, ev.Target) {
			return s
		}
		return leave(s, ev.Target)

	case enums.UIEventTab:
		if !tabScreens[s.Current] || !tabTargets[ev.Target] {
			return s
		}
		return leave(s, ev.Target)

	case enums.UIEventSelectProduct:
		// Product detail must never render without a product.
		if ev.Product == nil || !productScreens[s.Current] {
			return s
		}
		s.SelectedProduct = ev.Product
		s.Current = enums.ScreenProductDetail
		return s

	case enums.UIEventSelectOrder:
		if s.Current != enums.ScreenOrders || ev.OrderID == "" {
			return s
		}
		s.CurrentOrderID = ev.OrderID
		s.Current = enums.ScreenTrackOrder
		return s

	case enums.UIEventAuthSuccess:
		if s.Current != enums.ScreenLogin && s.Current != enums.ScreenSignUp {
			return s
		}
		s.Current = enums.ScreenHome
		return s

	case enums.UIEventCheckout:
		if s.Current == enums.ScreenCart {
			s.Current = enums.ScreenCheckout
		}
		return s

	case enums.UIEventPay:
		if s.Current == enums.ScreenCheckout {
			s.Current = enums.ScreenPayment
		}
		return s

	case enums.UIEventPaymentSuccess:
		if s.Current != enums.ScreenPayment {
			return s
		}
		s.Current = enums.ScreenOrderSuccess
		s.OrderItemImages = ev.Images
		if ev.OrderID != "" {
			s.CurrentOrderID = ev.OrderID
		}
		return s

	case enums.UIEventTrackOrder:
		if s.Current != enums.ScreenOrderSuccess {
			return s
		}
		s.Current = enums.ScreenTrackOrder
		return s

	case enums.UIEventLogout:
		return AfterLogout()
	}

	return s
}

// AfterLogout is the session state after logging out from any screen.
func AfterLogout() State {
	return State{
		Current:        enums.ScreenWelcome,
		CurrentOrderID: DefaultOrderID,
	}
}

// leave moves to target, dropping the product selection when product
// detail is no longer on screen.
func leave(s State, target enums.Screen) State {
	if s.Current == enums.ScreenProductDetail {
		s.SelectedProduct = nil
	}
	s.Current = target
	return s
}

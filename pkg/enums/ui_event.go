package enums

import "fmt"

// UIEvent names a user-initiated action reported by the screen renderer.
type UIEvent string

const (
	UIEventSplashDone     UIEvent = "splash_done"
	UIEventNext           UIEvent = "next"
	UIEventBack           UIEvent = "back"
	UIEventNavigate       UIEvent = "navigate"
	UIEventTab            UIEvent = "tab"
	UIEventSelectProduct  UIEvent = "select_product"
	UIEventSelectOrder    UIEvent = "select_order"
	UIEventAuthSuccess    UIEvent = "auth_success"
	UIEventCheckout       UIEvent = "checkout"
	UIEventPay            UIEvent = "pay"
	UIEventPaymentSuccess UIEvent = "payment_success"
	UIEventTrackOrder     UIEvent = "track_order"
	UIEventLogout         UIEvent = "logout"
)

var validUIEvents = []UIEvent{
	UIEventSplashDone,
	UIEventNext,
	UIEventBack,
	UIEventNavigate,
	UIEventTab,
	UIEventSelectProduct,
	UIEventSelectOrder,
	UIEventAuthSuccess,
	UIEventCheckout,
	UIEventPay,
	UIEventPaymentSuccess,
	UIEventTrackOrder,
	UIEventLogout,
}

// String implements fmt.Stringer.
func (e UIEvent) String() string {
	return string(e)
}

// IsValid reports whether the value is a known UIEvent.
func (e UIEvent) IsValid() bool {
	for _, candidate := range validUIEvents {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseUIEvent converts raw input into a UIEvent.
func ParseUIEvent(value string) (UIEvent, error) {
	for _, candidate := range validUIEvents {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ui event %q", value)
}

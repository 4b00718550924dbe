package enums

import "fmt"

// Screen identifies a single storefront screen. Exactly one screen is
// active per session at any time.
type Screen string

const (
	ScreenSplash            Screen = "splash"
	ScreenWelcome           Screen = "welcome"
	ScreenSecondWelcome     Screen = "second_welcome"
	ScreenLogin             Screen = "login"
	ScreenSignUp            Screen = "sign_up"
	ScreenOnboardingOne     Screen = "onboarding_one"
	ScreenOnboardingTwo     Screen = "onboarding_two"
	ScreenOnboardingThree   Screen = "onboarding_three"
	ScreenHome              Screen = "home"
	ScreenCategories        Screen = "categories"
	ScreenProducts          Screen = "products"
	ScreenProductDetail     Screen = "product_detail"
	ScreenCart              Screen = "cart"
	ScreenCheckout          Screen = "checkout"
	ScreenPayment           Screen = "payment"
	ScreenOrderSuccess      Screen = "order_success"
	ScreenTrackOrder        Screen = "track_order"
	ScreenProfile           Screen = "profile"
	ScreenOrders            Screen = "orders"
	ScreenPaymentMethods    Screen = "payment_methods"
	ScreenDeliveryAddresses Screen = "delivery_addresses"
	ScreenPersonalDetails   Screen = "personal_details"
	ScreenNotifications     Screen = "notifications"
	ScreenHelp              Screen = "help"
	ScreenAddNewCard        Screen = "add_new_card"
	ScreenAddNewAddress     Screen = "add_new_address"
	ScreenRewards           Screen = "rewards"
	ScreenAIChef            Screen = "ai_chef"
)

var validScreens = []Screen{
	ScreenSplash,
	ScreenWelcome,
	ScreenSecondWelcome,
	ScreenLogin,
	ScreenSignUp,
	ScreenOnboardingOne,
	ScreenOnboardingTwo,
	ScreenOnboardingThree,
	ScreenHome,
	ScreenCategories,
	ScreenProducts,
	ScreenProductDetail,
	ScreenCart,
	ScreenCheckout,
	ScreenPayment,
	ScreenOrderSuccess,
	ScreenTrackOrder,
	ScreenProfile,
	ScreenOrders,
	ScreenPaymentMethods,
	ScreenDeliveryAddresses,
	ScreenPersonalDetails,
	ScreenNotifications,
	ScreenHelp,
	ScreenAddNewCard,
	ScreenAddNewAddress,
	ScreenRewards,
	ScreenAIChef,
}

// String implements fmt.Stringer.
func (s Screen) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Screen.
func (s Screen) IsValid() bool {
	for _, candidate := range validScreens {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseScreen converts raw input into a Screen.
func ParseScreen(value string) (Screen, error) {
	for _, candidate := range validScreens {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid screen %q", value)
}

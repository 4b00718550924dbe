package screenflow

import "github.com/muhammedshamilmt/snapgro-backend/pkg/enums"

// backEdges maps each screen to its logical parent. Screens without an
// entry ignore the back event.
var backEdges = map[enums.Screen]enums.Screen{
	enums.ScreenSecondWelcome:     enums.ScreenWelcome,
	enums.ScreenLogin:             enums.ScreenSecondWelcome,
	enums.ScreenSignUp:            enums.ScreenSecondWelcome,
	enums.ScreenOnboardingOne:     enums.ScreenWelcome,
	enums.ScreenOnboardingTwo:     enums.ScreenOnboardingOne,
	enums.ScreenOnboardingThree:   enums.ScreenOnboardingTwo,
	enums.ScreenCategories:        enums.ScreenHome,
	enums.ScreenProducts:          enums.ScreenCategories,
	enums.ScreenProductDetail:     enums.ScreenProducts,
	enums.ScreenCart:              enums.ScreenHome,
	enums.ScreenCheckout:          enums.ScreenCart,
	enums.ScreenPayment:           enums.ScreenCheckout,
	enums.ScreenOrderSuccess:      enums.ScreenHome,
	enums.ScreenTrackOrder:        enums.ScreenHome,
	enums.ScreenProfile:           enums.ScreenHome,
	enums.ScreenOrders:            enums.ScreenProfile,
	enums.ScreenPaymentMethods:    enums.ScreenProfile,
	enums.ScreenDeliveryAddresses: enums.ScreenProfile,
	enums.ScreenPersonalDetails:   enums.ScreenProfile,
	enums.ScreenNotifications:     enums.ScreenProfile,
	enums.ScreenHelp:              enums.ScreenProfile,
	enums.ScreenAddNewCard:        enums.ScreenPaymentMethods,
	enums.ScreenAddNewAddress:     enums.ScreenDeliveryAddresses,
	enums.ScreenRewards:           enums.ScreenProfile,
	enums.ScreenAIChef:            enums.ScreenHome,
}

// nextEdges drives the linear welcome and onboarding flow.
var nextEdges = map[enums.Screen]enums.Screen{
	enums.ScreenWelcome:         enums.ScreenOnboardingOne,
	enums.ScreenOnboardingOne:   enums.ScreenOnboardingTwo,
	enums.ScreenOnboardingTwo:   enums.ScreenOnboardingThree,
	enums.ScreenOnboardingThree: enums.ScreenSecondWelcome,
}

// navEdges lists the explicit forward destinations per screen, beyond
// what the tab bar already provides.
var navEdges = map[enums.Screen][]enums.Screen{
	enums.ScreenWelcome:           {enums.ScreenSecondWelcome},
	enums.ScreenSecondWelcome:     {enums.ScreenLogin, enums.ScreenSignUp},
	enums.ScreenLogin:             {enums.ScreenSignUp},
	enums.ScreenSignUp:            {enums.ScreenLogin},
	enums.ScreenHome:              {enums.ScreenProducts, enums.ScreenRewards, enums.ScreenNotifications, enums.ScreenTrackOrder},
	enums.ScreenCategories:        {enums.ScreenProducts},
	enums.ScreenProfile:           {enums.ScreenOrders, enums.ScreenPaymentMethods, enums.ScreenDeliveryAddresses, enums.ScreenPersonalDetails, enums.ScreenNotifications, enums.ScreenHelp, enums.ScreenRewards},
	enums.ScreenPaymentMethods:    {enums.ScreenAddNewCard},
	enums.ScreenDeliveryAddresses: {enums.ScreenAddNewAddress},
	enums.ScreenOrderSuccess:      {enums.ScreenHome, enums.ScreenTrackOrder},
	enums.ScreenTrackOrder:        {enums.ScreenHome},
}

// tabTargets are the hubs the persistent tab bar can jump to.
var tabTargets = map[enums.Screen]bool{
	enums.ScreenHome:       true,
	enums.ScreenCategories: true,
	enums.ScreenCart:       true,
	enums.ScreenAIChef:     true,
	enums.ScreenProfile:    true,
}

// tabScreens are the screens that show the tab bar. The same target set
// applies to all of them; per-screen wiring is deliberately avoided.
var tabScreens = map[enums.Screen]bool{
	enums.ScreenHome:          true,
	enums.ScreenCategories:    true,
	enums.ScreenProducts:      true,
	enums.ScreenProductDetail: true,
	enums.ScreenCart:          true,
	enums.ScreenAIChef:        true,
	enums.ScreenProfile:       true,
}

// productScreens are the entry points that can push product detail.
var productScreens = map[enums.Screen]bool{
	enums.ScreenHome:       true,
	enums.ScreenCategories: true,
	enums.ScreenProducts:   true,
	enums.ScreenAIChef:     true,
	enums.ScreenCart:       true,
}

func allowsNavigate(from, to enums.Screen) bool {
	for _, target := range navEdges[from] {
		if target == to {
			return true
		}
	}
	return false
}

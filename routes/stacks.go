package routes

// Screen is a destination in the mobile client's navigation stacks.
type Screen string

// Stack is a set of screens mounted together. The first screen is the initial one.
type Stack struct {
	Name    string
	Private bool
	Screens []Screen
}

var (
	AuthStack = Stack{
		Name:    "auth",
		Screens: []Screen{ScreenSignIn, ScreenForgot, ScreenSignUp, ScreenUserCreated},
	}
	UserStack = Stack{
		Name:    "user",
		Private: true,
		Screens: []Screen{ScreenDashboard, ScreenSelectProvider, ScreenSelectDate, ScreenAppointmentCreated, ScreenProfile},
	}
)

// StackFor mounts the user stack while signed in and the auth stack otherwise.
func StackFor(hasSession bool) Stack {
	if hasSession {
		return UserStack
	}
	return AuthStack
}

func (s Stack) Initial() Screen {
	return s.Screens[0]
}

func (s Stack) Has(screen Screen) bool {
	for _, sc := range s.Screens {
		if sc == screen {
			return true
		}
	}
	return false
}

// ScreenDescriptor describes screen as a route so the same guard applies to it. Unknown screens
// report false.
func ScreenDescriptor(screen Screen) (Descriptor, bool) {
	switch {
	case UserStack.Has(screen):
		return Descriptor{Path: string(screen), Private: true}, true
	case AuthStack.Has(screen):
		return Descriptor{Path: string(screen)}, true
	}
	return Descriptor{}, false
}

// Navigate resolves a mobile navigation: allowed screens stay, others fall back to the initial
// screen of the stack mounted for the session state.
func Navigate(screen Screen, hasSession bool) (Screen, bool) {
	stack := StackFor(hasSession)
	if stack.Has(screen) {
		return screen, true
	}
	return stack.Initial(), false
}

package model

import "strconv"

// DefaultPanedPosition is the splitter offset, in pixels, used until one is saved
const DefaultPanedPosition = 250

// NavigationState is the persisted state of the side navigation panel
type NavigationState struct {
	Visible  bool
	Position int
}

// DefaultNavigationState returns the state used on first launch
func DefaultNavigationState() NavigationState {
	return NavigationState{Visible: false, Position: DefaultPanedPosition}
}

// ParseNavigationState builds a state from stored text, falling back per field.
// Non-positive positions are ignored.
func ParseNavigationState(visible, position string) NavigationState {
	state := DefaultNavigationState()

	if v, err := ParseBool(visible); err == nil {
		state.Visible = v
	}
	if p, err := strconv.ParseInt(position, 10, 32); err == nil && p > 0 {
		state.Position = int(p)
	}
	return state
}

// ParseBool accepts exactly "true" or "false"
func ParseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: s, Err: strconv.ErrSyntax}
}

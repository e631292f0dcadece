// Package animation defines the boundary between the character core and the
// component that plays animations, plus a logged decorator and a simulated
// clip player for headless runs.
package animation

// Event is a one-shot animation trigger.
type Event int

const (
	EventFire Event = iota
	EventFireEmpty
	EventReload
	EventReloadEmpty
	EventInspect
	EventHolster
	EventUnholster
)

var eventNames = map[Event]string{
	EventFire:        "Fire",
	EventFireEmpty:   "Fire Empty",
	EventReload:      "Reload",
	EventReloadEmpty: "Reload Empty",
	EventInspect:     "Inspect",
	EventHolster:     "Holster",
	EventUnholster:   "Unholster",
}

// String returns the animation state name.
func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// Layer is the animator layer an event plays on.
type Layer int

const (
	// LayerOverlay carries fire and empty-fire.
	LayerOverlay Layer = iota
	// LayerHolster carries holster and unholster.
	LayerHolster
	// LayerActions carries reload and inspect.
	LayerActions
)

// Layers lists every layer in evaluation order.
var Layers = []Layer{LayerOverlay, LayerHolster, LayerActions}

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerOverlay:
		return "Layer Overlay"
	case LayerHolster:
		return "Layer Holster"
	case LayerActions:
		return "Layer Actions"
	default:
		return "unknown"
	}
}

// Animator parameter names.
const (
	ParamMovement  = "Movement"
	ParamAiming    = "Aiming"
	ParamAim       = "Aim"
	ParamRunning   = "Running"
	ParamHolstered = "Holstered"
)

package vdom

// NativeType describes the platform type of a native component: a
// renderer-specific handler tag (which native creation path to use)
// and a name tag (e.g. "div", "text").
type NativeType struct {
	Handler string
	Name    string
}

// NativeHandle is an opaque, renderer-owned reference to a live native
// object. It must be comparable: the reconciler uses == to decide
// whether a replace_child call can be skipped because the handle did
// not actually change.
type NativeHandle = any

// Children is the "multi-children" render output variant, produced
// only by native components. Non-native components always render
// exactly one child (or Unit); native components always render
// Children.
type Children struct {
	Views []View
}

// DispatchNativeEvent is handed to the renderer at CreateComponent
// time. The renderer must call it only from outside a reconciler turn
// (i.e. via the scheduler), never synchronously from within platform
// event delivery while a turn is in progress.
type DispatchNativeEvent func(attr string, payload any)

// View is a handle to one component instance. Implementations are
// produced by a component-definition surface layered on top of this
// package; vdom only consumes View values.
type View interface {
	// Location is this View's source call-site, or the zero Location
	// for the Unit view (Unit has no location and is never placed as
	// a sibling, so I1 is never at risk for it).
	Location() Location

	// Key returns the optional instance key and whether it was set.
	Key() (string, bool)

	// NativeType reports the native descriptor if this View is a
	// native component, or false otherwise.
	NativeType() (NativeType, bool)

	// Render produces this instance's child output. Native components
	// return Children; non-native components return a single View
	// (or Unit).
	Render(ctx RenderContext) any

	// Updated reports whether this View's props changed as of gen.
	Updated(gen Generation) bool

	// SameComponentType reports whether other is an instance of the
	// same underlying component type as this View, used to decide
	// whether UpdateComponent may reuse the native handle in place.
	SameComponentType(other View) bool
}

// EventedView is implemented by Views that can receive a routed native
// event during an update pass (spec.md §4.9). Not all Views need
// implement it; the reconciler type-asserts for it.
type EventedView interface {
	View
	// HandleEvent routes an attribute-named event with its opaque
	// payload to the matching handler slot, if any. Implementations
	// must tolerate an event with no matching handler by doing
	// nothing (the "tolerate" policy of spec.md §7).
	HandleEvent(attr string, payload any)
}

// RenderContext is handed to View.Render. It exposes the current
// generation and a hook surface bound to the rendering instance.
type RenderContext struct {
	gen   Generation
	node  NodeID
	vdom  *VDom
}

// Gen returns the generation this render is occurring at.
func (c RenderContext) Gen() Generation { return c.gen }

// unitView is the sentinel "renders nothing" component, the Go
// realization of the original source's is::<()>() downcast check.
type unitView struct{}

func (unitView) Location() Location                  { return Location{} }
func (unitView) Key() (string, bool)                 { return "", false }
func (unitView) NativeType() (NativeType, bool)      { return NativeType{}, false }
func (unitView) Render(ctx RenderContext) any         { panic("vdom: Unit view must never be rendered") }
func (unitView) Updated(gen Generation) bool          { return false }
func (unitView) SameComponentType(other View) bool    { _, ok := other.(unitView); return ok }

// Unit is the View that renders nothing. A component that has no
// child to produce (an empty conditional branch, for instance)
// returns Unit.
var Unit View = unitView{}

// IsUnit reports whether v is the Unit view.
func IsUnit(v View) bool {
	_, ok := v.(unitView)
	return ok
}

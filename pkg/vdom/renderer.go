package vdom

// Renderer is the narrow platform interface the reconciler drives. It
// must be single-threaded with the reconciler: no concurrent reentry
// is permitted (§4.5, §5).
//
// Per-method replace/remove skip policy (resolving the "ambiguities
// observed in source" of spec.md §9): ReplaceChild is a no-op when the
// existing native handle at index equals the replacement handle
// (compared with ==); no other method has an identity-skip.
type Renderer interface {
	// CreateComponent instantiates a native object for nativeType
	// from view, wiring dispatch so the renderer can later deliver
	// native events through the scheduler. Returns the new handle.
	CreateComponent(nativeType NativeType, view View, dispatch DispatchNativeEvent) NativeHandle

	// UpdateComponent applies attribute deltas from view onto handle.
	// If event is non-nil, the matching handler is invoked instead of
	// (not in addition to) applying attribute deltas; the subsequent
	// diff reflects any state change the handler made.
	UpdateComponent(nativeType NativeType, handle NativeHandle, view View, event *NativeEvent) NativeHandle

	// AppendChild appends childHandle as the last native child of
	// parentHandle.
	AppendChild(parentType NativeType, parentHandle NativeHandle, childType NativeType, childHandle NativeHandle)

	// InsertChild inserts childHandle at index within parentHandle's
	// own children (0-based; a children-offset configured at Mount
	// accounts for pre-existing siblings, added by the renderer, not
	// by the reconciler).
	InsertChild(parentType NativeType, parentHandle NativeHandle, index int, childType NativeType, childHandle NativeHandle)

	// SwapChildren swaps the children at positions i and j. The
	// reconciler never calls this with i == j.
	SwapChildren(parentType NativeType, parentHandle NativeHandle, i, j int)

	// ReplaceChild replaces the child at index with childHandle.
	ReplaceChild(parentType NativeType, parentHandle NativeHandle, index int, childType NativeType, childHandle NativeHandle)

	// RemoveChild drops the single child at index, shifting later
	// children down by one. Used only for the native/non-native
	// transition of an individual retained child (§4.8); bulk tail
	// removal goes through TruncateChildren instead. The source's
	// per-child remove_child and bulk truncate_children are
	// functionally redundant for that single case; this interface
	// keeps both because neither can express the other's shape without
	// contortion (a single-index remove via a trailing truncate would
	// require re-appending every already-placed later sibling).
	RemoveChild(parentType NativeType, parentHandle NativeHandle, index int)

	// TruncateChildren removes all children at positions >= newLen.
	TruncateChildren(parentType NativeType, parentHandle NativeHandle, newLen int)

	// Log is diagnostic only.
	Log(msg string)
}

// NativeEvent is the event attached to an update pass by the
// scheduler task created in DispatchNativeEvent (spec.md §4.9).
type NativeEvent struct {
	Attr    string
	Payload any
}

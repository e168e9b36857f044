package vdom

// Instance (VNode) is the tree-resident materialization of a View.
type Instance struct {
	Component    View
	NativeType   *NativeType
	NativeHandle NativeHandle
	state        *StateStore

	// Dirty is set by a state write (via StateHandle.Set, through the
	// scheduler) or by descendant propagation (I6), and cleared at
	// the end of update.
	Dirty bool
}

func newInstance(v View) *Instance {
	return &Instance{Component: v, state: newStateStore()}
}

// isNative reports whether the instance owns a native handle. Both
// NativeType and NativeHandle are present or both are absent (I4);
// NativeType != nil is used as the witness.
func (inst *Instance) isNative() bool {
	return inst.NativeType != nil
}

package vdom

import (
	vdomerrors "github.com/arborview/vdomx/pkg/vdom/errors"
)

// normalizeChildren turns a View.Render return value into an ordered
// list of child Views. Native components render Children (the
// "multi-children" variant); every other component renders exactly
// one child (or Unit, which callers special-case before reaching
// here).
func normalizeChildren(output any) []View {
	switch o := output.(type) {
	case Children:
		return o.Views
	case View:
		return []View{o}
	default:
		panic("vdom: Render must return a View or Children")
	}
}

func identitiesOf(views []View) []Identity {
	ids := make([]Identity, len(views))
	for i, v := range views {
		ids[i] = IdentityOf(v)
	}
	return ids
}

func checkNoDuplicates(ids []Identity) {
	seen := make(map[Identity]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			panic(&vdomerrors.DuplicateIdentityError{
				Line: id.Location.Line, Column: id.Location.Column,
				Key: id.Key, HasKey: id.HasKey,
			})
		}
		seen[id] = struct{}{}
	}
}

// childWithNativeHandle walks down node's unique non-native chain (I2)
// until a native instance is found, returning its id, or ok=false if
// the chain ends without one.
func childWithNativeHandle(v *VDom, node NodeID) (NodeID, bool) {
	for {
		inst := v.tree.get(node)
		if inst.isNative() {
			return node, true
		}
		if v.tree.len(node) == 0 {
			return invalidNodeID, false
		}
		if v.tree.len(node) > 1 {
			panic("vdom: expected non-native component to have exactly one child")
		}
		node = v.tree.child(node, 0)
	}
}

// nativeAppendChild appends child's native descendant, if any, as the
// last native child of parent. parent must be native.
func nativeAppendChild(v *VDom, parent, child NodeID) {
	descendant, ok := childWithNativeHandle(v, child)
	if !ok {
		return
	}
	parentInst, childInst := v.tree.getMutPair(parent, descendant)
	v.renderer.AppendChild(*parentInst.NativeType, parentInst.NativeHandle, *childInst.NativeType, childInst.NativeHandle)
	v.call("AppendChild")
}

func nativeInsertChild(v *VDom, parent, child NodeID, pos int) {
	descendant, ok := childWithNativeHandle(v, child)
	if !ok {
		return
	}
	parentInst, childInst := v.tree.getMutPair(parent, descendant)
	v.renderer.InsertChild(*parentInst.NativeType, parentInst.NativeHandle, pos, *childInst.NativeType, childInst.NativeHandle)
	v.call("InsertChild")
}

func (v *VDom) call(op string) {
	if v.hooks.onCall != nil {
		v.hooks.onCall(op)
	}
}

// propagateUpdateToNativeParent walks up node's ancestors, marking
// each dirty, until reaching the first ancestor with a native handle.
// Returns invalidNodeID, false if node is the tree root.
func propagateUpdateToNativeParent(v *VDom, node NodeID) (NodeID, bool) {
	for {
		parent := v.tree.parentOf(node)
		if parent == invalidNodeID {
			return invalidNodeID, false
		}
		inst := v.tree.get(parent)
		if inst.isNative() {
			return parent, true
		}
		inst.Dirty = true
		node = parent
	}
}

// generate performs the initial mount of the subtree rooted at node
// (spec.md §4.6).
func generate(v *VDom, node NodeID, gen Generation) {
	inst := v.tree.get(node)
	if IsUnit(inst.Component) {
		return
	}

	ctx := RenderContext{gen: gen, node: node, vdom: v}
	output := inst.Component.Render(ctx)

	if nt, ok := inst.Component.NativeType(); ok {
		inst.NativeType = &nt
	}

	isNative := inst.isNative()
	if isNative {
		handle := v.renderer.CreateComponent(*inst.NativeType, inst.Component, dispatcherFor(v, node))
		inst.NativeHandle = handle
		v.call("CreateComponent")
	}

	for _, childView := range normalizeChildren(output) {
		childID := v.tree.push(node, newInstance(childView))
		generate(v, childID, gen)
		if isNative {
			nativeAppendChild(v, node, childID)
		}
	}
}

// dispatcherFor returns the DispatchNativeEvent closure handed to the
// renderer at CreateComponent time (spec.md §4.9). It always goes
// through the scheduler, never calling update synchronously from
// inside platform event delivery.
func dispatcherFor(v *VDom, node NodeID) DispatchNativeEvent {
	return func(attr string, payload any) {
		v.scheduler.Schedule(func() {
			v.withLock(func() {
				if v.hooks.beforeTurn != nil {
					v.hooks.beforeTurn()
				}
				update(v, nil, node, v.gen, &NativeEvent{Attr: attr, Payload: payload})
				v.gen++
				if v.hooks.afterTurn != nil {
					v.hooks.afterTurn(0)
				}
			})
		})
	}
}

type childSlot struct {
	id       NodeID
	nativeAt int // index into the renderer's pre-diff native child array, or -1
	isNew    bool
}

// update re-renders node if its props or state changed, diffing its
// children against the prior child list and emitting the
// corresponding renderer calls (spec.md §4.7, §4.8, §4.9).
//
// newComponent is the freshly rendered View to swap in, or nil when
// this call originates from a state write or an event dispatch rather
// than from the parent's own re-render. event, if non-nil, is routed
// to node's current component before re-rendering and unconditionally
// forces a re-render (§4.9).
func update(v *VDom, newComponent View, node NodeID, gen Generation, event *NativeEvent) {
	inst := v.tree.get(node)

	propsUpdated := newComponent != nil && newComponent.Updated(gen)
	stateUpdated := inst.Dirty || event != nil

	if !propsUpdated && !stateUpdated {
		return
	}
	inst.Dirty = true

	var oldComponent View
	hadOld := newComponent != nil
	if hadOld {
		oldComponent = inst.Component
		inst.Component = newComponent
	}

	if event != nil {
		if evented, ok := inst.Component.(EventedView); ok {
			evented.HandleEvent(event.Attr, event.Payload)
		}
	}

	isNative := inst.isNative()

	ctx := RenderContext{gen: gen, node: node, vdom: v}
	output := inst.Component.Render(ctx)
	children := normalizeChildren(output)

	// Native-identity propagation (§4.7 step 5): only meaningful for
	// non-native n, which by I2 has exactly one child.
	if !isNative {
		oldChildID := v.tree.child(node, 0)
		oldChildIdentity := IdentityOf(v.tree.get(oldChildID).Component)
		newChildIdentity := IdentityOf(children[0])
		if oldChildIdentity != newChildIdentity {
			nativeParent, ok := propagateUpdateToNativeParent(v, node)
			if !ok {
				panic("vdom: no native ancestor found for identity-changing update")
			}
			parentInst := v.tree.get(nativeParent)
			if !parentInst.Dirty {
				parentInst.Dirty = true
				if hadOld {
					inst.Component = oldComponent
				}
				update(v, nil, nativeParent, gen, nil)
				return
			}
		}
	}

	newIDs := identitiesOf(children)
	checkNoDuplicates(newIDs)

	oldChildren := append([]NodeID(nil), v.tree.iter(node)...)
	oldIDs := make([]Identity, len(oldChildren))
	inPlace := make(map[Identity]childSlot, len(oldChildren))
	nativeCount := 0
	for i, id := range oldChildren {
		identity := IdentityOf(v.tree.get(id).Component)
		oldIDs[i] = identity
		nativeAt := -1
		if _, ok := childWithNativeHandle(v, id); ok {
			nativeAt = nativeCount
			nativeCount++
		}
		if _, dup := inPlace[identity]; dup {
			panic(&vdomerrors.DuplicateIdentityError{Line: identity.Location.Line, Column: identity.Location.Column, Key: identity.Key, HasKey: identity.HasKey})
		}
		inPlace[identity] = childSlot{id: id, nativeAt: nativeAt}
	}

	created := make(map[NodeID]struct{})

	// §4.7 step 6c: create instances for identities not seen before.
	for i, id := range newIDs {
		if _, ok := inPlace[id]; ok {
			continue
		}
		childID := v.tree.push(node, newInstance(children[i]))
		generate(v, childID, gen)
		if isNative {
			nativeAppendChild(v, node, childID)
		}
		nativeAt := -1
		if _, ok := childWithNativeHandle(v, childID); ok {
			nativeAt = nativeCount
			nativeCount++
		}
		created[childID] = struct{}{}
		inPlace[id] = childSlot{id: childID, nativeAt: nativeAt, isNew: true}
	}

	// §4.7 step 6d: selection-sort the tree's child list into the new
	// order, tracking each slot's pre-diff native position alongside.
	slotNative := make([]int, v.tree.len(node))
	slotOf := make(map[NodeID]int, len(slotNative))
	for i, id := range v.tree.iter(node) {
		slotOf[id] = i
	}
	for identity, slot := range inPlace {
		_ = identity
		slotNative[slotOf[slot.id]] = slot.nativeAt
	}

	for i, id := range newIDs {
		currentID := v.tree.child(node, i)
		if IdentityOf(v.tree.get(currentID).Component) == id {
			continue
		}
		target := slotOf[inPlace[id].id]
		v.tree.swapChildren(node, i, target)
		slotNative[i], slotNative[target] = slotNative[target], slotNative[i]
		slotOf[currentID] = target
		slotOf[id2NodeID(inPlace, id)] = i
	}

	// §4.7 step 6e: reorder the renderer's actual native children to
	// match slotNative[0:len(newIDs)], via a minimal-swap placement.
	if isNative {
		targetOrder := make([]int, 0, nativeCount)
		for i := 0; i < len(newIDs); i++ {
			if slotNative[i] != -1 {
				targetOrder = append(targetOrder, slotNative[i])
			}
		}
		finalNativeCount := len(targetOrder)

		at := make([]int, nativeCount)
		locate := make([]int, nativeCount)
		for i := range at {
			at[i] = i
			locate[i] = i
		}
		nt := *inst.NativeType
		handle := inst.NativeHandle
		for p, want := range targetOrder {
			cur := locate[want]
			if cur == p {
				continue
			}
			v.renderer.SwapChildren(nt, handle, p, cur)
			v.call("SwapChildren")
			other := at[p]
			at[p], at[cur] = at[cur], at[p]
			locate[want] = p
			locate[other] = cur
		}

		if finalNativeCount < nativeCount {
			v.renderer.TruncateChildren(nt, handle, finalNativeCount)
			v.call("TruncateChildren")
		}
	}

	// §4.7 step 6f: physically drop stale subtrees.
	for i := v.tree.len(node) - 1; i >= len(newIDs); i-- {
		v.tree.removeChild(node, i)
	}

	// §4.7 step 7 / §4.8: recursive update of retained children, in
	// reverse, maintaining the native-position cursor.
	nativePosCursor := -1
	if isNative {
		for i := 0; i < len(newIDs); i++ {
			if slotNative[i] != -1 {
				nativePosCursor++
			}
		}
	}
	for i := len(newIDs) - 1; i >= 0; i-- {
		childID := v.tree.child(node, i)
		hadNativeSlot := slotNative[i] != -1

		if _, isNewChild := created[childID]; isNewChild {
			if isNative && hadNativeSlot {
				nativePosCursor--
			}
			continue
		}

		var oldHandle NativeHandle
		if hadNativeSlot {
			oldDescendant, _ := childWithNativeHandle(v, childID)
			oldHandle = v.tree.get(oldDescendant).NativeHandle
		}

		update(v, children[i], childID, gen, nil)

		if !isNative {
			continue
		}

		newDescendant, hasNow := childWithNativeHandle(v, childID)
		nt := *inst.NativeType
		handle := inst.NativeHandle
		switch {
		case !hadNativeSlot && !hasNow:
			// no renderer call
		case hadNativeSlot && hasNow:
			// The descendant's own props/state may have changed, but
			// that already produced its own UpdateComponent call (if
			// any) from its own update() above. Only a native handle
			// underneath this slot that differs (by ==) from the one
			// there before (e.g. an identity-changing swap bubbled up
			// from below) warrants telling the parent to re-point at it.
			if dInst := v.tree.get(newDescendant); dInst.NativeHandle != oldHandle {
				v.renderer.ReplaceChild(nt, handle, nativePosCursor, *dInst.NativeType, dInst.NativeHandle)
				v.call("ReplaceChild")
			}
			nativePosCursor--
		case hadNativeSlot && !hasNow:
			v.renderer.RemoveChild(nt, handle, nativePosCursor)
			v.call("RemoveChild")
			nativePosCursor--
		case !hadNativeSlot && hasNow:
			nativeInsertChild(v, node, childID, nativePosCursor+1)
		}
	}

	// §4.7 step 8: native self-update.
	if hadOld && oldComponent.SameComponentType(inst.Component) {
		if nt, ok := inst.Component.NativeType(); ok {
			inst.NativeType = &nt
			inst.NativeHandle = v.renderer.UpdateComponent(nt, inst.NativeHandle, inst.Component, event)
			v.call("UpdateComponent")
		}
	}

	inst.Dirty = false
}

// id2NodeID resolves the live NodeID currently holding identity id.
// inPlace may have been partially consumed by earlier swaps in the
// caller's loop, but it always maps an identity to the node that owns
// it, independent of that node's current tree position.
func id2NodeID(inPlace map[Identity]childSlot, id Identity) NodeID {
	return inPlace[id].id
}

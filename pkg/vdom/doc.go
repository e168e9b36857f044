// Package vdom implements the reconciliation core of a declarative
// component framework: given a tree of user components that each
// produce a single child View, it materializes and incrementally
// updates a parallel tree of platform-native objects through a narrow
// Renderer interface, using the minimum set of native operations.
//
// The package does not know how to build a component tree from source;
// that is the job of a component-definition surface layered on top.
// vdom only consumes the already-rendered View values such a surface
// produces.
package vdom

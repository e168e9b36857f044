// Command demo runs a small counter UI on top of the reconciler core,
// driven by github.com/charmbracelet/bubbletea. Grounded on the
// teacher's Run/asyncWrapperModel launch sequence, generalized from
// wrapping one Component to wrapping a mounted Root.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arborview/vdomx/pkg/termrenderer"
	"github.com/arborview/vdomx/pkg/vdom"
	"github.com/arborview/vdomx/pkg/vdom/scheduler"
)

// shell is the mount point's native parent: a bare vbox with no
// content of its own, so the counter is the only thing on screen.
type shell struct{ loc vdom.Location }

func (s shell) Location() vdom.Location             { return s.loc }
func (s shell) Key() (string, bool)                 { return "", false }
func (s shell) NativeType() (vdom.NativeType, bool) { return vdom.NativeType{Name: termrenderer.TypeVBox}, true }
func (s shell) Render(vdom.RenderContext) any        { return vdom.Children{} }
func (s shell) Updated(vdom.Generation) bool         { return true }
func (s shell) SameComponentType(o vdom.View) bool   { _, ok := o.(shell); return ok }

func main() {
	renderer, rootHandle := termrenderer.New()
	sched := scheduler.New()

	app := newCounter(vdom.Location{Line: 1})
	root := shell{loc: vdom.Location{Line: 0}}

	mounted, err := vdom.Mount(app, root, rootHandle, renderer, sched)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mount failed:", err)
		os.Exit(1)
	}

	model := termrenderer.NewModel(mounted, renderer)
	model.QuitKeys = map[string]bool{"q": true, "ctrl+c": true}
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "demo exited with error:", err)
		os.Exit(1)
	}
}

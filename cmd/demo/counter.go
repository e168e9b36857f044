package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/arborview/vdomx/pkg/termrenderer"
	"github.com/arborview/vdomx/pkg/vdom"
)

var labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
var hintStyle = lipgloss.NewStyle().Faint(true)

// counter is a native vbox component holding its own count. Render
// always re-derives its children from the current count; up/down keys
// mutate the count through the StateHandle captured during the most
// recent Render.
//
// handle is a pointer the struct owns across copies: Render always
// writes through it, so the handle survives even though Counter
// itself is passed around by value the way every View is.
type counter struct {
	loc    vdom.Location
	handle *vdom.StateHandle[int]
}

func newCounter(loc vdom.Location) counter {
	return counter{loc: loc, handle: new(vdom.StateHandle[int])}
}

func (c counter) Location() vdom.Location             { return c.loc }
func (c counter) Key() (string, bool)                 { return "", false }
func (c counter) NativeType() (vdom.NativeType, bool) { return vdom.NativeType{Name: termrenderer.TypeVBox}, true }
func (c counter) Updated(vdom.Generation) bool         { return true }
func (c counter) SameComponentType(o vdom.View) bool   { _, ok := o.(counter); return ok }

func (c counter) Render(ctx vdom.RenderContext) any {
	*c.handle = vdom.UseState(ctx, vdom.Location{Line: c.loc.Line, Column: 1}, func() int { return 0 })
	count := c.handle.Get()

	label := countLabel{loc: vdom.Location{Line: c.loc.Line, Column: 2}, text: labelStyle.Render(fmt.Sprintf("count: %d", count))}
	hint := countLabel{loc: vdom.Location{Line: c.loc.Line, Column: 3}, text: hintStyle.Render("up/down to change, q to quit")}
	return vdom.Children{Views: []vdom.View{label, hint}}
}

func (c counter) HandleEvent(attr string, payload any) {
	if attr != "key" {
		return
	}
	switch payload.(string) {
	case "up":
		c.handle.Set(func(n int) int { return n + 1 })
	case "down":
		c.handle.Set(func(n int) int { return n - 1 })
	}
}

var _ vdom.EventedView = counter{}

// countLabel is a leaf native text view.
type countLabel struct {
	loc  vdom.Location
	text string
}

func (l countLabel) Location() vdom.Location             { return l.loc }
func (l countLabel) Key() (string, bool)                 { return "", false }
func (l countLabel) NativeType() (vdom.NativeType, bool) { return vdom.NativeType{Name: termrenderer.TypeText}, true }
func (l countLabel) Render(vdom.RenderContext) any        { return vdom.Children{} }
func (l countLabel) Updated(vdom.Generation) bool         { return true }
func (l countLabel) SameComponentType(o vdom.View) bool   { _, ok := o.(countLabel); return ok }
func (l countLabel) Text() string                         { return l.text }

var _ termrenderer.TextView = countLabel{}

package termrenderer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arborview/vdomx/pkg/vdom"
)

// drainInterval is how often Model polls the scheduler for pending
// turns, mirroring the teacher's asyncWrapperModel tick cadence.
const drainInterval = 16 * time.Millisecond

// drainTickMsg is sent periodically to drive Root.Drain.
type drainTickMsg time.Time

// Model is a tea.Model driving a mounted Root: it polls the scheduler
// for pending turns, forwards key presses into the tree as native
// "key" events, and renders the current tree on every frame. Grounded
// on the teacher's asyncWrapperModel, generalized from a single
// component's Update/View to this core's Root.Drain/Renderer.View
// pair.
type Model struct {
	root     *vdom.Root
	renderer *Renderer

	// QuitKeys, if set, ends the program instead of forwarding the key
	// into the tree. "q" and "ctrl+c" are common choices.
	QuitKeys map[string]bool
}

// NewModel wraps root and its Renderer as a tea.Model ready to hand to
// tea.NewProgram.
func NewModel(root *vdom.Root, renderer *Renderer) *Model {
	return &Model{root: root, renderer: renderer}
}

func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case drainTickMsg:
		for m.root.Drain() {
		}
		return m, m.tickCmd()
	case tea.KeyMsg:
		key := msg.String()
		if m.QuitKeys[key] {
			return m, tea.Quit
		}
		m.renderer.dispatchKey(key)
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	return m.renderer.View()
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(drainInterval, func(t time.Time) tea.Msg {
		return drainTickMsg(t)
	})
}

var _ tea.Model = (*Model)(nil)

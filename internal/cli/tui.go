package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
	"github.com/matzehuels/kitchenrun/pkg/kitchen"
	"github.com/matzehuels/kitchenrun/pkg/pipeline"
	"github.com/matzehuels/kitchenrun/pkg/planner"
	"github.com/matzehuels/kitchenrun/pkg/reorder"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// lengthStep is how far +/- move the target length.
const lengthStep = 0.1

// tuiCommand creates the interactive configurator command.
func (c *CLI) tuiCommand() *cobra.Command {
	var (
		kf     kitchenFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Configure a kitchen interactively",
		Long: `Tui opens an interactive configurator. Reorder modules by list drag
(space to pick up, space or enter to drop) or by sliding them along the run
(s, then ←/→ and enter), change options and write the drawing with w.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, err := c.loadCatalog(cfg)
			if err != nil {
				return err
			}
			opts, err := kf.options(cmd, cat)
			if err != nil {
				return err
			}
			k, err := newConfigurator(cat, opts)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			m := NewConfiguratorModel(ctx, k, runner, output)
			if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
				return err
			}
			return nil
		},
	}

	kf.register(cmd)
	c.completeKitchenFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", defaultOutput+".svg", "file written by w")

	return cmd
}

// newConfigurator builds the starting configurator. Without --modules it
// starts from the default lineup, skipping ids the catalog lacks.
func newConfigurator(cat *catalog.Catalog, opts pipeline.Options) (*kitchen.Configurator, error) {
	if opts.Modules != nil {
		return kitchen.New(cat, opts.Modules, *opts.Selection)
	}
	k, err := kitchen.NewDefault(cat)
	if err != nil {
		return nil, err
	}
	if err := k.SetSelection(*opts.Selection); err != nil {
		return nil, err
	}
	return k, nil
}

// =============================================================================
// ConfiguratorModel - Interactive kitchen configuration
// =============================================================================

// ConfiguratorModel is the bubbletea model driving a kitchen.Configurator
// from the keyboard.
type ConfiguratorModel struct {
	k      *kitchen.Configurator
	ctx    context.Context
	runner *pipeline.Runner
	output string

	// Cursor is the base index under the cursor.
	Cursor int

	// addIdx selects the catalog module added by 'a'.
	addIdx  int
	addable []catalog.Module

	// slideFrom and slideSteps track the simulated pointer of a slide drag.
	slideFrom  float64
	slideSteps int

	status string
}

// savedMsg reports the result of writing the drawing.
type savedMsg struct {
	path string
	err  error
}

// NewConfiguratorModel creates a configurator model over k. The runner
// renders the drawing written by w.
func NewConfiguratorModel(ctx context.Context, k *kitchen.Configurator, runner *pipeline.Runner, output string) ConfiguratorModel {
	return ConfiguratorModel{
		k:       k,
		ctx:     ctx,
		runner:  runner,
		output:  output,
		addable: k.Catalog().Placeable(),
	}
}

func (m ConfiguratorModel) Init() tea.Cmd {
	return nil
}

func (m ConfiguratorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.err != nil {
			m.status = styleIconError.Render(iconError) + " " + StyleWarning.Render(msg.err.Error())
		} else {
			m.status = StyleSuccess.Render(iconSuccess+" wrote ") + msg.path
		}
		return m, nil
	case tea.KeyMsg:
		if m.k.Dragging() {
			return m.updateSlide(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

// updateSlide handles keys while a module slides along the run.
func (m ConfiguratorModel) updateSlide(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m.slideSteps--
		m.k.Pointer(reorder.Event{Kind: reorder.PointerMove, X: m.pointerX(), Projected: true})
	case "right", "l":
		m.slideSteps++
		m.k.Pointer(reorder.Event{Kind: reorder.PointerMove, X: m.pointerX(), Projected: true})
	case "enter", "s":
		before := m.k.Order()
		if m.k.Pointer(reorder.Event{Kind: reorder.PointerUp, X: m.pointerX(), Projected: true}) {
			m.Cursor = movedTo(before, m.k.Order(), m.Cursor)
			m.status = "moved"
		} else {
			m.status = "dropped in place"
		}
	case "esc":
		m.k.Pointer(reorder.Event{Kind: reorder.AbandonDrag})
		m.status = "slide abandoned"
	}
	return m, nil
}

// updateBrowse handles keys outside a slide drag.
func (m ConfiguratorModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.k.Order())
	_, listing := m.k.ListDragFrom()
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if listing {
			// Dropping on the source cancels without a change.
			from, _ := m.k.ListDragFrom()
			m.k.DropListDrag(from)
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < n-1 {
			m.Cursor++
		}
	case " ", "space", "enter":
		if listing {
			changed, err := m.k.DropListDrag(m.Cursor)
			m.setErr(err)
			if changed {
				m.status = "moved"
			}
		} else if n > 0 {
			m.setErr(m.k.StartListDrag(m.Cursor))
		}
	case "s":
		if n == 0 {
			return m, nil
		}
		p, ok := m.basePlacement(m.Cursor)
		if !ok {
			return m, nil
		}
		m.slideFrom, m.slideSteps = p.Center(), 0
		m.k.Pointer(reorder.Event{Kind: reorder.PointerDown, Index: m.Cursor, X: m.slideFrom, Projected: true})
	case "+", "=":
		m.setErr(m.k.SetTargetLength(m.k.Selection().TargetLength + lengthStep))
	case "-", "_":
		m.setErr(m.k.SetTargetLength(m.k.Selection().TargetLength - lengthStep))
	case "[":
		if len(m.addable) > 0 {
			m.addIdx = (m.addIdx + len(m.addable) - 1) % len(m.addable)
		}
	case "]":
		if len(m.addable) > 0 {
			m.addIdx = (m.addIdx + 1) % len(m.addable)
		}
	case "a":
		if len(m.addable) > 0 {
			if err := m.k.Add(m.addable[m.addIdx].ID); err != nil {
				m.setErr(err)
			} else {
				m.Cursor = len(m.k.Order()) - 1
			}
		}
	case "x", "delete", "backspace":
		if n > 0 {
			m.setErr(m.k.Remove(m.Cursor))
			if m.Cursor >= len(m.k.Order()) && m.Cursor > 0 {
				m.Cursor--
			}
		}
	case "u":
		m.updateSelection(func(s *kitchen.Selection) { s.ShowUpper = !s.ShowUpper })
	case "o":
		m.updateSelection(func(s *kitchen.Selection) { s.ShowHood = !s.ShowHood })
	case "g":
		m.updateSelection(func(s *kitchen.Selection) {
			if s.FinishIn(m.k.Catalog()).IsGloss() {
				s.Finish = catalog.FinishMatte
			} else {
				s.Finish = catalog.FinishGloss
			}
		})
	case "f":
		m.updateSelection(func(s *kitchen.Selection) {
			s.FacadeID = nextID(m.k.Catalog().Facades, s.FacadeID, func(f catalog.Facade) string { return f.ID })
			s.Finish = ""
		})
	case "c":
		m.updateSelection(func(s *kitchen.Selection) {
			s.CountertopID = nextID(m.k.Catalog().Countertops, s.CountertopID, func(t catalog.Countertop) string { return t.ID })
		})
	case "b":
		m.updateSelection(func(s *kitchen.Selection) {
			s.CarcassID = nextID(m.k.Catalog().Carcasses, s.CarcassID, func(k catalog.Carcass) string { return k.ID })
		})
	case "w":
		return m, m.save()
	}
	return m, nil
}

func (m *ConfiguratorModel) updateSelection(fn func(*kitchen.Selection)) {
	sel := m.k.Selection()
	fn(&sel)
	m.setErr(m.k.SetSelection(sel))
}

func (m *ConfiguratorModel) setErr(err error) {
	if err != nil {
		m.status = styleIconError.Render(iconError) + " " + StyleWarning.Render(err.Error())
	}
}

func (m ConfiguratorModel) pointerX() float64 {
	return m.slideFrom + float64(m.slideSteps)*planner.GridStep
}

func (m ConfiguratorModel) basePlacement(i int) (planner.Placement, bool) {
	for _, p := range m.k.Run().Placements {
		if p.BaseIndex == i {
			return p, true
		}
	}
	return planner.Placement{}, false
}

// movedTo returns the index the module at from occupies after a move
// turned before into after.
func movedTo(before, after []catalog.Module, from int) int {
	lo, hi := -1, -1
	for i := range after {
		if i < len(before) && after[i].ID != before[i].ID {
			if lo < 0 {
				lo = i
			}
			hi = i
		}
	}
	switch {
	case lo < 0:
		return from
	case from == lo:
		return hi
	}
	return lo
}

// save renders the current snapshot through the runner and writes it.
func (m ConfiguratorModel) save() tea.Cmd {
	snap := m.k.Snapshot()
	opts := pipeline.Options{
		Catalog:   m.k.Catalog(),
		Formats:   []string{pipeline.FormatSVG},
		ShowPrice: true,
	}
	if strings.EqualFold(filepath.Ext(m.output), "."+pipeline.FormatJSON) {
		opts.Formats = []string{pipeline.FormatJSON}
	}
	runner, ctx, path := m.runner, m.ctx, m.output
	return func() tea.Msg {
		if err := opts.ValidateForRender(); err != nil {
			return savedMsg{err: err}
		}
		artifacts, err := runner.Render(ctx, snap, opts)
		if err != nil {
			return savedMsg{err: err}
		}
		if err := writeFile(path, artifacts[opts.Formats[0]]); err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{path: path}
	}
}

func (m ConfiguratorModel) View() string {
	var b strings.Builder
	snap := m.k.Snapshot()
	sel := snap.Selection

	b.WriteString(StyleTitle.Render("Kitchen Run"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%.2f m target · %.2f m planned · %d fillers",
		sel.TargetLength, snap.Run.Plan.Total, snap.Run.Plan.FillerCount())))
	b.WriteString("\n")
	b.WriteString(m.selectionLine(sel))
	b.WriteString("\n\n")

	b.WriteString(placementTable(snap.Display, m.displayRow(snap.Display)))
	b.WriteString("\n")
	b.WriteString(priceTable(snap.Price))
	b.WriteString("\n")

	switch from, listing := m.k.ListDragFrom(); {
	case snap.Drag != nil:
		b.WriteString(listSelectedStyle.Render(fmt.Sprintf("sliding #%d at %.1f m", snap.Drag.Index, snap.Drag.X)))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("←/→ slide  ⏎ drop  esc abandon"))
	case listing:
		b.WriteString(listSelectedStyle.Render(fmt.Sprintf("moving #%d", from)))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("↑/↓ choose target  space/⏎ drop  esc cancel"))
	default:
		if snap.Overflow {
			b.WriteString(StyleWarning.Render(iconWarning + " modules exceed the target length"))
			b.WriteString("\n")
		}
		if len(m.addable) > 0 {
			b.WriteString(listNormalStyle.Render("add: "))
			b.WriteString(listSelectedStyle.Render(m.addable[m.addIdx].Name))
			b.WriteString("\n")
		}
		b.WriteString(listDimStyle.Render("↑/↓ move  space list drag  s slide  +/- length  [/] a add  x remove"))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("f facade  g finish  c countertop  b carcass  u upper  o hood  w write  q quit"))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}
	return b.String()
}

func (m ConfiguratorModel) selectionLine(sel kitchen.Selection) string {
	cat := m.k.Catalog()
	facade, top, carcass := sel.FacadeID, sel.CountertopID, sel.CarcassID
	if f, ok := cat.Facade(sel.FacadeID); ok {
		facade = f.Label
	}
	if t, ok := cat.Countertop(sel.CountertopID); ok {
		top = t.Name
	}
	if k, ok := cat.Carcass(sel.CarcassID); ok {
		carcass = k.Label
	}
	parts := []string{
		"facade " + StyleValue.Render(facade) + " (" + string(sel.FinishIn(cat)) + ")",
		"top " + StyleValue.Render(top),
		"carcass " + StyleValue.Render(carcass),
		"upper " + onOff(sel.ShowUpper),
		"hood " + onOff(sel.ShowHood),
	}
	return listDimStyle.Render("  ") + strings.Join(parts, listDimStyle.Render(" · "))
}

// displayRow maps the cursor's base index to its row in display.
func (m ConfiguratorModel) displayRow(display []planner.Placement) int {
	for i, p := range display {
		if p.BaseIndex == m.Cursor {
			return i
		}
	}
	return -1
}

func onOff(v bool) string {
	if v {
		return StyleSuccess.Render("on")
	}
	return listDimStyle.Render("off")
}

// nextID returns the id following cur in items, wrapping around.
func nextID[T any](items []T, cur string, id func(T) string) string {
	if len(items) == 0 {
		return cur
	}
	for i, it := range items {
		if id(it) == cur {
			return id(items[(i+1)%len(items)])
		}
	}
	return id(items[0])
}

package cli

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/signupboard/pkg/board"
	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/pipeline"
)

const (
	previewLabelWidth = 16
	previewMinAxis    = 24
)

var (
	styleGame          = lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(colorWhite)
	styleGameFull      = lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(colorGray)
	styleGameHighlight = lipgloss.NewStyle().Background(colorYellow).Foreground(lipgloss.Color("16")).Bold(true)
	styleNoSchedule    = lipgloss.NewStyle().Foreground(colorRed).Italic(true)
	styleTabActive     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	styleTab           = lipgloss.NewStyle().Foreground(colorGray)
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		lf        layoutFlags
		day       string
		highlight string
	)

	cmd := &cobra.Command{
		Use:   "preview <event-file|board.json|event-id>",
		Short: "Browse a signup board in the terminal",
		Long: `Show the lane chart of a board in the terminal, one day at a time.

Keys: ←/→ or h/l switch days, ↑/↓ scroll, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, lf.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			in, err := resolveInput(ctx, runner, args[0])
			if err != nil {
				return err
			}
			b := in.Board
			if b == nil {
				var opts pipeline.Options
				lf.apply(cmd, &opts)
				built, err := runner.Build(ctx, in.Event, opts)
				if err != nil {
					return err
				}
				b = &built
			}

			m, err := newPreviewModel(*b, day, highlight)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&day, "day", "", "day shown first (default the first day)")
	cmd.Flags().StringVar(&highlight, "highlight", "", "game id to emphasize")
	return cmd
}

// previewModel is the bubbletea model of the preview command.
type previewModel struct {
	board     board.Board
	day       int
	highlight string
	viewport  viewport.Model
	ready     bool
}

func newPreviewModel(b board.Board, day, highlight string) (*previewModel, error) {
	if len(b.Days) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "board %s has no days", b.EventID)
	}
	m := &previewModel{board: b, highlight: highlight}
	if day != "" {
		i := slices.IndexFunc(b.Days, func(d board.DayBoard) bool { return d.DayID == day })
		if i < 0 {
			return nil, errors.New(errors.ErrCodeDayNotFound, "day %q is not on the board", day)
		}
		m.day = i
	}
	return m, nil
}

func (m *previewModel) Init() tea.Cmd { return nil }

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "tab":
			m.switchDay(1)
			return m, nil
		case "left", "h", "shift+tab":
			m.switchDay(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		// Header and footer take one line each.
		m.viewport = viewport.New(msg.Width, max(1, msg.Height-2))
		m.ready = true
		m.viewport.SetContent(m.content())
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *previewModel) switchDay(delta int) {
	n := len(m.board.Days)
	m.day = ((m.day+delta)%n + n) % n
	if m.ready {
		m.viewport.SetContent(m.content())
		m.viewport.GotoTop()
	}
}

func (m *previewModel) content() string {
	return renderDayText(m.board.Days[m.day], m.viewport.Width, m.highlight)
}

func (m *previewModel) View() string {
	if !m.ready {
		return "loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.viewport.View(), m.footerView())
}

func (m *previewModel) headerView() string {
	var sb strings.Builder
	name := m.board.EventName
	if name == "" {
		name = m.board.EventID
	}
	sb.WriteString(StyleTitle.Render(name))
	for i, d := range m.board.Days {
		label := d.Label
		if label == "" {
			label = d.DayID
		}
		sb.WriteString("  ")
		if i == m.day {
			sb.WriteString(styleTabActive.Render(label))
		} else {
			sb.WriteString(styleTab.Render(label))
		}
	}
	return sb.String()
}

func (m *previewModel) footerView() string {
	return StyleDim.Render("(←/→ h/l)day  (↑/↓)scroll  (q)uit")
}

// renderDayText draws one day as text lanes that fit in width columns.
func renderDayText(d board.DayBoard, width int, highlight string) string {
	var sb strings.Builder
	if d.Date != "" {
		sb.WriteString(StyleDim.Render(d.Date) + "\n")
	}
	if !d.Available() {
		sb.WriteString(styleNoSchedule.Render("No schedule: "+d.Unavailable) + "\n")
		return sb.String()
	}

	cols := max(previewMinAxis, width-previewLabelWidth-1)
	sb.WriteString(markerLine(d, cols) + "\n")

	for _, t := range d.Tables {
		name := t.Name
		if name == "" {
			name = t.TableID
		}
		for lane := 0; lane < max(1, t.Lanes); lane++ {
			label := ""
			if lane == 0 {
				label = name
			}
			sb.WriteString(fit(label, previewLabelWidth))
			sb.WriteString(laneLine(t.Placements, lane, cols, highlight))
			sb.WriteString("\n")
		}
		if t.Hidden > 0 || len(t.Dropped) > 0 {
			sb.WriteString(strings.Repeat(" ", previewLabelWidth))
			sb.WriteString(StyleDim.Render(fmt.Sprintf("%d outside the day, %d not shown", t.Hidden, len(t.Dropped))))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// column maps an axis percentage to a column in [0, cols].
func column(pct float64, cols int) int {
	c := int(math.Round(pct / 100 * float64(cols)))
	return min(max(c, 0), cols)
}

func markerLine(d board.DayBoard, cols int) string {
	line := []rune(strings.Repeat(" ", previewLabelWidth+cols))
	place := func(label []rune, pct float64) int {
		pos := previewLabelWidth + column(pct, cols)
		return max(0, min(pos, len(line)-len(label)))
	}

	// The final marker is always shown; hour labels that would collide
	// with it are skipped.
	limit := len(line)
	for _, mk := range d.Markers {
		if mk.Final {
			label := []rune(mk.Label())
			limit = place(label, mk.Left)
			copy(line[limit:], label)
		}
	}

	next := 0
	for _, mk := range d.Markers {
		if mk.Final {
			continue
		}
		label := []rune(mk.Label())
		pos := place(label, mk.Left)
		if pos < next || pos+len(label) >= limit {
			continue
		}
		copy(line[pos:], label)
		next = pos + len(label) + 1
	}
	return StyleDim.Render(strings.TrimRight(string(line), " "))
}

func laneLine(placements []board.Placement, lane, cols int, highlight string) string {
	var inLane []board.Placement
	for _, p := range placements {
		if p.Lane == lane {
			inLane = append(inLane, p)
		}
	}
	slices.SortFunc(inLane, func(a, b board.Placement) int {
		switch {
		case a.Left < b.Left:
			return -1
		case a.Left > b.Left:
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})

	var sb strings.Builder
	cursor := 0
	for _, p := range inLane {
		start := max(column(p.Left, cols), cursor)
		end := max(column(p.Right(), cols), start+1)
		end = min(end, cols)
		if start >= end {
			continue
		}
		sb.WriteString(StyleDim.Render(strings.Repeat("·", start-cursor)))

		style := styleGame
		switch {
		case highlight != "" && p.ID == highlight:
			style = styleGameHighlight
		case p.Full():
			style = styleGameFull
		}
		sb.WriteString(style.Render(fit(" "+p.Name, end-start)))
		cursor = end
	}
	sb.WriteString(StyleDim.Render(strings.Repeat("·", cols-cursor)))
	return sb.String()
}

// fit truncates or pads s to exactly n runes.
func fit(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > n {
		if n == 1 {
			return "▌"
		}
		return string(r[:n-1]) + "…"
	}
	return s + strings.Repeat(" ", n-len(r))
}

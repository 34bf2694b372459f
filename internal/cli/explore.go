package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsep/pkg/io"
	"github.com/matzehuels/gridsep/pkg/separation"
	"github.com/matzehuels/gridsep/pkg/tiling"
)

// List styles
var (
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	listPreviewStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// ExploreModel - Interactive separation selection
// =============================================================================

// ExploreModel is the bubbletea model listing every candidate separation of
// one pass, with a preview of the highlighted one.
type ExploreModel struct {
	Input      *tiling.Tiling
	Candidates []separation.Separation
	Cursor     int
	Offset     int
	Height     int
	Selected   *separation.Separation
}

// NewExploreModel creates a model over the given candidates.
func NewExploreModel(input *tiling.Tiling, candidates []separation.Separation) ExploreModel {
	return ExploreModel{
		Input:      input,
		Candidates: candidates,
		Height:     10,
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Candidates)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.Candidates)-1, 0)
		case "enter":
			if len(m.Candidates) == 0 {
				return m, nil
			}
			sel := m.Candidates[m.Cursor]
			m.Selected = &sel
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height/3, 5)
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *ExploreModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Separation"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.Candidates) == 0 {
		b.WriteString(listDimStyle.Render("  no separations"))
		return b.String()
	}

	inCols, inRows := m.Input.Dimensions()
	end := min(m.Offset+m.Height, len(m.Candidates))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Candidates[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		cols, rs := s.Tiling.Dimensions()
		rows = append(rows, []string{
			cursor,
			fmt.Sprint(i + 1),
			fmt.Sprintf("%d → %d", inRows, len(s.RowOrder)),
			fmt.Sprintf("%d → %d", inCols, len(s.ColOrder)),
			fmt.Sprintf("%d×%d", cols, rs),
			fmt.Sprint(len(s.Tiling.ActiveCells())),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Rows", "Cols", "Grid", "Active").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listPreviewStyle.Render(strings.TrimRight(m.Candidates[m.Cursor].Tiling.String(), "\n")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Candidates))))

	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// exploreOpts holds the command-line flags for the explore command.
type exploreOpts struct {
	all        bool   // combine every order, not only the best ones
	limit      int    // stop collecting candidates after this many
	transitive bool   // close inequalities through positive cells
	output     string // write the chosen tiling here
}

// exploreCommand creates the explore command, an interactive browser over
// the candidate separations of one pass.
func (c *CLI) exploreCommand() *cobra.Command {
	opts := exploreOpts{limit: 200}

	cmd := &cobra.Command{
		Use:   "explore FILE",
		Short: "Browse the candidate separations of a tiling",
		Long: `Explore combines the row and column orders of one separation pass and lists
the tiling each combination produces. Choosing one prints it, and -o writes
it as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("all") {
				opts.all = !c.Config.Search.BestOnly
			}
			if !cmd.Flags().Changed("transitive") {
				opts.transitive = c.Config.Search.Transitive
			}
			return c.runExplore(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "combine every order, not only the best ones")
	cmd.Flags().IntVar(&opts.limit, "limit", opts.limit, "maximum number of candidates to list")
	cmd.Flags().BoolVar(&opts.transitive, "transitive", false, "close inequalities through cells known to hold a point")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the chosen tiling to this JSON file")

	return cmd
}

func (c *CLI) runExplore(cmd *cobra.Command, file string, opts exploreOpts) error {
	t, err := io.ImportTiling(file)
	if err != nil {
		return err
	}
	candidates := collectSeparations(t, opts)
	if len(candidates) == 0 {
		printInfo(c.stdout, "%s has no active cells to separate", file)
		return nil
	}

	p := tea.NewProgram(NewExploreModel(t, candidates),
		tea.WithContext(cmd.Context()),
		tea.WithOutput(c.stdout))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("explore: %w", err)
	}
	m, ok := final.(ExploreModel)
	if !ok || m.Selected == nil {
		printInfo(c.stdout, "No separation selected")
		return nil
	}

	printSuccess(c.stdout, "Selected separation")
	printTiling(c.stdout, m.Selected.Tiling)
	if opts.output != "" {
		if err := io.ExportTiling(m.Selected.Tiling, opts.output); err != nil {
			return err
		}
		printFile(c.stdout, opts.output)
	}
	return nil
}

// collectSeparations gathers up to opts.limit candidate separations.
func collectSeparations(t *tiling.Tiling, opts exploreOpts) []separation.Separation {
	p := separation.NewPass(t, separation.WithTransitivity(opts.transitive))
	if len(p.Cells()) == 0 {
		return nil
	}
	var out []separation.Separation
	for s := range p.Separations(!opts.all) {
		out = append(out, s)
		if opts.limit > 0 && len(out) >= opts.limit {
			break
		}
	}
	return out
}

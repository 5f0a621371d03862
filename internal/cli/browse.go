package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/live-image-tracking-tools/gefftracks/pkg/layer"
	"github.com/live-image-tracking-tools/gefftracks/pkg/pipeline"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Interactively browse tracklets in the terminal",
		Long: `Interactively browse the tracklets of a lineage file.

The browse command decomposes the file and opens a terminal UI listing
every tracklet with its member count and parents. Select a tracklet to
expand its member nodes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0], noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, input string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Load(ctx, pipeline.Options{Input: input, Logger: loggerFromContext(ctx)})
	if err != nil {
		return err
	}

	model := newTrackletListModel(input, result.Tracks)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}

// trackletEntry is one row of the browse list.
type trackletEntry struct {
	ID      int
	Members []string
	Parents []int
}

// trackletListModel is the bubbletea model for tracklet browsing.
type trackletListModel struct {
	Title    string
	Entries  []trackletEntry
	Cursor   int
	Expanded map[int]bool
	Height   int
	Offset   int
}

// newTrackletListModel builds the browse model from a tracks table.
func newTrackletListModel(title string, tracks *layer.Tracks) trackletListModel {
	members := make(map[int][]string)
	for _, row := range tracks.Rows {
		members[row.TrackletID] = append(members[row.TrackletID], row.NodeID)
	}

	entries := make([]trackletEntry, 0, len(members))
	for _, id := range tracks.TrackletIDs() {
		entries = append(entries, trackletEntry{
			ID:      id,
			Members: members[id],
			Parents: tracks.Parents[id],
		})
	}

	return trackletListModel{
		Title:    title,
		Entries:  entries,
		Expanded: make(map[int]bool),
		Height:   15,
	}
}

func (m trackletListModel) Init() tea.Cmd {
	return nil
}

func (m trackletListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			if len(m.Entries) > 0 {
				id := m.Entries[m.Cursor].ID
				m.Expanded[id] = !m.Expanded[id]
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m trackletListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		noun := "nodes"
		if len(e.Members) == 1 {
			noun = "node"
		}
		line := fmt.Sprintf("tracklet %d (%d %s)", e.ID, len(e.Members), noun)
		if len(e.Parents) > 0 {
			line += listDimStyle.Render(fmt.Sprintf("  parents: %s", joinInts(e.Parents)))
		}
		b.WriteString(cursor + style.Render(line) + "\n")

		if m.Expanded[e.ID] {
			for _, node := range e.Members {
				b.WriteString("      " + listDimStyle.Render(node) + "\n")
			}
		}
	}

	return b.String()
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/genomap/genomap/pkg/pipeline"
	"github.com/genomap/genomap/pkg/seqmap"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command, an interactive view of a
// record's feature table.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [file]",
		Short: "Interactively inspect a record's feature table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := pipeline.Parse(pipeline.Options{Source: args[0]})
			if err != nil {
				return err
			}

			ses := seqmap.NewSession(rec.SequenceLength(), rec.Locus.Circular)
			features := pipeline.ResolveFeatures(rec, ses)
			if len(features) == 0 {
				printInfo("Record has no drawable features")
				return nil
			}

			model := newFeatureListModel(rec.Locus.Name, rec.SequenceLength(), features)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// featureListModel is the bubbletea model for feature browsing. The list
// scrolls with a window of Height rows; the detail pane shows the selected
// feature's qualifiers.
type featureListModel struct {
	Locus    string
	SeqLen   int
	Features []seqmap.Feature
	Cursor   int
	Height   int
	Offset   int
}

func newFeatureListModel(locus string, seqLen int, features []seqmap.Feature) featureListModel {
	return featureListModel{
		Locus:    locus,
		SeqLen:   seqLen,
		Features: features,
		Height:   15,
	}
}

func (m featureListModel) Init() tea.Cmd {
	return nil
}

func (m featureListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Features)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor, m.Offset = 0, 0
		case "G":
			m.Cursor = len(m.Features) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m featureListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s · %d bp", m.Locus, m.SeqLen)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Features) {
		end = len(m.Features)
	}

	for i := m.Offset; i < end; i++ {
		f := m.Features[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		span := fmt.Sprintf("%d..%d", f.Span.Start+1, f.Span.End)
		if f.Span.CrossesOrigin {
			span += " ↩"
		}

		strand := "+"
		if len(f.Segments) > 0 && f.Segments[0].Reverse {
			strand = "-"
		}

		line := fmt.Sprintf("%s%-14s %-18s %s %s", cursor, f.Type, span, strand, f.Label())
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Features))))

	return b.String()
}

// detailView renders the selected feature's qualifiers.
func (m featureListModel) detailView() string {
	f := m.Features[m.Cursor]
	if len(f.Info) == 0 {
		return listDimStyle.Render("  no qualifiers")
	}

	var b strings.Builder
	for _, k := range sortedKeys(f.Info) {
		b.WriteString("  ")
		b.WriteString(listDimStyle.Render("/" + k + "="))
		b.WriteString(listNormalStyle.Render(f.Info[k]))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

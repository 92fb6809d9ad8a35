package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yoanbernabeu/slotsave/config"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the saves directory interactively",
	Long: `Open a terminal UI listing every file in the saves directory. Select a file
to see its decoded contents (slot files) or its dimensions (textures).

Keys: up/down or k/j to move, enter to preview, r to reload, q to quit.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	s, _, err := openSaver()
	if err != nil {
		return err
	}

	preview := func(name string) (string, error) {
		if strings.HasSuffix(name, config.TextureExt) {
			img, found, err := s.LoadTexture(strings.TrimSuffix(name, config.TextureExt))
			if err != nil {
				return "", err
			}
			if !found {
				return "", fmt.Errorf("%w: %s", ErrSlotNotFound, name)
			}
			b := img.Bounds()
			return fmt.Sprintf("texture %dx%d", b.Dx(), b.Dy()), nil
		}

		v, found, err := s.Peek(name)
		if err != nil {
			return "", err
		}
		if !found {
			return "", fmt.Errorf("%w: %s", ErrSlotNotFound, name)
		}
		body, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(body), nil
	}

	m := newBrowseModel(s.Dir(), s.Files, preview)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout())).Run()
	return err
}

type filesMsg struct {
	files []string
	err   error
}

type previewMsg struct {
	file string
	text string
	err  error
}

// browseModel is the bubbletea model behind `slotsave browse`.
type browseModel struct {
	dir     string
	list    func() ([]string, error)
	preview func(string) (string, error)

	files    []string
	cursor   int
	selected string
	text     string
	err      error

	width    int
	height   int
	quitting bool
}

func newBrowseModel(dir string, list func() ([]string, error), preview func(string) (string, error)) browseModel {
	return browseModel{dir: dir, list: list, preview: preview}
}

func (m browseModel) Init() tea.Cmd {
	return m.loadFiles
}

func (m browseModel) loadFiles() tea.Msg {
	files, err := m.list()
	return filesMsg{files: files, err: err}
}

func (m browseModel) loadPreview(name string) tea.Cmd {
	return func() tea.Msg {
		text, err := m.preview(name)
		return previewMsg{file: name, text: text, err: err}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case filesMsg:
		m.files, m.err = msg.files, msg.err
		if m.cursor >= len(m.files) {
			m.cursor = max(0, len(m.files)-1)
		}
		if !m.contains(m.selected) {
			m.selected, m.text = "", ""
		}

	case previewMsg:
		m.selected = msg.file
		m.text, m.err = msg.text, msg.err

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.files)-1 {
				m.cursor++
			}
		case "enter", " ":
			if len(m.files) > 0 {
				return m, m.loadPreview(m.files[m.cursor])
			}
		case "r":
			return m, m.loadFiles
		}
	}
	return m, nil
}

func (m browseModel) contains(name string) bool {
	for _, f := range m.files {
		if f == name {
			return true
		}
	}
	return false
}

func (m browseModel) View() string {
	if m.quitting {
		return ""
	}

	var list strings.Builder
	list.WriteString(titleStyle.Render("Saves") + "\n")
	list.WriteString(mutedStyle.Render(m.dir) + "\n\n")
	if len(m.files) == 0 {
		list.WriteString(mutedStyle.Render("(empty)") + "\n")
	}
	for i, f := range m.files {
		if i == m.cursor {
			list.WriteString(selectStyle.Render("> "+f) + "\n")
		} else {
			list.WriteString("  " + f + "\n")
		}
	}

	body := list.String()
	if m.selected != "" || m.err != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.previewView())
	}

	help := mutedStyle.Render("↑/↓ move • enter preview • r reload • q quit")
	return body + "\n" + help + "\n"
}

func (m browseModel) previewView() string {
	if m.err != nil {
		return previewStyle.Render(errorStyle.Render(m.err.Error()))
	}

	text := m.text
	if limit := m.height - 6; limit > 0 {
		lines := strings.Split(text, "\n")
		if len(lines) > limit {
			text = strings.Join(lines[:limit], "\n") + "\n…"
		}
	}
	return previewStyle.Render(titleStyle.Render(m.selected) + "\n" + text)
}

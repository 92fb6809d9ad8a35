package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestBrowseModel(files []string) browseModel {
	return newBrowseModel("/saves",
		func() ([]string, error) { return files, nil },
		func(name string) (string, error) {
			if name == "broken.json" {
				return "", errors.New("decode failed")
			}
			return "contents of " + name, nil
		},
	)
}

func update(t *testing.T, m browseModel, msg tea.Msg) (browseModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(browseModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return bm, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseModel_LoadsAndNavigates(t *testing.T) {
	m := newTestBrowseModel([]string{"Profile_A.json", "SData.json", "icon.png"})

	m, _ = update(t, m, m.Init()())
	if len(m.files) != 3 {
		t.Fatalf("expected 3 files, got %v", m.files)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, keyRunes("j"))
	m, _ = update(t, m, keyRunes("j"))
	if m.cursor != 2 {
		t.Errorf("cursor should stop at the last file, got %d", m.cursor)
	}

	m, _ = update(t, m, keyRunes("k"))
	if m.cursor != 1 {
		t.Errorf("expected cursor 1, got %d", m.cursor)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should request a preview")
	}
	m, _ = update(t, m, cmd())
	if m.selected != "SData.json" || m.text != "contents of SData.json" {
		t.Errorf("unexpected preview state: %q %q", m.selected, m.text)
	}

	view := m.View()
	if !strings.Contains(view, "> SData.json") || !strings.Contains(view, "contents of SData.json") {
		t.Errorf("view missing selection or preview:\n%s", view)
	}
}

func TestBrowseModel_PreviewError(t *testing.T) {
	m := newTestBrowseModel([]string{"broken.json"})
	m, _ = update(t, m, m.Init()())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())

	if m.err == nil {
		t.Fatal("expected preview error")
	}
	if !strings.Contains(m.View(), "decode failed") {
		t.Errorf("view should show the error:\n%s", m.View())
	}
}

func TestBrowseModel_ReloadDropsVanishedSelection(t *testing.T) {
	files := []string{"a.json", "b.json"}
	m := newBrowseModel("/saves",
		func() ([]string, error) { return files, nil },
		func(name string) (string, error) { return name, nil },
	)
	m, _ = update(t, m, m.Init()())
	m, _ = update(t, m, keyRunes("j"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())

	files = []string{"a.json"}
	m, cmd = update(t, m, keyRunes("r"))
	m, _ = update(t, m, cmd())

	if m.cursor != 0 {
		t.Errorf("cursor should be clamped, got %d", m.cursor)
	}
	if m.selected != "" {
		t.Errorf("selection of a deleted file should be cleared, got %q", m.selected)
	}
}

func TestBrowseModel_Quit(t *testing.T) {
	m := newTestBrowseModel(nil)
	m, _ = update(t, m, m.Init()())

	if !strings.Contains(m.View(), "(empty)") {
		t.Errorf("expected empty marker:\n%s", m.View())
	}

	m, cmd := update(t, m, keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

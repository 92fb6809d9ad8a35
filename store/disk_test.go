package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDiskStore_ReadMissingIsAbsent(t *testing.T) {
	s := NewDiskStore()
	dir := t.TempDir()

	text, found, err := s.ReadText(dir, "SData.json")
	if err != nil {
		t.Fatalf("ReadText error = %v, want nil", err)
	}
	if found || text != "" {
		t.Errorf("ReadText = (%q, %v), want absent", text, found)
	}

	data, found, err := s.ReadBytes(filepath.Join(dir, "nope"), "portrait.png")
	if err != nil || found || data != nil {
		t.Errorf("ReadBytes on missing dir = (%v, %v, %v), want absent", data, found, err)
	}
}

func TestDiskStore_WriteCreatesDirectory(t *testing.T) {
	s := NewDiskStore()
	dir := filepath.Join(t.TempDir(), "saves", "Prog")

	if err := s.WriteText(dir, "SData.json", `{"level":1}`); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	text, found, err := s.ReadText(dir, "SData.json")
	if err != nil || !found {
		t.Fatalf("ReadText = (%v, %v)", found, err)
	}
	if text != `{"level":1}` {
		t.Errorf("text = %q", text)
	}
}

func TestDiskStore_BytesRoundTrip(t *testing.T) {
	s := NewDiskStore()
	dir := t.TempDir()
	want := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}

	if err := s.WriteBytes(dir, "icon.png", want); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	got, found, err := s.ReadBytes(dir, "icon.png")
	if err != nil || !found {
		t.Fatalf("ReadBytes = (%v, %v)", found, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("bytes = %v, want %v", got, want)
	}
}

func TestDiskStore_EnsureDirIdempotent(t *testing.T) {
	s := NewDiskStore()
	dir := filepath.Join(t.TempDir(), "a", "b")

	for i := 0; i < 2; i++ {
		if err := s.EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir #%d: %v", i, err)
		}
	}
}

func TestDiskStore_EnsureDirFailure(t *testing.T) {
	s := NewDiskStore()
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := s.EnsureDir(filepath.Join(blocker, "saves"))
	if !errors.Is(err, ErrDirCreate) {
		t.Fatalf("EnsureDir error = %v, want ErrDirCreate", err)
	}

	err = s.WriteText(filepath.Join(blocker, "saves"), "SData.json", "{}")
	if !errors.Is(err, ErrDirCreate) {
		t.Fatalf("WriteText error = %v, want ErrDirCreate", err)
	}
}

func TestDiskStore_ListAndRemoveAllAreFlat(t *testing.T) {
	s := NewDiskStore()
	dir := t.TempDir()

	for _, name := range []string{"SData.json", "Profile_A.json", "shot.png"} {
		if err := s.WriteText(dir, name, "x"); err != nil {
			t.Fatalf("WriteText %s: %v", name, err)
		}
	}
	nested := filepath.Join(dir, "backup")
	if err := s.WriteText(nested, "old.json", "x"); err != nil {
		t.Fatalf("WriteText nested: %v", err)
	}

	names, err := s.List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"Profile_A.json", "SData.json", "shot.png"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List = %v, want %v", names, want)
	}

	if err := s.RemoveAll(dir); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}
	names, _ = s.List(dir)
	if len(names) != 0 {
		t.Errorf("List after RemoveAll = %v, want empty", names)
	}
	if _, found, _ := s.ReadText(nested, "old.json"); !found {
		t.Error("RemoveAll must not recurse into subdirectories")
	}
}

func TestDiskStore_RemoveAllMissingDir(t *testing.T) {
	s := NewDiskStore()
	if err := s.RemoveAll(filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Errorf("RemoveAll on missing dir = %v, want nil", err)
	}
}

func TestMemStore_Contract(t *testing.T) {
	m := NewMemStore()

	if _, found, err := m.ReadText("root", "a.json"); found || err != nil {
		t.Fatalf("ReadText on empty store = (%v, %v)", found, err)
	}
	if err := m.WriteText("root", "a.json", "A"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if err := m.WriteText("root/sub", "b.json", "B"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	names, _ := m.List("root")
	if !reflect.DeepEqual(names, []string{"a.json"}) {
		t.Errorf("List = %v", names)
	}

	_ = m.RemoveAll("root")
	if _, found, _ := m.ReadText("root", "a.json"); found {
		t.Error("a.json should be removed")
	}
	if _, found, _ := m.ReadText("root/sub", "b.json"); !found {
		t.Error("b.json should survive a flat RemoveAll")
	}

	m.DirErr = errors.New("read-only filesystem")
	if err := m.WriteText("root", "a.json", "A"); !errors.Is(err, ErrDirCreate) {
		t.Errorf("WriteText with DirErr = %v, want ErrDirCreate", err)
	}
}

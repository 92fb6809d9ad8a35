package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	showProfile string
	showFile    string
	showList    bool
	showJSON    bool
	showTOON    bool
)

// ErrSlotNotFound is reported when the requested slot file does not exist.
var ErrSlotNotFound = errors.New("slot file not found")

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the decoded contents of a save or profile file",
	Long: `Print the decoded contents of a slot file without modifying it.

By default the global save is shown. Use --profile to show a profile, or --file
to decode any file in the saves directory. Obfuscated files are decoded with
the key that applies to the selected build type (see --build).`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showProfile, "profile", "p", "", "Profile name to show")
	showCmd.Flags().StringVarP(&showFile, "file", "f", "", "File name in the saves directory to show")
	showCmd.Flags().BoolVarP(&showList, "list", "l", false, "List the files in the saves directory")
	showCmd.Flags().BoolVarP(&showJSON, "json", "j", false, "Output in JSON format")
	showCmd.Flags().BoolVarP(&showTOON, "toon", "t", false, "Output in TOON format")
	showCmd.MarkFlagsMutuallyExclusive("json", "toon")
	showCmd.MarkFlagsMutuallyExclusive("profile", "file", "list")
}

// SlotView is the machine-readable form of a decoded slot file.
type SlotView struct {
	File    string `json:"file"`
	Path    string `json:"path"`
	Content any    `json:"content"`
}

func runShow(cmd *cobra.Command, args []string) error {
	s, _, err := openSaver()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if showList {
		files, err := s.Files()
		if err != nil {
			return err
		}
		return outputFileList(out, s.Dir(), files)
	}

	fileName := s.Config().SaveFileName()
	switch {
	case showProfile != "":
		fileName = s.Config().ProfileFileName(showProfile)
	case showFile != "":
		fileName = filepath.Base(showFile)
	}

	value, found, err := s.Peek(fileName)
	if err == nil && !found {
		err = fmt.Errorf("%w: %s", ErrSlotNotFound, fileName)
	}
	if err != nil {
		switch {
		case showJSON:
			return outputErrorJSON(out, err)
		case showTOON:
			return outputErrorTOON(out, err)
		}
		return err
	}

	view := SlotView{
		File:    fileName,
		Path:    filepath.Join(s.Dir(), fileName),
		Content: value,
	}

	switch {
	case showJSON:
		return outputJSON(out, view)
	case showTOON:
		return outputTOON(out, view)
	}
	return outputSlotText(out, view)
}

func outputSlotText(w io.Writer, view SlotView) error {
	body, err := json.MarshalIndent(view.Content, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", view.File, err)
	}

	fmt.Fprintln(w, titleStyle.Render(view.File)+" "+mutedStyle.Render(view.Path))
	fmt.Fprintln(w, string(body))
	return nil
}

func outputFileList(w io.Writer, dir string, files []string) error {
	switch {
	case showJSON:
		return outputJSON(w, map[string]any{"dir": dir, "files": files})
	case showTOON:
		return outputTOON(w, map[string]any{"dir": dir, "files": files})
	}

	fmt.Fprintln(w, titleStyle.Render(dir))
	if len(files) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  (empty)"))
		return nil
	}
	for _, f := range files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	return nil
}

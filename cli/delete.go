package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteAllYes bool

var deleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every file in the saves directory",
	Long: `Delete every file directly inside the saves directory: the global save,
all profiles and all textures. Subdirectories are left alone.

This cannot be undone. The command asks for confirmation unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: runDeleteAll,
}

func init() {
	deleteAllCmd.Flags().BoolVarP(&deleteAllYes, "yes", "y", false, "Delete without asking for confirmation")
}

func runDeleteAll(cmd *cobra.Command, args []string) error {
	s, reg, err := openSaver()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	files, err := s.Files()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "Nothing to delete in %s\n", s.Dir())
		return nil
	}

	if !deleteAllYes {
		fmt.Fprintln(out, warnStyle.Render("This will permanently delete:"))
		for _, f := range files {
			fmt.Fprintf(out, "  %s\n", f)
		}
		fmt.Fprintf(out, "from %s\n\nContinue? [y/N]: ", s.Dir())

		reader := bufio.NewReader(cmd.InOrStdin())
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(strings.ToLower(input))
		if input != "y" && input != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := s.DeleteAllSaves(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Deleted %d file(s) from %s\n", len(files), s.Dir())
	if rootVerbose {
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("wipes: %.0f, slot files rewritten: %.0f",
			counterTotal(reg, "slotsave_wipes_total"),
			counterTotal(reg, "slotsave_writes_total"))))
	}
	return nil
}

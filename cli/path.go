package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yoanbernabeu/slotsave/store"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the saves directory, creating it if needed",
	Args:  cobra.NoArgs,
	RunE:  runPath,
}

func runPath(cmd *cobra.Command, args []string) error {
	s, _, err := openSaver()
	if err != nil {
		return err
	}

	if err := store.NewDiskStore().EnsureDir(s.Dir()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), s.Dir())
	return nil
}

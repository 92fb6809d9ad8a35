package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yoanbernabeu/slotsave/codec"
	"github.com/yoanbernabeu/slotsave/config"
)

var (
	initCodec          string
	initKey            string
	initDevObfuscation bool
	initNonInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a slotsave.yaml settings file in the root directory",
	Long: `Write slotsave.yaml with default settings into the root directory.

This command will:
- Prompt for the codec (minimal or full)
- Prompt for the obfuscation key (0 disables obfuscation)
- Validate the result and write it

Without a settings file the library uses the same defaults, so init is only
needed to change them.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initCodec, "codec", "c", "", "Codec (minimal or full)")
	initCmd.Flags().StringVarP(&initKey, "key", "k", "", "Obfuscation key, a 32-bit integer (0 disables obfuscation)")
	initCmd.Flags().BoolVar(&initDevObfuscation, "dev-obfuscation", false, "Obfuscate saves in dev builds and interactive sessions too")
	initCmd.Flags().BoolVar(&initNonInteractive, "yes", false, "Use defaults without prompting")
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if config.Exists(root) {
		fmt.Fprintln(out, "slotsave is already initialized in this root.")
		fmt.Fprintf(out, "Configuration: %s\n", config.GetConfigPath(root))
		return nil
	}

	cfg := config.DefaultConfig()
	cfg.Encryption.InDevBuilds = initDevObfuscation

	if !initNonInteractive {
		reader := bufio.NewReader(cmd.InOrStdin())

		if initCodec == "" {
			fmt.Fprintln(out, "\nSelect codec:")
			fmt.Fprintln(out, "  1) minimal (reflective encoder, no extra features)")
			fmt.Fprintln(out, "  2) full (general-purpose encoder, map keys sorted)")
			fmt.Fprint(out, "Choice [1]: ")

			input, _ := reader.ReadString('\n')
			switch strings.TrimSpace(input) {
			case "2", "full":
				initCodec = string(codec.KindFull)
			default:
				initCodec = string(codec.KindMinimal)
			}
		}

		if initKey == "" {
			fmt.Fprintf(out, "Obfuscation key, 0 to disable [%d]: ", cfg.Encryption.Key)
			input, _ := reader.ReadString('\n')
			initKey = strings.TrimSpace(input)
		}
	}

	if initCodec != "" {
		cfg.Codec = codec.Kind(initCodec)
		if !cfg.Codec.Valid() {
			return fmt.Errorf("%w: %q", codec.ErrUnknownKind, initCodec)
		}
		if !codec.Available(cfg.Codec) {
			fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf(
				"Warning: the %s codec is not compiled into this binary (built with slotsave_nofull); saves will not be read or written.", cfg.Codec)))
		}
	}

	if initKey != "" {
		key, err := strconv.ParseInt(initKey, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid key %q: %w", initKey, err)
		}
		cfg.Encryption.Key = int32(key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(root); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(out, "\nCreated configuration at %s\n", config.GetConfigPath(root))
	fmt.Fprintf(out, "Saves directory: %s\n", cfg.SavesFullDirectory(root))
	if cfg.Encryption.Key == 0 {
		fmt.Fprintln(out, mutedStyle.Render("Obfuscation is disabled."))
	}
	return nil
}

package cli

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yoanbernabeu/slotsave/internal/fileutil"
	"github.com/yoanbernabeu/slotsave/saver"
)

var imageMaxSize int

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Import and export textures stored next to the saves",
}

var imageImportCmd = &cobra.Command{
	Use:   "import <file> [name]",
	Short: "Store an image file as a texture",
	Long: `Decode an image file (PNG, JPEG, BMP, TIFF or WebP) and store it as
<name>.png in the saves directory. The name defaults to the file name without
its extension. Use --max-size to scale large images down first.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runImageImport,
}

var imageExportCmd = &cobra.Command{
	Use:   "export <name> <file>",
	Short: "Copy a stored texture to a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runImageExport,
}

func init() {
	imageImportCmd.Flags().IntVar(&imageMaxSize, "max-size", 0, "Scale the image down so neither side exceeds this many pixels (0 keeps the original size)")

	imageCmd.AddCommand(imageImportCmd)
	imageCmd.AddCommand(imageExportCmd)
}

func runImageImport(cmd *cobra.Command, args []string) error {
	src := args[0]
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if len(args) == 2 {
		name = args[1]
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid texture name %q", name)
	}

	s, _, err := openSaver()
	if err != nil {
		return err
	}

	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", src, err)
	}

	scaled := saver.ScaleToFit(img, imageMaxSize)
	if err := s.SaveTexture(name, scaled); err != nil {
		return err
	}

	b := scaled.Bounds()
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%s) as %s.png, %dx%d\n", src, format, name, b.Dx(), b.Dy())
	return nil
}

func runImageExport(cmd *cobra.Command, args []string) error {
	name, dest := args[0], args[1]

	s, _, err := openSaver()
	if err != nil {
		return err
	}

	data, found, err := s.LoadBlob(name)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s.png", ErrSlotNotFound, name)
	}

	if err := fileutil.EnsureParentDir(dest); err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomically(dest, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s.png to %s\n", name, dest)
	return nil
}

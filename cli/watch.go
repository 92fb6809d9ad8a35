package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yoanbernabeu/slotsave/config"
	"github.com/yoanbernabeu/slotsave/store"
	"github.com/yoanbernabeu/slotsave/watcher"
)

var (
	watchDebounce time.Duration
	watchDecode   bool
	watchJSON     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Report changes to save files as they happen",
	Long: `Watch the saves directory and print one line per changed slot or texture
file. Rapid successive writes to the same file are merged (debounced).

With --decode, every created or modified slot file is decoded and printed.
Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "Quiet period before a change is reported")
	watchCmd.Flags().BoolVar(&watchDecode, "decode", false, "Decode and print slot files when they change")
	watchCmd.Flags().BoolVarP(&watchJSON, "json", "j", false, "Print events as JSON lines")
}

// WatchEvent is the machine-readable form of a reported change.
type WatchEvent struct {
	Time    time.Time `json:"time"`
	Type    string    `json:"type"`
	File    string    `json:"file"`
	Content any       `json:"content,omitempty"`
	Error   string    `json:"error,omitempty"`
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, _, err := openSaver()
	if err != nil {
		return err
	}
	if err := store.NewDiskStore().EnsureDir(s.Dir()); err != nil {
		return err
	}

	w, err := watcher.NewWatcher(s.Dir(), []string{config.SaveExt, config.TextureExt}, watchDebounce, newLogger())
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !watchJSON {
		fmt.Fprintln(out, titleStyle.Render("Watching "+s.Dir()))
		fmt.Fprintln(out, mutedStyle.Render("Press Ctrl+C to stop"))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case <-sigChan:
			if !watchJSON {
				fmt.Fprintln(out, "\nShutting down...")
			}
			cancel()
		case <-gCtx.Done():
		}
		return nil
	})

	g.Go(func() error {
		return reportEvents(gCtx, out, w.Events(), func(file string) (any, error) {
			v, found, err := s.Peek(file)
			if err == nil && !found {
				err = fmt.Errorf("%w: %s", ErrSlotNotFound, file)
			}
			return v, err
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// reportEvents prints every event from events until ctx is done. peek, when
// --decode is set, decodes created or modified slot files.
func reportEvents(ctx context.Context, out io.Writer, events <-chan watcher.FileEvent, peek func(string) (any, error)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := reportEvent(out, ev, peek); err != nil {
				return err
			}
		}
	}
}

func reportEvent(out io.Writer, ev watcher.FileEvent, peek func(string) (any, error)) error {
	event := WatchEvent{
		Time: time.Now(),
		Type: ev.Type.String(),
		File: ev.Name,
	}

	decodable := ev.Type == watcher.EventCreate || ev.Type == watcher.EventModify
	if watchDecode && decodable && isSlotFile(ev.Name) {
		v, err := peek(ev.Name)
		if err != nil {
			event.Error = err.Error()
		} else {
			event.Content = v
		}
	}

	if watchJSON {
		return json.NewEncoder(out).Encode(event)
	}

	fmt.Fprintf(out, "%s %-6s %s\n", mutedStyle.Render(event.Time.Format("15:04:05")), event.Type, event.File)
	switch {
	case event.Error != "":
		fmt.Fprintln(out, errorStyle.Render("  "+event.Error))
	case event.Content != nil:
		if err := outputJSON(out, event.Content); err != nil {
			return err
		}
	}
	return nil
}

func isSlotFile(name string) bool {
	return strings.HasSuffix(name, config.SaveExt)
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/cperrin88/mirrorget/internal/logger"
	"github.com/cperrin88/mirrorget/pkg/fsutil"
	"github.com/cperrin88/mirrorget/pkg/orchestrator"
)

// openInFileManager is replaced in tests.
var openInFileManager = fsutil.OpenInFileManager

// NewGetCmd creates the get command.
func NewGetCmd() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "get <list> <item>",
		Short: "Download an item from the first working mirror",
		Long: `Download an item of a mirror list. The mirrors for the target operating
system are tried in catalog order until one succeeds.

The file is written to the download directory (--dir, the configured
download_dir, $XDG_DOWNLOAD_DIR or ~/Downloads). Press Ctrl-C to cancel;
the partial file is removed. With --open the saved file is shown in the
system file manager.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args[0], args[1], open)
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "show the downloaded file in the file manager")

	return cmd
}

func runGet(cmd *cobra.Command, list, item string, open bool) error {
	ctx := cmd.Context()
	view := newProgressView(cmd.OutOrStdout())

	s, err := openSession(ctx, view.Handle)
	if err != nil {
		return err
	}
	defer s.flushMetrics()

	c := s.engine.Catalog()
	if _, err := c.Lookup(list, item); err != nil {
		return lookupError(c, list, item, err)
	}

	sub, err := s.engine.StartDownload(ctx, list, item)
	if err != nil {
		return err
	}
	logger.Debug("download started", logger.Fields{"run": sub.ID, "list": list, "item": item})

	go func() {
		select {
		case <-ctx.Done():
			s.engine.CancelCurrentDownload()
		case <-sub.Done():
		}
	}()

	for e := range sub.Events() {
		view.Handle(e)
	}

	out := sub.Wait()
	logger.Debug("download run ended", logger.Fields{"run": sub.ID, "outcome": out.Label()})
	if open {
		showDownload(out)
	}
	return out.Err()
}

// showDownload opens the saved file in the file manager. Failing to open it
// does not fail the download.
func showDownload(out orchestrator.Outcome) {
	if out.Kind != orchestrator.OutcomeSuccess {
		return
	}
	if err := openInFileManager(out.Path); err != nil {
		logger.Warn("Could not open file manager", logger.Fields{"path": out.Path, "error": err})
	}
}

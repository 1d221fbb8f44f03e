package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cperrin88/mirrorget/internal/cli"
	"github.com/cperrin88/mirrorget/internal/logger"
)

var (
	configPath  string
	verbose     bool
	downloadDir string
	osName      string
	catalogURL  string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	_ = logger.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mirrorget",
		Short: "Download privacy tools from the first working mirror",
		Long: `mirrorget downloads items (VPN clients, Tor Browser, ...) listed in a
mirror catalog. Each item has an ordered list of mirrors per operating
system; they are tried in order until one succeeds.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&downloadDir, "dir", "", "download directory (default: download_dir, $XDG_DOWNLOAD_DIR or ~/Downloads)")
	cmd.PersistentFlags().StringVar(&osName, "os", "", "target operating system: Windows, macOS, Linux or auto")
	cmd.PersistentFlags().StringVar(&catalogURL, "catalog-url", "", "load the catalog from this URL instead of the configured sources")

	// Set up CLI package variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.DownloadDir = &downloadDir
	cli.OSName = &osName
	cli.CatalogURL = &catalogURL

	cmd.AddCommand(
		cli.NewListsCmd(),
		cli.NewItemsCmd(),
		cli.NewResolveCmd(),
		cli.NewGetCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}

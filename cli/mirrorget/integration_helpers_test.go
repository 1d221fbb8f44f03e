//go:build integration

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/cperrin88/mirrorget/internal/logger"
	"github.com/cperrin88/mirrorget/test/testutil"
)

// runCLI executes the root command with args and returns stdout, stderr and the error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	logger.SetTestOutput(io.Discard)
	t.Cleanup(logger.UnsetTestOutput)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// writeConfig writes a config whose startup sources are urls and whose
// downloads go to dir.
func writeConfig(t *testing.T, dir string, urls ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("settings:\n")
	fmt.Fprintf(&b, "  download_dir: %s\n", dir)
	b.WriteString("  catalog_urls:\n")
	for _, u := range urls {
		fmt.Fprintf(&b, "    - %s\n", u)
	}
	b.WriteString("  http_timeout: 5s\n")
	b.WriteString("  catalog_timeout: 5s\n")
	return testutil.SetupTestConfig(t, b.String())
}

// sampleCatalog renders a catalog whose mirrors live on srv.
func sampleCatalog(srv *testutil.MirrorServer) string {
	return fmt.Sprintf(`{
  "Stable": {
    "ProtonVPN": {
      "Windows": [%q, %q],
      "Linux": [%q],
      "macOS": []
    },
    "Tor Browser": [%q]
  },
  "Beta": {
    "Zed": {"Linux": [%q]}
  }
}`,
		srv.URLFor("/broken/proton.exe"),
		srv.URLFor("/good/proton.exe"),
		srv.URLFor("/good/proton.deb"),
		srv.URLFor("/good/tor.tar.xz"),
		srv.URLFor("/missing/zed.tar.gz"),
	)
}

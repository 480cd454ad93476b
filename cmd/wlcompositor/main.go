// Command wlcompositor runs a minimal, headless wlcore compositor: it
// listens on a wayland-N socket and accepts client connections, but draws
// nothing (see the compositor package's doc comment).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/wlcore/compositor"
	"github.com/bnema/wlcore/wlconfig"
	"github.com/bnema/wlcore/wllog"
)

func main() {
	var (
		configPath string
		logLevel   string
		socketDir  string
	)

	root := &cobra.Command{
		Use:   "wlcompositor",
		Short: "Run a headless wlcore compositor",
		RunE: func(cmd *cobra.Command, args []string) error {
			wllog.SetLevel(logLevel)

			cfg, err := wlconfig.Load(configPath)
			if err != nil {
				return err
			}
			if socketDir != "" {
				cfg.SocketDir = socketDir
			}

			srv := compositor.NewServer(cfg)
			if err := srv.Listen(); err != nil {
				return err
			}
			defer srv.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "WAYLAND_DISPLAY=%s\n", srv.DisplayName())
			return srv.Serve()
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "path to a wlcore compositor config file (YAML)")
	root.Flags().StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	root.Flags().StringVar(&socketDir, "socket-dir", "", "directory to create the wayland-N socket in (overrides $XDG_RUNTIME_DIR)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

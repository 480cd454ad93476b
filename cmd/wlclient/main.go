// Command wlclient connects to a wlcore (or any Wayland) compositor,
// binds the core globals, creates a surface, and paints a few solid-color
// frames paced by frame callbacks — exercising the same client path the
// client package's tests drive, as a standalone smoke-test tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/wlcore/client"
	"github.com/bnema/wlcore/protocol/core"
	"github.com/bnema/wlcore/wllog"
)

func main() {
	var (
		displayPath string
		frames      int
		trace       bool
	)

	root := &cobra.Command{
		Use:   "wlclient",
		Short: "Connect to a Wayland compositor and paint a few frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			if trace {
				wllog.SetLevel("debug")
			}

			path := displayPath
			if path == "" {
				var err error
				path, err = client.DefaultSocketPath()
				if err != nil {
					return err
				}
			}

			c, err := client.Connect(path)
			if err != nil {
				return err
			}

			surf, err := c.Compositor.CreateSurface()
			if err != nil {
				return err
			}

			const width, height, stride = 256, 256, 256 * 4
			buf, pixels, err := c.NewShmBuffer(width, height, stride, core.ShmFormatARGB8888)
			if err != nil {
				return err
			}
			fillSolid(pixels, 0xff2266aa)

			for i := 0; i < frames; i++ {
				if err := surf.Attach(buf.ID(), 0, 0); err != nil {
					return err
				}
				if err := surf.Damage(0, 0, width, height); err != nil {
					return err
				}
				cb, err := surf.Frame()
				if err != nil {
					return err
				}
				if err := surf.Commit(); err != nil {
					return err
				}
				done := false
				cb.OnDone = func(uint32) { done = true }
				if err := c.Ctx.RunTill(func() bool { return done }); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "frame %d presented\n", i)
			}
			return nil
		},
	}

	root.Flags().StringVar(&displayPath, "display", "", "path to the compositor's Unix socket (default: $XDG_RUNTIME_DIR/$WAYLAND_DISPLAY)")
	root.Flags().IntVar(&frames, "frames", 3, "number of frames to paint before exiting")
	root.Flags().BoolVar(&trace, "trace", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fillSolid(pixels []byte, argb uint32) {
	for i := 0; i+4 <= len(pixels); i += 4 {
		pixels[i+0] = byte(argb)
		pixels[i+1] = byte(argb >> 8)
		pixels[i+2] = byte(argb >> 16)
		pixels[i+3] = byte(argb >> 24)
	}
}

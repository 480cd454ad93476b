// Command wlscanner generates a Go protocol package from a Wayland
// protocol XML description, the same job original_source/wayland/scanner.py
// does for the Python bindings this module grew out of — this is the
// tool that would regenerate files shaped like protocol/core's hand
// written stubs from wayland.xml or a third-party *.xml extension.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/wlcore/scanner"
)

func main() {
	var (
		outPath string
		pkgName string
	)

	root := &cobra.Command{
		Use:   "wlscanner <protocol.xml>",
		Short: "Generate a Go protocol package from a Wayland protocol XML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xmlPath := args[0]
			if outPath == "" {
				return fmt.Errorf("wlscanner: --out is required")
			}
			if err := scanner.GenerateFile(xmlPath, outPath, pkgName); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
			return nil
		},
	}

	root.Flags().StringVar(&outPath, "out", "", "output .go file path")
	root.Flags().StringVar(&pkgName, "package", "protocol", "Go package name for the generated file")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

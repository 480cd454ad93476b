// Minimal connection test for basic functionality verification
//
// This is the simplest possible test to verify that a wlcore client can
// reach a compositor at all: connect, bootstrap the registry, and print
// every global it advertises. It does not create a surface or paint
// anything.
//
// Prerequisites:
// - A wlcore (or any Wayland) compositor listening on $WAYLAND_DISPLAY
//
// Usage: go run tests/minimal/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/bnema/wlcore/client"
)

func main() {
	fmt.Println("Minimal wlcore Connection Test")
	fmt.Printf("WAYLAND_DISPLAY: %s\n\n", os.Getenv("WAYLAND_DISPLAY"))

	fmt.Print("Resolving socket path... ")
	path, err := client.DefaultSocketPath()
	if err != nil {
		log.Fatalf("FAILED: %v", err)
	}
	fmt.Println(path)

	fmt.Print("Connecting and bootstrapping registry... ")
	c, err := client.Connect(path)
	if err != nil {
		log.Fatalf("FAILED: %v", err)
	}
	fmt.Println("OK")

	fmt.Println("\nBound globals:")
	if c.Compositor != nil {
		fmt.Println("  wl_compositor: bound")
	}
	if c.Shm != nil {
		fmt.Println("  wl_shm: bound")
	}
	if c.Seat != nil {
		fmt.Println("  wl_seat: bound")
	}
	if c.Shell != nil {
		fmt.Println("  wl_shell: bound")
	}
}

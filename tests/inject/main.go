// Comprehensive integration test for the client render path
//
// This test demonstrates the full client flow: connect, bind the core
// globals, create a surface, allocate a shared memory buffer, and paint
// several frames paced by frame callbacks. It performs the same steps
// cmd/wlclient does, but as a plain, unadorned driver for quick manual
// testing against a local compositor.
//
// Prerequisites:
// - A wlcore (or any Wayland) compositor listening on $WAYLAND_DISPLAY
//
// Usage: go run tests/inject/main.go
package main

import (
	"fmt"
	"log"

	"github.com/bnema/wlcore/client"
	"github.com/bnema/wlcore/protocol/core"
)

const (
	width  = 128
	height = 128
	stride = width * 4
	frames = 5
)

func main() {
	fmt.Println("wlcore Client Integration Test")

	path, err := client.DefaultSocketPath()
	if err != nil {
		log.Fatalf("resolving socket path: %v", err)
	}

	fmt.Print("Connecting... ")
	c, err := client.Connect(path)
	if err != nil {
		log.Fatalf("FAILED: %v", err)
	}
	fmt.Println("OK")

	if c.Compositor == nil || c.Shm == nil {
		log.Fatal("compositor did not advertise wl_compositor and wl_shm")
	}

	fmt.Print("Creating surface... ")
	surf, err := c.Compositor.CreateSurface()
	if err != nil {
		log.Fatalf("FAILED: %v", err)
	}
	fmt.Println("OK")

	fmt.Print("Allocating shm buffer... ")
	buf, pixels, err := c.NewShmBuffer(width, height, stride, core.ShmFormatARGB8888)
	if err != nil {
		log.Fatalf("FAILED: %v", err)
	}
	fmt.Println("OK")

	paintCheckerboard(pixels)

	for i := 0; i < frames; i++ {
		fmt.Printf("Frame %d: attach/damage/commit... ", i)
		if err := surf.Attach(buf.ID(), 0, 0); err != nil {
			log.Fatalf("attach: %v", err)
		}
		if err := surf.Damage(0, 0, width, height); err != nil {
			log.Fatalf("damage: %v", err)
		}
		cb, err := surf.Frame()
		if err != nil {
			log.Fatalf("frame: %v", err)
		}
		if err := surf.Commit(); err != nil {
			log.Fatalf("commit: %v", err)
		}
		done := false
		cb.OnDone = func(uint32) { done = true }
		if err := c.Ctx.RunTill(func() bool { return done }); err != nil {
			log.Fatalf("waiting for frame callback: %v", err)
		}
		fmt.Println("presented")
	}

	fmt.Println("\nAll frames presented without protocol errors.")
}

func paintCheckerboard(pixels []byte) {
	const tile = 16
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			light := ((x/tile)+(y/tile))%2 == 0
			var v byte = 0x20
			if light {
				v = 0xd0
			}
			pixels[i+0] = v
			pixels[i+1] = v
			pixels[i+2] = v
			pixels[i+3] = 0xff
		}
	}
}

// Package wlconfig loads the compositor's optional bootstrap configuration:
// which globals to advertise (and at which version) and where to create the
// listening socket. Absence of a config file is not an error — the
// defaults below apply.
package wlconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GlobalConfig describes one advertised global: its interface name and the
// version the compositor implements.
type GlobalConfig struct {
	Interface string `yaml:"interface"`
	Version   uint32 `yaml:"version"`
}

// Config is the compositor's bootstrap configuration.
type Config struct {
	// SocketDir overrides $XDG_RUNTIME_DIR as the directory the
	// wayland-N socket is created in.
	SocketDir string `yaml:"socket_dir,omitempty"`
	// Globals lists the interfaces advertised to connecting clients, in
	// advertisement order.
	Globals []GlobalConfig `yaml:"globals,omitempty"`
}

// Default returns the built-in configuration used when no file is
// supplied: the core interface set at version 1, advertised in the same
// order original_source/wayland/server.py's Display.__init__ does.
func Default() Config {
	names := []string{
		"wl_compositor",
		"wl_subcompositor",
		"wl_shm",
		"wl_seat",
		"wl_output",
		"wl_data_device_manager",
		"wl_shell",
	}
	globals := make([]GlobalConfig, len(names))
	for i, n := range names {
		globals[i] = GlobalConfig{Interface: n, Version: 1}
	}
	return Config{Globals: globals}
}

// Load reads and parses a YAML config file at path. A missing file is not
// an error: Load returns Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("wlconfig: reading %s: %w", path, err)
	}
	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Config{}, fmt.Errorf("wlconfig: parsing %s: %w", path, err)
	}
	if loaded.SocketDir != "" {
		cfg.SocketDir = loaded.SocketDir
	}
	if len(loaded.Globals) > 0 {
		cfg.Globals = loaded.Globals
	}
	return cfg, nil
}

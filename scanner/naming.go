package scanner

import "strings"

// knownPrefixes lists the interface-name prefixes this scanner strips
// before PascalCasing, covering wl_ (core) plus the wlr-layer-shell and
// stable/staging xdg family this module's SPEC_FULL.md protocol set
// draws from.
var knownPrefixes = []string{"wl_", "zwlr_", "zwp_", "zxdg_", "xdg_"}

// goTypeName converts a protocol interface name such as "wl_compositor"
// or "zwlr_layer_shell_v1" into the PascalCase Go identifier used for its
// generated types: Compositor, LayerShellV1.
func goTypeName(ifaceName string) string {
	name := ifaceName
	for _, p := range knownPrefixes {
		if strings.HasPrefix(name, p) {
			name = strings.TrimPrefix(name, p)
			break
		}
	}
	return pascalCase(name)
}

// goMethodName converts a request or event name such as "create_surface"
// into the PascalCase method/field name CreateSurface.
func goMethodName(name string) string {
	return pascalCase(name)
}

func pascalCase(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// enumConstName builds the named-constant identifier for one enum entry,
// following the same {Interface}{Enum}{Entry} convention the hand-written
// stubs in protocol/core use (ShmFormatARGB8888, SeatCapabilityPointer).
func enumConstName(ifaceGoName, enumGoName, entryGoName string) string {
	return ifaceGoName + enumGoName + entryGoName
}

// exportedField turns an arg name like "serial" into the exported Go
// parameter-doc name Serial; args keep their lowerCamel form as actual Go
// parameter names (they're already valid identifiers), this is only used
// for doc comments and generated field names on event structs.
func exportedField(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

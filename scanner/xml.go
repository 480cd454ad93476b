// Package scanner turns a Wayland protocol XML description into Go source
// shaped exactly like the hand-written stubs in protocol/core: an
// Interface descriptor, opcode constants, and client/server role types
// with handler fields for every event (client) or request (server). It is
// the Go-native counterpart of original_source/wayland/scanner.py, which
// does the same job for generated Python classes.
package scanner

import (
	"encoding/xml"
	"fmt"
)

// protocolXML mirrors the subset of the Wayland protocol XML schema this
// scanner understands: protocol > interface > (request|event|enum), each
// message with an ordered arg list and each enum with an ordered list of
// named integer entries.
type protocolXML struct {
	XMLName    xml.Name       `xml:"protocol"`
	Name       string         `xml:"name,attr"`
	Interfaces []interfaceXML `xml:"interface"`
}

type interfaceXML struct {
	Name     string       `xml:"name,attr"`
	Version  uint32       `xml:"version,attr"`
	Requests []messageXML `xml:"request"`
	Events   []messageXML `xml:"event"`
	Enums    []enumXML    `xml:"enum"`
}

type messageXML struct {
	Name string   `xml:"name,attr"`
	Args []argXML `xml:"arg"`
}

type argXML struct {
	Name      string `xml:"name,attr"`
	Type      string `xml:"type,attr"`
	Interface string `xml:"interface,attr"`
	AllowNull string `xml:"allow-null,attr"`
}

type enumXML struct {
	Name    string     `xml:"name,attr"`
	Entries []entryXML `xml:"entry"`
}

type entryXML struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// wireTypeChar maps an XML arg type name to the wire.ArgType signature
// character used throughout this module, matching the protocol
// specification's own one-letter signature convention.
func wireTypeChar(argType string) (byte, error) {
	switch argType {
	case "int":
		return 'i', nil
	case "uint", "enum":
		return 'u', nil
	case "fixed":
		return 'f', nil
	case "string":
		return 's', nil
	case "array":
		return 'a', nil
	case "object":
		return 'o', nil
	case "new_id":
		return 'n', nil
	case "fd":
		return 'h', nil
	default:
		return 0, fmt.Errorf("scanner: unknown arg type %q", argType)
	}
}

// ParseProtocol parses a protocol XML document into the in-memory form
// Generate consumes.
func ParseProtocol(data []byte) (*protocolXML, error) {
	var p protocolXML
	if err := xml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("scanner: parsing protocol XML: %w", err)
	}
	if len(p.Interfaces) == 0 {
		return nil, fmt.Errorf("scanner: protocol %q declares no interfaces", p.Name)
	}
	return &p, nil
}

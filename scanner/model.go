package scanner

import (
	"fmt"
	"strconv"
)

// interfaceModel is the template-ready view of one XML interface: names
// already transformed, opcodes already assigned by XML document order
// (which is also wire order, per the protocol), and each message's
// arguments resolved down to the wire type byte plus the Go parameter
// name/type the generated methods use.
type interfaceModel struct {
	WireName string
	GoName   string
	Version  uint32
	Requests []messageModel
	Events   []messageModel
	Enums    []enumModel
}

// enumModel is the template-ready view of one XML enum: its wire and Go
// names plus its named integer entries.
type enumModel struct {
	WireName string
	GoName   string
	Entries  []enumEntryModel
}

type enumEntryModel struct {
	WireName string
	GoName   string
	Value    uint32
}

type messageModel struct {
	WireName string
	GoName   string
	Opcode   uint16
	Args     []argModel
	// NewIDIndex is the index into Args of a new_id argument, or -1 if
	// the message has none. A message has at most one, per protocol
	// convention.
	NewIDIndex int
	// NewIDStaticIface is the interface name the new_id's object is
	// statically known to implement (e.g. "wl_surface" for
	// wl_compositor.create_surface), or "" when the new_id arg carries
	// its interface on the wire (wl_registry.bind's dynamic new_id).
	NewIDStaticIface string
}

type argModel struct {
	WireName string
	GoName   string
	WireType byte
}

// buildModel transforms parsed XML into the form the code templates walk.
func buildModel(p *protocolXML) ([]interfaceModel, error) {
	models := make([]interfaceModel, 0, len(p.Interfaces))
	for _, ifc := range p.Interfaces {
		m := interfaceModel{
			WireName: ifc.Name,
			GoName:   goTypeName(ifc.Name),
			Version:  ifc.Version,
		}
		if m.Version == 0 {
			m.Version = 1
		}
		for i, req := range ifc.Requests {
			msg, err := buildMessage(req, uint16(i))
			if err != nil {
				return nil, fmt.Errorf("scanner: interface %s request %s: %w", ifc.Name, req.Name, err)
			}
			m.Requests = append(m.Requests, msg)
		}
		for i, ev := range ifc.Events {
			msg, err := buildMessage(ev, uint16(i))
			if err != nil {
				return nil, fmt.Errorf("scanner: interface %s event %s: %w", ifc.Name, ev.Name, err)
			}
			m.Events = append(m.Events, msg)
		}
		for _, en := range ifc.Enums {
			enm, err := buildEnum(en)
			if err != nil {
				return nil, fmt.Errorf("scanner: interface %s enum %s: %w", ifc.Name, en.Name, err)
			}
			m.Enums = append(m.Enums, enm)
		}
		models = append(models, m)
	}
	return models, nil
}

// buildEnum parses one XML enum's entries, resolving each value (decimal
// or the "0x..." hex literals the protocol XML also uses) to a uint32.
func buildEnum(e enumXML) (enumModel, error) {
	m := enumModel{WireName: e.Name, GoName: pascalCase(e.Name)}
	for _, entry := range e.Entries {
		val, err := strconv.ParseUint(entry.Value, 0, 32)
		if err != nil {
			return enumModel{}, fmt.Errorf("entry %s: bad value %q: %w", entry.Name, entry.Value, err)
		}
		name := entry.Name
		if isGoKeyword(name) {
			name += "_"
		}
		m.Entries = append(m.Entries, enumEntryModel{
			WireName: entry.Name,
			GoName:   pascalCase(name),
			Value:    uint32(val),
		})
	}
	return m, nil
}

func buildMessage(msg messageXML, opcode uint16) (messageModel, error) {
	m := messageModel{
		WireName:   msg.Name,
		GoName:     goMethodName(msg.Name),
		Opcode:     opcode,
		NewIDIndex: -1,
	}
	for i, a := range msg.Args {
		wt, err := wireTypeChar(a.Type)
		if err != nil {
			return messageModel{}, err
		}
		name := a.Name
		if isGoKeyword(name) {
			name += "_"
		}
		m.Args = append(m.Args, argModel{WireName: a.Name, GoName: name, WireType: wt})
		if a.Type == "new_id" {
			m.NewIDIndex = i
			m.NewIDStaticIface = a.Interface
		}
	}
	return m, nil
}

func isGoKeyword(s string) bool {
	switch s {
	case "type", "interface", "func", "range", "map", "var", "const", "package", "import", "return", "if", "else", "for", "switch", "case", "default", "struct", "chan", "go", "defer", "select":
		return true
	}
	return false
}

// wireConstName returns the wire.ArgXxx identifier for a signature byte.
func wireConstName(wt byte) string {
	switch wt {
	case 'i':
		return "wire.ArgInt"
	case 'u':
		return "wire.ArgUint"
	case 'f':
		return "wire.ArgFixed"
	case 's':
		return "wire.ArgString"
	case 'a':
		return "wire.ArgArray"
	case 'o':
		return "wire.ArgObject"
	case 'n':
		return "wire.ArgNewID"
	case 'h':
		return "wire.ArgFD"
	}
	return "wire.ArgUint"
}

// goParamType returns the Go type a generated method signature uses for
// a wire argument of the given type.
func goParamType(wt byte) string {
	switch wt {
	case 'i':
		return "int32"
	case 'u':
		return "uint32"
	case 'f':
		return "wire.Fixed"
	case 's':
		return "string"
	case 'a':
		return "[]byte"
	case 'o':
		return "wl.ObjectID"
	case 'n':
		return "wl.ObjectID"
	case 'h':
		return "int"
	}
	return "uint32"
}

// accessorCall returns the wl.Event accessor method call for reading
// argument index i of the given wire type.
func accessorCall(wt byte, i int) string {
	switch wt {
	case 'i':
		return fmt.Sprintf("ev.Int(%d)", i)
	case 'u':
		return fmt.Sprintf("ev.Uint(%d)", i)
	case 'f':
		return fmt.Sprintf("ev.Fixed(%d)", i)
	case 's':
		return fmt.Sprintf("ev.String(%d)", i)
	case 'a':
		return fmt.Sprintf("ev.Array(%d)", i)
	case 'o':
		return fmt.Sprintf("ev.Object(%d)", i)
	case 'n':
		return fmt.Sprintf("ev.NewID(%d)", i)
	case 'h':
		return fmt.Sprintf("ev.FD(%d)", i)
	}
	return fmt.Sprintf("ev.Uint(%d)", i)
}

// argLiteral builds the wire.Arg{...} literal used to encode a Go
// parameter value of the given name and wire type back onto the wire.
func argLiteral(wt byte, goExpr string) string {
	switch wt {
	case 'i':
		return fmt.Sprintf("{Type: wire.ArgInt, Int: %s}", goExpr)
	case 'u':
		return fmt.Sprintf("{Type: wire.ArgUint, Uint: %s}", goExpr)
	case 'f':
		return fmt.Sprintf("{Type: wire.ArgFixed, Fixed: %s}", goExpr)
	case 's':
		return fmt.Sprintf("{Type: wire.ArgString, String: %s}", goExpr)
	case 'a':
		return fmt.Sprintf("{Type: wire.ArgArray, Array: %s}", goExpr)
	case 'o':
		return fmt.Sprintf("{Type: wire.ArgObject, Object: uint32(%s)}", goExpr)
	case 'n':
		return fmt.Sprintf("{Type: wire.ArgNewID, NewID: uint32(%s)}", goExpr)
	case 'h':
		return fmt.Sprintf("{Type: wire.ArgFD, Fd: %s}", goExpr)
	}
	return fmt.Sprintf("{Type: wire.ArgUint, Uint: %s}", goExpr)
}

package scanner

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"
)

// Generate turns a parsed protocol into one formatted Go source file in
// pkgName, shaped exactly like the hand-written stubs in protocol/core:
// an Interface descriptor, opcode consts, and Client/Server role types
// with a typed method per request and a handler field per event (and the
// mirror image on the server side).
func Generate(pkgName string, p *protocolXML) ([]byte, error) {
	models, err := buildModel(p)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by wlscanner from %s.xml; DO NOT EDIT.\npackage %s\n\n", p.Name, pkgName)
	buf.WriteString("import (\n\t\"github.com/bnema/wlcore/wire\"\n\t\"github.com/bnema/wlcore/wl\"\n)\n\n")

	tmpl := template.Must(template.New("interface").Funcs(funcs).Parse(interfaceTemplate))
	for _, m := range models {
		if err := tmpl.Execute(&buf, m); err != nil {
			return nil, fmt.Errorf("scanner: generating %s: %w", m.WireName, err)
		}
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("scanner: formatting generated source (%w); unformatted output:\n%s", err, buf.String())
	}
	return out, nil
}

var funcs = template.FuncMap{
	"lowerFirst": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToLower(s[:1]) + s[1:]
	},
	"wireConst":          wireConstName,
	"goType":             goParamType,
	"accessor":           accessorCall,
	"argLiteral":         argLiteral,
	"goNameOfStaticIface": goTypeName,
	"enumConstName":      enumConstName,
	"join": func(sep string, parts []string) string {
		return strings.Join(parts, sep)
	},
	"requestOpcodeName": func(ifaceGoName string, m messageModel) string {
		return fmt.Sprintf("%sRequest%s", strings.ToLower(ifaceGoName[:1])+ifaceGoName[1:], m.GoName)
	},
	"eventOpcodeName": func(ifaceGoName string, m messageModel) string {
		return fmt.Sprintf("%sEvent%s", strings.ToLower(ifaceGoName[:1])+ifaceGoName[1:], m.GoName)
	},
	// nonNewIDArgs returns a message's args with the new_id slot removed,
	// since new_id args are threaded through specially (the allocated or
	// bound object, not a plain wire value).
	"nonNewIDArgs": func(m messageModel) []argModel {
		if m.NewIDIndex < 0 {
			return m.Args
		}
		out := make([]argModel, 0, len(m.Args)-1)
		for i, a := range m.Args {
			if i == m.NewIDIndex {
				continue
			}
			out = append(out, a)
		}
		return out
	},
}

// interfaceTemplate renders one protocol interface's full Go source:
// descriptor, opcodes, client proxy, server resource. It intentionally
// mirrors the structure of protocol/core/compositor.go.
const interfaceTemplate = `
var {{.GoName}}Interface = &wl.Interface{
	Name:    "{{.WireName}}",
	Version: {{.Version}},
	Requests: []wl.Signature{
		{{range .Requests}}{Name: "{{.WireName}}", Args: []wire.ArgType{ {{range .Args}}{{wireConst .WireType}}, {{end}} }},
		{{end}}
	},
	Events: []wl.Signature{
		{{range .Events}}{Name: "{{.WireName}}", Args: []wire.ArgType{ {{range .Args}}{{wireConst .WireType}}, {{end}} }},
		{{end}}
	},
	Enums: []wl.EnumDescriptor{
		{{range .Enums}}{Name: "{{.WireName}}", Entries: []wl.EnumEntry{ {{range .Entries}}{Name: "{{.WireName}}", Value: {{.Value}}}, {{end}} }},
		{{end}}
	},
}

const (
	{{$iface := .GoName}}{{range .Requests}}{{requestOpcodeName $iface .}} uint16 = {{.Opcode}}
	{{end}}
	{{range .Events}}{{eventOpcodeName $iface .}} uint16 = {{.Opcode}}
	{{end}}
)

{{range .Enums}}
{{$enum := .}}
const (
	{{range .Entries}}{{enumConstName $iface $enum.GoName .GoName}} uint32 = {{.Value}}
	{{end}}
)
{{end}}

// Client{{.GoName}} is the generated proxy for {{.WireName}}.
type Client{{.GoName}} struct {
	wl.Proxy

	{{range .Events}}On{{.GoName}} func({{range $i, $a := .Args}}{{if $i}}, {{end}}{{$a.GoName}} {{goType $a.WireType}}{{end}})
	{{end}}
}

func NewClient{{.GoName}}(ctx *wl.Context, id wl.ObjectID, version uint32) *Client{{.GoName}} {
	return &Client{{.GoName}}{Proxy: wl.NewProxy(ctx, id, {{.GoName}}Interface, version)}
}

{{$ifaceGoName := .GoName}}
{{range .Requests}}
{{$req := .}}
{{if eq .WireName "destroy"}}
func (p *Client{{$ifaceGoName}}) Destroy() error {
	if err := p.SendRequest({{requestOpcodeName $ifaceGoName .}}, nil); err != nil {
		return err
	}
	return p.Context().Unregister(p.ID())
}
{{else if ge .NewIDIndex 0}}
{{if .NewIDStaticIface}}
func (p *Client{{$ifaceGoName}}) {{.GoName}}({{range $i, $a := nonNewIDArgs .}}{{if $i}}, {{end}}{{$a.GoName}} {{goType $a.WireType}}{{end}}) (*Client{{goNameOfStaticIface .NewIDStaticIface}}, error) {
	ctx := p.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	result := NewClient{{goNameOfStaticIface .NewIDStaticIface}}(ctx, id, p.Version())
	if err := ctx.Register(id, result); err != nil {
		return nil, err
	}
	if err := p.SendRequest({{requestOpcodeName $ifaceGoName .}}, []wire.Arg{ {{range $i, $a := .Args}}{{if eq $i $req.NewIDIndex}}{Type: wire.ArgNewID, NewID: uint32(id)}{{else}}{{argLiteral $a.WireType $a.GoName}}{{end}}, {{end}} }); err != nil {
		return nil, err
	}
	return result, nil
}
{{else}}
func (p *Client{{$ifaceGoName}}) {{.GoName}}({{range $i, $a := nonNewIDArgs .}}{{if $i}}, {{end}}{{$a.GoName}} {{goType $a.WireType}}{{end}}, newIDInterface string, newIDVersion uint32, obj wl.WireObject) error {
	id := obj.ID()
	if err := p.Context().Register(id, obj); err != nil {
		return err
	}
	return p.SendRequest({{requestOpcodeName $ifaceGoName .}}, []wire.Arg{ {{range $i, $a := .Args}}{{if eq $i $req.NewIDIndex}}{Type: wire.ArgNewIDDynamic, NewIDInterface: newIDInterface, NewIDVersion: newIDVersion, NewID: uint32(id)}{{else}}{{argLiteral $a.WireType $a.GoName}}{{end}}, {{end}} })
}
{{end}}
{{else}}
func (p *Client{{$ifaceGoName}}) {{.GoName}}({{range $i, $a := .Args}}{{if $i}}, {{end}}{{$a.GoName}} {{goType $a.WireType}}{{end}}) error {
	return p.SendRequest({{requestOpcodeName $ifaceGoName .}}, []wire.Arg{ {{range .Args}}{{argLiteral .WireType .GoName}}, {{end}} })
}
{{end}}
{{end}}

func (p *Client{{.GoName}}) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	{{range .Events}}case {{eventOpcodeName $ifaceGoName .}}:
		if p.On{{.GoName}} != nil {
			p.On{{.GoName}}({{range $i, $a := .Args}}{{if $i}}, {{end}}{{accessor $a.WireType $i}}{{end}})
		}
	{{end}}
	}
	return nil
}

// Server{{.GoName}} is the generated resource for {{.WireName}}.
type Server{{.GoName}} struct {
	wl.Resource

	{{range .Requests}}{{if ne .WireName "destroy"}}On{{.GoName}} func({{range $i, $a := .Args}}{{if $i}}, {{end}}{{$a.GoName}} {{goType $a.WireType}}{{end}}){{if ge .NewIDIndex 0}} error{{end}}
	{{end}}{{end}}OnDestroy func()
}

func NewServer{{.GoName}}(ctx *wl.Context, id wl.ObjectID, version uint32) *Server{{.GoName}} {
	return &Server{{.GoName}}{Resource: wl.NewResource(ctx, id, {{.GoName}}Interface, version)}
}

{{range .Events}}
func (r *Server{{$ifaceGoName}}) Send{{.GoName}}({{range $i, $a := .Args}}{{if $i}}, {{end}}{{$a.GoName}} {{goType $a.WireType}}{{end}}) error {
	return r.Resource.SendEvent({{eventOpcodeName $ifaceGoName .}}, []wire.Arg{ {{range .Args}}{{argLiteral .WireType .GoName}}, {{end}} })
}
{{end}}

func (r *Server{{.GoName}}) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	{{range .Requests}}case {{requestOpcodeName $ifaceGoName .}}:
		{{if eq .WireName "destroy"}}if r.OnDestroy != nil {
			r.OnDestroy()
		}
		return r.Context().Unregister(r.ID())
		{{else if ge .NewIDIndex 0}}if r.On{{.GoName}} != nil {
			return r.On{{.GoName}}({{range $i, $a := .Args}}{{if $i}}, {{end}}{{accessor $a.WireType $i}}{{end}})
		}
		{{else}}if r.On{{.GoName}} != nil {
			r.On{{.GoName}}({{range $i, $a := .Args}}{{if $i}}, {{end}}{{accessor $a.WireType $i}}{{end}})
		}
		{{end}}
	{{end}}
	}
	return nil
}

`

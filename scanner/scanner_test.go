package scanner

import (
	"go/parser"
	"go/token"
	"regexp"
	"strings"
	"testing"
)

const sampleProtocol = `<?xml version="1.0" encoding="UTF-8"?>
<protocol name="sample">
  <interface name="wl_widget" version="2">
    <request name="destroy"/>
    <request name="set_label">
      <arg name="text" type="string"/>
    </request>
    <request name="create_child">
      <arg name="id" type="new_id" interface="wl_widget"/>
    </request>
    <event name="clicked">
      <arg name="button" type="uint"/>
      <arg name="time" type="uint"/>
    </event>
    <enum name="align">
      <entry name="start" value="0"/>
      <entry name="center" value="1"/>
      <entry name="end" value="2"/>
    </enum>
  </interface>
</protocol>
`

func TestGoTypeName(t *testing.T) {
	cases := map[string]string{
		"wl_compositor":       "Compositor",
		"wl_shell_surface":    "ShellSurface",
		"zwlr_layer_shell_v1": "LayerShellV1",
		"zxdg_output_v1":      "OutputV1",
	}
	for in, want := range cases {
		if got := goTypeName(in); got != want {
			t.Errorf("goTypeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseProtocol(t *testing.T) {
	p, err := ParseProtocol([]byte(sampleProtocol))
	if err != nil {
		t.Fatalf("ParseProtocol: %v", err)
	}
	if len(p.Interfaces) != 1 {
		t.Fatalf("got %d interfaces, want 1", len(p.Interfaces))
	}
	ifc := p.Interfaces[0]
	if ifc.Name != "wl_widget" || ifc.Version != 2 {
		t.Fatalf("got %+v", ifc)
	}
	if len(ifc.Requests) != 3 || len(ifc.Events) != 1 {
		t.Fatalf("got %d requests, %d events", len(ifc.Requests), len(ifc.Events))
	}
	if len(ifc.Enums) != 1 || len(ifc.Enums[0].Entries) != 3 {
		t.Fatalf("got %+v", ifc.Enums)
	}
}

func TestBuildModelEnums(t *testing.T) {
	p, err := ParseProtocol([]byte(sampleProtocol))
	if err != nil {
		t.Fatalf("ParseProtocol: %v", err)
	}
	models, err := buildModel(p)
	if err != nil {
		t.Fatalf("buildModel: %v", err)
	}
	if len(models) != 1 || len(models[0].Enums) != 1 {
		t.Fatalf("got %+v", models)
	}
	enum := models[0].Enums[0]
	if enum.WireName != "align" || enum.GoName != "Align" {
		t.Fatalf("enum = %+v", enum)
	}
	want := []enumEntryModel{
		{WireName: "start", GoName: "Start", Value: 0},
		{WireName: "center", GoName: "Center", Value: 1},
		{WireName: "end", GoName: "End", Value: 2},
	}
	if len(enum.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(enum.Entries), len(want))
	}
	for i, e := range want {
		if enum.Entries[i] != e {
			t.Fatalf("entry %d = %+v, want %+v", i, enum.Entries[i], e)
		}
	}
}

func TestParseProtocolRejectsUnknownArgType(t *testing.T) {
	bad := strings.Replace(sampleProtocol, `type="string"`, `type="bogus"`, 1)
	p, err := ParseProtocol([]byte(bad))
	if err != nil {
		t.Fatalf("ParseProtocol: %v", err)
	}
	if _, err := buildModel(p); err == nil {
		t.Fatal("buildModel: expected error for unknown arg type, got nil")
	}
}

// TestGenerateProducesValidGo exercises the full pipeline against the
// sample protocol and checks the result at least parses as Go source
// (the toolchain itself is not available to compile it in this
// environment, but go/parser catches template and formatting mistakes).
func TestGenerateProducesValidGo(t *testing.T) {
	p, err := ParseProtocol([]byte(sampleProtocol))
	if err != nil {
		t.Fatalf("ParseProtocol: %v", err)
	}
	src, err := Generate("sampleproto", p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "generated.go", src, 0)
	if err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}
	if f.Name.Name != "sampleproto" {
		t.Fatalf("package name = %q, want sampleproto", f.Name.Name)
	}
	if !strings.Contains(string(src), "WidgetInterface") {
		t.Fatalf("generated source missing WidgetInterface:\n%s", src)
	}
	if !strings.Contains(string(src), "func (p *ClientWidget) Destroy() error") {
		t.Fatalf("generated source missing Destroy method:\n%s", src)
	}
	if !strings.Contains(string(src), "ClientWidget) CreateChild") {
		t.Fatalf("generated source missing factory method for create_child:\n%s", src)
	}
	startConst := regexp.MustCompile(`WidgetAlignStart\s+uint32\s*=\s*0`)
	if !startConst.MatchString(string(src)) {
		t.Fatalf("generated source missing enum constant WidgetAlignStart:\n%s", src)
	}
	centerConst := regexp.MustCompile(`WidgetAlignCenter\s+uint32\s*=\s*1`)
	if !centerConst.MatchString(string(src)) {
		t.Fatalf("generated source missing enum constant WidgetAlignCenter:\n%s", src)
	}
	if !strings.Contains(string(src), "wl.EnumEntry{") || !strings.Contains(string(src), `Name: "start", Value: 0`) {
		t.Fatalf("generated source missing enum descriptor entries:\n%s", src)
	}
}

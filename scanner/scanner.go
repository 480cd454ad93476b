package scanner

import "os"

// GenerateFile reads a protocol XML file at xmlPath and writes the
// generated Go source for it to outPath, in package pkgName. This is the
// whole job cmd/wlscanner's root command wraps in a CLI.
func GenerateFile(xmlPath, outPath, pkgName string) error {
	data, err := os.ReadFile(xmlPath)
	if err != nil {
		return err
	}
	proto, err := ParseProtocol(data)
	if err != nil {
		return err
	}
	src, err := Generate(pkgName, proto)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, src, 0o644)
}

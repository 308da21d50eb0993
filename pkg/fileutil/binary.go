package fileutil

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// binaryExtensions are copied verbatim regardless of their content
var binaryExtensions = map[string]bool{
	".png":      true,
	".jpg":      true,
	".jpeg":     true,
	".gif":      true,
	".ico":      true,
	".icns":     true,
	".jar":      true,
	".keystore": true,
	".ttf":      true,
	".otf":      true,
	".zip":      true,
}

// sniffLen is how much of a file filetype needs to recognize it
const sniffLen = 262

// IsBinary reports whether a file must be copied byte-for-byte
func IsBinary(name string, content []byte) bool {
	if binaryExtensions[strings.ToLower(filepath.Ext(name))] {
		return true
	}
	head := content
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return true
	}
	kind, err := filetype.Match(head)
	return err == nil && kind != filetype.Unknown
}

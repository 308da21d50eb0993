// Package template embeds the default project template tree.
//
// The tree under default/ is a complete HelloWorld project: the platform
// directory with its Podfile, one source directory per platform, the Xcode
// project bundle with its shared schemes, plus the root-level packager
// configs. Every occurrence of the placeholder name, in paths and in text
// file contents, is replaced when the tree is materialized.
package template

import (
	"embed"
	"io/fs"
)

//go:embed all:default
var embedded embed.FS

// Root is the directory name the embedded tree lives under
const Root = "default"

// Default returns the embedded template tree rooted at its top directory
func Default() fs.FS {
	sub, err := fs.Sub(embedded, Root)
	if err != nil {
		// fs.Sub only fails for invalid paths, and Root is a constant.
		panic(err)
	}
	return sub
}

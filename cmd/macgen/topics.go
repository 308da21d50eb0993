package macgen

import (
	"embed"
	"io/fs"
)

//go:embed topics/*.md
var topicFiles embed.FS

// helpTopics returns the embedded help topics rooted at the topics directory
func helpTopics() fs.FS {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		// The directory is embedded, so this cannot fail
		panic(err)
	}
	return sub
}

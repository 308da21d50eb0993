// Package display converts command results into a neutral summary that the
// terminal and text renderers lay out.
package display

// Summary is a titled list of sections with optional trailing markdown
type Summary struct {
	Title    string
	Sections []Section
	// Markdown is shown after the sections (run instructions)
	Markdown string
}

// Section groups related items. Style names the entry in the style
// registry used for its markers.
type Section struct {
	Title string
	Style string
	Items []Item
}

// Item is a single line. Items with a Key render as "key value" pairs,
// items without one render as a marked path.
type Item struct {
	Key   string
	Value string
}

// Empty reports whether the section has nothing to show
func (s Section) Empty() bool {
	return len(s.Items) == 0
}

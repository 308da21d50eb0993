package topics

// Renderer formats topic content by file extension
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer prints topics as written
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, _ string) string {
	return content
}

package render

import "strings"

// Markdown renders content for terminal display with a pooled renderer.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// Plain is the unstyled rendering used when stdout is not a terminal.
// Every newline form becomes a single line break and nothing is dropped.
func Plain(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// Message renders an assistant reply, falling back to Plain when glamour fails.
func Message(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return Plain(content)
	}
	return strings.TrimRight(out, "\n")
}

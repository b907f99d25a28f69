package template

import (
	"io"
)

// TemplateRenderer renders a block wrapper. name is either a template the
// engine can resolve or inline template content; the result is returned and
// copied to every out writer.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

package catalog

import "log/slog"

// System defines the public contract for catalog lookups.
type System interface {
	Handler() *Handler

	Templates() []Template
	Template(id string) (*Template, error)
	TemplateCategories() []string
	Questions() []QuestionDefinition
}

type catalog struct {
	logger *slog.Logger
}

// New creates the static catalog system.
func New(logger *slog.Logger) System {
	return &catalog{logger: logger.With("system", "catalog")}
}

func (c *catalog) Handler() *Handler {
	return NewHandler(c, c.logger)
}

func (c *catalog) Templates() []Template {
	return Templates()
}

func (c *catalog) Template(id string) (*Template, error) {
	return FindTemplate(id)
}

func (c *catalog) TemplateCategories() []string {
	return Categories()
}

func (c *catalog) Questions() []QuestionDefinition {
	return Questions()
}

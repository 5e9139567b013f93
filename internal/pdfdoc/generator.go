package pdfdoc

// Generator renders the document kinds with a shared layout and logo.
type Generator struct {
	layout Layout
	logo   []byte
}

// NewGenerator returns a generator. logo may be nil.
func NewGenerator(layout Layout, logo []byte) *Generator {
	return &Generator{layout: layout, logo: logo}
}

func (g *Generator) canvas(label string) *Canvas {
	return NewCanvas(g.layout, label, g.logo)
}

func (g *Generator) finish(c *Canvas, kind Kind, filename string) (*Document, error) {
	b, err := c.Bytes()
	if err != nil {
		return nil, err
	}
	return &Document{Kind: kind, Filename: filename, Content: b}, nil
}

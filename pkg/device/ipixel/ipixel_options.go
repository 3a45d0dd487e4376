package ipixel

type Option func(p *Panel)

// WithSize overrides the panel dimensions (default 32x32).
func WithSize(width, height int) Option {
	return func(p *Panel) {
		p.width = width
		p.height = height
	}
}

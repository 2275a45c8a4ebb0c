package hostui

// Config holds window settings (title and scale) for the windowed host.
type Config struct {
	Title string
	Scale int
}

// Defaults fills unset fields with reasonable values.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "dragon64"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
}

package quiz

const (
	DefaultHost  = ".ysquiz"
	DefaultTitle = "ysQuiz"
)

// Config configures a quiz session. Zero fields take their defaults.
type Config struct {
	Host      string    // selector resolved by the Host when Container is nil
	Container Container // already resolved container, takes precedence over Host
	Title     string    // quiz title shown in the header
	Enumerate *bool     // prefix every prompt with its 1-based ordinal; nil means true
}

// DefaultConfig returns the default quiz configuration.
func DefaultConfig() Config {
	return Config{
		Host:      DefaultHost,
		Title:     DefaultTitle,
		Enumerate: Bool(true),
	}
}

// Bool returns a pointer to v, for Config.Enumerate.
func Bool(v bool) *bool {
	return &v
}

// Enumerates reports whether prompts are numbered.
func (c Config) Enumerates() bool {
	return c.Enumerate == nil || *c.Enumerate
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Enumerate == nil {
		c.Enumerate = Bool(true)
	}
	return c
}

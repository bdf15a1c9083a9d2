package tree

// UnlimitedDepth is the depth budget that never runs out.
const UnlimitedDepth = -1

// Config is the immutable render configuration threaded through the traversal.
// Every recursive step derives a modified copy instead of changing the caller's value.
type Config struct {
	MaxDepth     int
	Exclusions   Matcher
	FoldersFirst bool
	Indent       string
}

// NewConfig returns a configuration with an empty indent.
func NewConfig(maxDepth int, exclusions Matcher, foldersFirst bool) Config {
	return Config{
		MaxDepth:     maxDepth,
		Exclusions:   exclusions,
		FoldersFirst: foldersFirst,
	}
}

// WithDepth returns a copy of the configuration with the provided depth budget.
func (config Config) WithDepth(maxDepth int) Config {
	result := config
	result.MaxDepth = maxDepth
	return result
}

// WithIndent returns a copy of the configuration with the provided indent.
func (config Config) WithIndent(indent string) Config {
	result := config
	result.Indent = indent
	return result
}

// Unlimited reports whether the depth budget is unbounded.
func (config Config) Unlimited() bool {
	return config.MaxDepth < 0
}

func (config Config) exhausted() bool {
	return config.MaxDepth == 0
}

// descend derives the configuration used for the children of a directory
// whose own line carried the provided indent extension.
func (config Config) descend(extension string) Config {
	nextDepth := config.MaxDepth
	if !config.Unlimited() {
		nextDepth--
	}
	return config.WithDepth(nextDepth).WithIndent(config.Indent + extension)
}

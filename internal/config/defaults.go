package config

// DefaultInputPath is the source file read when no argument is given.
const DefaultInputPath = "src/sample.rs"

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			DefaultPath: DefaultInputPath,
		},
		Context: ContextConfig{
			Mode:  "scoped",
			Kinds: []string{"struct", "trait", "function"},
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Input = mergeInputConfig(loaded.Input, defaults.Input)
	result.Context = mergeContextConfig(loaded.Context, defaults.Context)

	return result
}

func mergeInputConfig(loaded, defaults InputConfig) InputConfig {
	result := InputConfig{}

	if loaded.DefaultPath != "" {
		result.DefaultPath = loaded.DefaultPath
	} else {
		result.DefaultPath = defaults.DefaultPath
	}

	return result
}

func mergeContextConfig(loaded, defaults ContextConfig) ContextConfig {
	result := ContextConfig{}

	if loaded.Mode != "" {
		result.Mode = loaded.Mode
	} else {
		result.Mode = defaults.Mode
	}

	// An explicit empty list in YAML is indistinguishable from a missing
	// key, so it also falls back to the defaults.
	if len(loaded.Kinds) > 0 {
		result.Kinds = loaded.Kinds
	} else {
		result.Kinds = defaults.Kinds
	}

	return result
}

// ValidModes lists the valid values for context.mode
var ValidModes = []string{"scoped", "overwrite"}

// ValidKinds lists the declaration kinds that may set the context label
var ValidKinds = []string{"struct", "trait", "function", "enum", "union", "impl", "type", "mod"}

// IsValidMode checks if the given context mode is valid
func IsValidMode(mode string) bool {
	return contains(ValidModes, mode)
}

// IsValidKind checks if the given declaration kind is valid
func IsValidKind(kind string) bool {
	return contains(ValidKinds, kind)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if s == v {
			return true
		}
	}
	return false
}

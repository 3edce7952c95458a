package config

// Defaults returns the built-in configuration values.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"ignore": []string{
			".git/**",
			"node_modules/**",
			"vendor/**",
			"**/.DS_Store",
		},
		"max_depth":       12,
		"follow_symlinks": false,
		"archived_statuses": []string{
			"archived",
			"backup",
			"deprecated",
			"obsolete",
		},
	}
}

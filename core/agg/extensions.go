package agg

import (
	"path/filepath"
	"strings"
)

// sourceExtensions is the allowlist of file types that count as source for
// aggregation: programming and scripting languages, markup with logic, and
// infrastructure-as-code. Checked case-insensitively.
var sourceExtensions = map[string]struct{}{
	// Programming languages
	".go":     {},
	".py":     {},
	".js":     {},
	".jsx":    {},
	".ts":     {},
	".tsx":    {},
	".mjs":    {},
	".cjs":    {},
	".java":   {},
	".kt":     {},
	".kts":    {},
	".scala":  {},
	".rb":     {},
	".php":    {},
	".c":      {},
	".h":      {},
	".cpp":    {},
	".cc":     {},
	".cxx":    {},
	".hpp":    {},
	".cs":     {},
	".rs":     {},
	".swift":  {},
	".m":      {},
	".mm":     {},
	".dart":   {},
	".lua":    {},
	".pl":     {},
	".pm":     {},
	".r":      {},
	".jl":     {},
	".ex":     {},
	".exs":    {},
	".erl":    {},
	".hrl":    {},
	".clj":    {},
	".cljs":   {},
	".groovy": {},

	// Scripting
	".sh":   {},
	".bash": {},
	".zsh":  {},
	".fish": {},
	".ps1":  {},
	".psm1": {},
	".bat":  {},
	".cmd":  {},

	// Markup with logic / templates / queries
	".sql":    {},
	".html":   {},
	".htm":    {},
	".css":    {},
	".scss":   {},
	".sass":   {},
	".less":   {},
	".vue":    {},
	".svelte": {},

	// Infrastructure as code / config
	".tf":     {},
	".tfvars": {},
	".hcl":    {},
	".yaml":   {},
	".yml":    {},
	".toml":   {},
}

// IsSourceFile reports whether the path's extension is in the recognized
// source-file allowlist. The check is case-insensitive.
func IsSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	_, ok := sourceExtensions[ext]
	return ok
}

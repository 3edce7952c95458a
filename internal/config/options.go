package config

import (
	"github.com/specforge/schemascan/internal/resolver"
	"github.com/specforge/schemascan/internal/scanner"
)

// ScannerOptions translates the loaded configuration into scanner options.
func (c *Config) ScannerOptions() scanner.Options {
	return scanner.Options{
		IgnoreGlobs:    c.IgnoreGlobs,
		MaxDepth:       c.MaxDepth,
		FollowSymlinks: c.FollowSymlinks,
		Resolver:       c.ResolverOptions(),
	}
}

// ResolverOptions translates the configured priority chain and archived
// vocabulary into resolver options.
func (c *Config) ResolverOptions() resolver.Options {
	var chain []resolver.Reason
	for _, stage := range c.PriorityChain {
		chain = append(chain, resolver.Reason(stage))
	}
	return resolver.Options{
		Chain:            chain,
		ArchivedStatuses: c.ArchivedStatuses,
	}
}

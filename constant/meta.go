// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Kinoteka is the canonical application identifier used for filesystem paths and CLI branding.
	Kinoteka = "kinoteka"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// Repository is the GitHub owner/name releases are published under.
	Repository = "kinoteka-cli/kinoteka"

	// UserAgent is sent with every request to the streaming service API.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

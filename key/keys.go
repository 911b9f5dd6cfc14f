// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Streaming service endpoint - these keys locate the remote API and the origin embedded players report.
const (
	ServerURL     = "server.url"
	ServerOrigin  = "server.origin"
	ServerTimeout = "server.timeout"
)

// Network transport tuning.
const (
	NetworkImpersonate = "network.impersonate"
)

// Media Playback - these keys select the external players and how sessions resume.
const (
	Player                     = "player.default"
	PlayerBrowser              = "player.browser"
	PlayerCompletionPercentage = "player.completion_percentage"
	PlayerResume               = "player.resume"
)

// Progress Reporting - these keys control the watch-position heartbeat.
const (
	ProgressInterval = "progress.interval"
)

// History Tracking - these keys configure the local mirror of reported watch positions.
const (
	HistorySaveOnWatch = "history.save_on_watch"
)

// Search Interaction.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive card's styling.
const (
	TUIItemSpacing = "tui.item_spacing"
	TUIShowURLs    = "tui.show_urls"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

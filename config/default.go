package config

import "github.com/kinoteka-cli/kinoteka/key"

// Default maps every configuration key to its field.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

var fields = []Field{
	{key.ServerURL, "http://localhost:8000", "Base URL of the streaming service.\nThe API is expected under /api/v1"},
	{key.ServerOrigin, "", "Origin reported to embedded players.\nDerived from server.url when empty"},
	{key.ServerTimeout, 30, "Timeout in seconds for a single API request"},

	{key.NetworkImpersonate, false, "Use a browser TLS fingerprint for API requests"},

	{key.Player, "mpv", "Native media player to use for direct files (mpv, iina)"},
	{key.PlayerBrowser, "", "Browser used to open embedded players.\nSystem default when empty"},
	{key.PlayerCompletionPercentage, 90, "Percentage after which an entry counts as watched (1-100)"},
	{key.PlayerResume, true, "Resume playback from the last reported position"},

	{key.ProgressInterval, 30, "Seconds of playback between two progress reports"},
	{key.HistorySaveOnWatch, true, "Mirror reported watch progress into the local history"},
	{key.SearchShowQuerySuggestions, true, "Show query suggestions when searching"},

	{key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)"},
	{key.TUIItemSpacing, 1, "Spacing between items in the TUI"},
	{key.TUIShowURLs, false, "Show source URLs under episodes"},

	{key.LogsWrite, false, "Write logs"},
	{key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace"},
	{key.LogsJson, false, "Use json format for logs"},

	{key.CliColored, true, "Enable colored CLI output"},
	{key.CliVersionCheck, false, "Enable automatic version check"},
}

func init() {
	for _, f := range fields {
		if _, exists := Default[f.Key]; exists {
			panic("duplicate config key: " + f.Key)
		}
		Default[f.Key] = f
		EnvExposed = append(EnvExposed, f.Key)
	}
}

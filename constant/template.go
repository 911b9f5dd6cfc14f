// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Frame element attributes shared by every embedded provider player.
const (
	FrameAllow          = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"
	FrameReferrerPolicy = "strict-origin-when-cross-origin"
)

// FrameTemplate is a Go html/template for the page that hosts an embedded provider player.
const FrameTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="referrer" content="{{ .ReferrerPolicy }}">
<title>{{ .Title }}</title>
<style>
  html, body { margin: 0; height: 100%; background: #000; }
  .player { width: 100%; height: 100%; display: flex; align-items: center; justify-content: center; }
  .player iframe { width: 100%; aspect-ratio: 16/9; max-height: 100%; display: block; border: 0; }
</style>
</head>
<body>
<div class="player">
  <iframe src="{{ .Src }}" frameborder="0" allowfullscreen
          allow="{{ .Allow }}"
          referrerpolicy="{{ .ReferrerPolicy }}"></iframe>
</div>
</body>
</html>
`

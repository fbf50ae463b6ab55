package web

import "embed"

// Static contains the front-end assets for the demo page.
//
//go:embed static
var Static embed.FS

// Package prompts embeds the server-side prompt templates for the /ai endpoints.
package prompts

import "embed"

//go:embed *.txt
var FS embed.FS

package cli

const documentTemplate = `
=== Document ===

Title:      {{.Title}}
ID:         {{.ID}}
Background: {{.Background}}
Elements:   {{.Elements}}
Last order: {{.LastOrder}}
{{- if not .UpdatedAt.IsZero}}
Updated:    {{.UpdatedAt.Format "2006-01-02 15:04:05"}}
{{- end}}
{{- if .Offline}}
Mode:       offline (changes are not saved)
{{- end}}
{{- if .Pending}}
Pending:    {{.Pending}} event(s) waiting for the server
{{- end}}
`

const replayTemplate = `
=== Replay ===

Snapshot order: {{.SnapshotOrder}}
Last order:     {{.LastOrder}}
Applied:        {{.Applied}}
Skipped:        {{.Skipped}}
Duplicates:     {{.Duplicates}}
Elements:       {{.Elements}}
Background:     {{.Background}}
`

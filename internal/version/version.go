// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Prometheus metrics, catalog change events, snapshot export at --at
// 0.2.0 - Catalog view, hazard filter and selection, time scale controls
// 0.1.0 - Initial release: orbit view, NeoWs and app catalog envelopes, headless modes

// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Narration playback via beep, Prometheus metrics endpoint, YAML config
// 0.2.0 - Textured bodies, mouse picking with tooltip and info panel, orbit controls
// 0.1.0 - Initial release: ray-cast orrery view, Keplerian planet, PHA set, headless summary

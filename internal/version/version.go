// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Lights and material toggles, follow camera easing, TOML/YAML body tables
// 0.2.0 - Moons nested under planet pivots, headless summary and JSON snapshot
// 0.1.0 - Initial release: descriptor table, top-down orrery view, speed control

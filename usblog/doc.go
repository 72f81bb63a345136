// Package usblog wraps log/slog with component-tagged helpers shared by
// usbcore and its surrounding tooling. It mirrors the process-wide
// logger/level pattern common to small embedded-adjacent Go stacks:
// a single mutable default logger, a shared level knob, and plain
// functions rather than an injected logger value, since the core driver
// is expected to run in contexts (bare-metal, TinyGo) where threading a
// logger through every constructor is impractical.
package usblog

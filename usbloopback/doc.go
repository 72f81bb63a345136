// Package usbloopback provides an in-memory usbcore.LLD that simulates a
// USB peripheral controller without any real hardware. It exists so
// usbcore's control and transfer state machines can be exercised by tests
// and by the demo binary's "trace" mode, standing in for a register-level
// driver the way the FIFO HAL in the example this package is modeled on
// stands in for a physical link.
//
// Unlike that FIFO HAL, which shuttles bytes across named pipes to a
// separate host process, usbloopback holds everything in process memory
// and drives completions from a single supervised goroutine, so a test can
// inject a SETUP packet or OUT data and then deterministically wait for the
// resulting Driver callback.
package usbloopback

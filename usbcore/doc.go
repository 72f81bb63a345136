// Package usbcore implements the hardware-independent upper half of a USB
// 2.0 peripheral driver: the endpoint-0 control transfer state machine,
// the standard request handler, driver lifecycle, and a non-EP0 transfer
// surface for bulk/interrupt/isochronous endpoints.
//
// The package never touches hardware directly. All register-level work is
// delegated to an [LLD] implementation supplied by the caller; usbcore
// only decides *what* to do and calls back into the LLD to make it
// happen. A software LLD usable for tests and demos lives in
// [github.com/ardnew/usbcore/usbloopback].
//
// # Architecture
//
//   - [Driver] holds all per-peripheral state: lifecycle, EP0 phase,
//     address, configuration, status word, and the endpoint table.
//   - [LLD] is the narrow capability interface the driver depends on.
//   - [Config] carries the three application callbacks: descriptor
//     lookup, an optional class-request hook, and event notification.
//
// # Concurrency
//
// Every exported method on [Driver] is safe to call from whatever
// execution context the LLD invokes it from (interrupt handler, signal
// handler, or a dedicated goroutine acting as one) and does not block or
// allocate beyond what a single control transfer's response requires.
// [Driver.Start] and [Driver.Stop] are the only calls expected from
// ordinary application goroutines; every other method is part of the
// LLD-facing callback surface.
package usbcore

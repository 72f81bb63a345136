// Package usberr declares the sentinel errors shared across the usbcore
// driver, its loopback LLD, and the demo tooling built on top of it.
//
// Callers should compare against these values with errors.Is; call sites
// that add context wrap them with fmt.Errorf and %w rather than defining
// new sentinels.
package usberr

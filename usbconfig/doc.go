// Package usbconfig loads demo-binary configuration (address mode, EP0 max
// packet size, endpoint count) from a file and environment variables via
// spf13/viper. usbcore itself takes no dependency on this
// package; only cmd/usbdevice-sim does, keeping the core driver free of any
// configuration-file format opinion.
package usbconfig

// Package usbdesc provides standard USB descriptor types and a Table that
// answers usbcore.Config.GetDescriptor from a fixed set of device,
// configuration, and string descriptors assembled ahead of time. usbcore
// itself has no descriptor model; an application builds a Table once at
// startup and passes Table.Get as its GetDescriptor callback.
package usbdesc

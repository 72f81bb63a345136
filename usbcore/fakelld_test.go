package usbcore_test

import "github.com/ardnew/usbcore/usbcore"

// fakeLLD is a hand-stepped usbcore.LLD test double. Unlike usbloopback, it
// never calls back into the driver itself — StartIn/StartOut only record
// what was armed, and the test drives completions explicitly by calling
// Driver.EP0InComplete/EP0OutComplete (or the non-EP0 equivalents) itself.
// This keeps these tests free of goroutines entirely.
type fakeLLD struct {
	started bool
	address uint8

	lastInEP  uint8
	lastIn    []byte
	inCalls   int
	lastOutEP uint8
	lastOut   []byte
	outCalls  int

	statusIn  map[uint8]usbcore.EndpointStatus
	statusOut map[uint8]usbcore.EndpointStatus

	startInErr  error
	startOutErr error
}

func newFakeLLD() *fakeLLD {
	return &fakeLLD{
		statusIn:  map[uint8]usbcore.EndpointStatus{},
		statusOut: map[uint8]usbcore.EndpointStatus{},
	}
}

func (f *fakeLLD) Init() error                           { return nil }
func (f *fakeLLD) Start(d *usbcore.Driver) error          { f.started = true; return nil }
func (f *fakeLLD) Stop(d *usbcore.Driver) error           { f.started = false; return nil }
func (f *fakeLLD) Reset(d *usbcore.Driver) error          { return nil }
func (f *fakeLLD) SetAddress(d *usbcore.Driver) error     { f.address = d.Address(); return nil }
func (f *fakeLLD) InitEndpoint(d *usbcore.Driver, ep uint8) error { return nil }
func (f *fakeLLD) DisableEndpoints(d *usbcore.Driver) error       { return nil }

func (f *fakeLLD) StartIn(d *usbcore.Driver, ep uint8, buf []byte) error {
	f.inCalls++
	f.lastInEP = ep
	f.lastIn = append([]byte(nil), buf...)
	return f.startInErr
}

func (f *fakeLLD) StartOut(d *usbcore.Driver, ep uint8, buf []byte) error {
	f.outCalls++
	f.lastOutEP = ep
	f.lastOut = buf
	return f.startOutErr
}

func (f *fakeLLD) ReadPacket(d *usbcore.Driver, ep uint8, buf []byte) (int, error) {
	return copy(buf, f.lastOut), nil
}

func (f *fakeLLD) WritePacket(d *usbcore.Driver, ep uint8, buf []byte) error {
	f.lastIn = append([]byte(nil), buf...)
	return nil
}

func (f *fakeLLD) StallIn(d *usbcore.Driver, ep uint8) error {
	f.statusIn[ep] = usbcore.EndpointStatusStalled
	return nil
}

func (f *fakeLLD) StallOut(d *usbcore.Driver, ep uint8) error {
	f.statusOut[ep] = usbcore.EndpointStatusStalled
	return nil
}

func (f *fakeLLD) ClearIn(d *usbcore.Driver, ep uint8) error {
	f.statusIn[ep] = usbcore.EndpointStatusActive
	return nil
}

func (f *fakeLLD) ClearOut(d *usbcore.Driver, ep uint8) error {
	f.statusOut[ep] = usbcore.EndpointStatusActive
	return nil
}

func (f *fakeLLD) StatusIn(d *usbcore.Driver, ep uint8) usbcore.EndpointStatus {
	return f.statusIn[ep]
}

func (f *fakeLLD) StatusOut(d *usbcore.Driver, ep uint8) usbcore.EndpointStatus {
	return f.statusOut[ep]
}

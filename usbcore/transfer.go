package usbcore

import "github.com/ardnew/usbcore/usberr"

// StartTransmit arms endpoint ep's IN side to transmit buf. It is the
// non-EP0 counterpart of the control transfer surface driven from
// EP0SetupReceived; callers use it directly, outside the SETUP/DATA/STATUS
// protocol EP0 enforces.
func (d *Driver) StartTransmit(ep uint8, buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot, err := d.nonZeroSlot(ep)
	if err != nil {
		return err
	}
	if slot.transmitting {
		return usberr.ErrBusy
	}
	slot.transmitting = true
	if err := d.lld.StartIn(d, ep, buf); err != nil {
		slot.transmitting = false
		return err
	}
	return nil
}

// StartReceive arms endpoint ep's OUT side to receive up to len(buf) bytes
// into buf.
func (d *Driver) StartReceive(ep uint8, buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot, err := d.nonZeroSlot(ep)
	if err != nil {
		return err
	}
	if slot.receiving {
		return usberr.ErrBusy
	}
	slot.receiving = true
	if err := d.lld.StartOut(d, ep, buf); err != nil {
		slot.receiving = false
		return err
	}
	return nil
}

// StallTransmit halts endpoint ep's IN side. Returns usberr.ErrBusy instead
// of stalling if a transmit is currently in flight; stalling mid-transaction
// would desynchronize the host from a transfer it still expects to complete.
func (d *Driver) StallTransmit(ep uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot, err := d.nonZeroSlot(ep)
	if err != nil {
		return err
	}
	if slot.transmitting {
		return usberr.ErrBusy
	}
	return d.lld.StallIn(d, ep)
}

// StallReceive halts endpoint ep's OUT side. Returns usberr.ErrBusy instead
// of stalling if a receive is currently in flight, for the same reason
// StallTransmit does.
func (d *Driver) StallReceive(ep uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot, err := d.nonZeroSlot(ep)
	if err != nil {
		return err
	}
	if slot.receiving {
		return usberr.ErrBusy
	}
	return d.lld.StallOut(d, ep)
}

// ReadPacket synchronously copies one already-received packet from
// endpoint ep into buf. Returns usberr.ErrBusy while a receive armed
// through StartReceive is still in flight, since the LLD's receive buffer
// is not safe to read until that transfer completes.
func (d *Driver) ReadPacket(ep uint8, buf []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot, err := d.nonZeroSlot(ep)
	if err != nil {
		return 0, err
	}
	if slot.receiving {
		return 0, usberr.ErrBusy
	}
	return d.lld.ReadPacket(d, ep, buf)
}

// WritePacket synchronously hands one packet to endpoint ep's transmit FIFO.
// Returns usberr.ErrBusy while a transmit armed through StartTransmit is
// still in flight, since the LLD's transmit FIFO is not safe to refill
// until that transfer completes.
func (d *Driver) WritePacket(ep uint8, buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot, err := d.nonZeroSlot(ep)
	if err != nil {
		return err
	}
	if slot.transmitting {
		return usberr.ErrBusy
	}
	return d.lld.WritePacket(d, ep, buf)
}

// NonEP0InComplete is invoked by the LLD when an armed IN transaction on a
// non-zero endpoint finishes.
func (d *Driver) NonEP0InComplete(ep uint8, err error) {
	d.mu.Lock()
	slot, serr := d.nonZeroSlot(ep)
	if serr != nil {
		d.mu.Unlock()
		return
	}
	slot.transmitting = false
	cb := slot.config.In.Callback
	d.mu.Unlock()
	if cb != nil {
		cb(d, ep, 0, err)
	}
}

// NonEP0OutComplete is invoked by the LLD when an armed OUT transaction on a
// non-zero endpoint finishes, reporting n bytes received.
func (d *Driver) NonEP0OutComplete(ep uint8, n int, err error) {
	d.mu.Lock()
	slot, serr := d.nonZeroSlot(ep)
	if serr != nil {
		d.mu.Unlock()
		return
	}
	slot.receiving = false
	slot.rxsize = n
	cb := slot.config.Out.Callback
	d.mu.Unlock()
	if cb != nil {
		cb(d, ep, n, err)
	}
}

// nonZeroSlot bounds-checks ep and returns its slot, requiring it to be
// initialized via InitEndpoint. Callers must already hold d.mu.
func (d *Driver) nonZeroSlot(ep uint8) (*endpointSlot, error) {
	if ep == 0 || int(ep) >= len(d.ep) {
		return nil, usberr.ErrInvalidEndpoint
	}
	slot := &d.ep[ep]
	if slot.config == nil {
		return nil, usberr.ErrInvalidEndpoint
	}
	return slot, nil
}

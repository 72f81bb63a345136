package usbcore

import "github.com/ardnew/usbcore/usblog"

// EP0SetupReceived is invoked by the LLD when a fresh 8-byte SETUP token
// has arrived on endpoint 0. It is only valid while EP0State is
// WAITING_SETUP; a SETUP arriving at any other time is a protocol error.
func (d *Driver) EP0SetupReceived(raw [8]byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ep0state != EP0WaitingSetup {
		d.ep0ProtocolError()
		return
	}

	d.setup = raw
	setup := ParseSetupPacket(raw)
	d.ep0wLength = setup.Length
	d.ep0endcb = nil

	resp, handled := ControlResponse{}, false
	if d.cfg.RequestsHook != nil {
		resp, handled = d.cfg.RequestsHook(d, setup)
	}
	if !handled && setup.IsStandard() {
		resp = d.handleStandardRequest(setup)
		handled = true
	}
	if !handled || !resp.accept {
		usblog.Warn(usblog.ComponentEP0, "setup rejected", "bRequest", setup.Request, "recipient", setup.Recipient())
		d.ep0ProtocolError()
		return
	}

	n := resp.length
	if uint16(n) > setup.Length {
		n = int(setup.Length)
	}
	d.ep0n = n
	d.ep0endcb = resp.callback

	if setup.IsDeviceToHost() {
		if n > 0 {
			d.ep0next = resp.data[:n]
			d.ep0state = EP0TX
			d.ep0zlpPending = false
			if err := d.lld.StartIn(d, 0, d.ep0next); err != nil {
				d.ep0ProtocolError()
			}
			return
		}
		d.ep0state = EP0WaitingSts
		if err := d.lld.StartOut(d, 0, nil); err != nil {
			d.ep0ProtocolError()
		}
		return
	}

	// HOST2DEV.
	if n > 0 {
		if n > len(d.ep0rxBuf) {
			n = len(d.ep0rxBuf)
			d.ep0n = n
		}
		d.ep0next = d.ep0rxBuf[:n]
		d.ep0state = EP0RX
		if err := d.lld.StartOut(d, 0, d.ep0next); err != nil {
			d.ep0ProtocolError()
		}
		return
	}
	d.ep0state = EP0SendingSts
	if err := d.lld.StartIn(d, 0, nil); err != nil {
		d.ep0ProtocolError()
	}
}

// EP0InComplete is invoked by the LLD when an armed IN transaction on
// endpoint 0 has finished transmitting.
func (d *Driver) EP0InComplete() {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.ep0state {
	case EP0TX:
		if d.ep0zlpPending {
			d.ep0zlpPending = false
			d.ep0state = EP0WaitingSts
			if err := d.lld.StartOut(d, 0, nil); err != nil {
				d.ep0ProtocolError()
			}
			return
		}
		maxIn := int(d.ep[0].config.In.MaxPacketSize)
		if maxIn > 0 && d.ep0n < int(d.ep0wLength) && d.ep0n%maxIn == 0 {
			// Short reply landing on a packet boundary: the host can't
			// tell the transfer ended without a trailing ZLP.
			d.ep0zlpPending = true
			if err := d.lld.StartIn(d, 0, nil); err != nil {
				d.ep0ProtocolError()
			}
			return
		}
		d.ep0state = EP0WaitingSts
		if err := d.lld.StartOut(d, 0, nil); err != nil {
			d.ep0ProtocolError()
		}

	case EP0SendingSts:
		if d.opts.addressMode == AddressModeLate {
			setup := ParseSetupPacket(d.setup)
			if setup.Recipient() == RecipientDevice && setup.Request == RequestSetAddress {
				d.commitAddress(uint8(setup.Value & 0x7F))
			}
		}
		d.ep0state = EP0WaitingSetup
		if cb := d.ep0endcb; cb != nil {
			d.ep0endcb = nil
			cb(d)
		}

	default:
		d.ep0ProtocolError()
	}
}

// EP0OutComplete is invoked by the LLD when an armed OUT transaction on
// endpoint 0 has finished receiving, reporting rxsize bytes actually
// received.
func (d *Driver) EP0OutComplete(rxsize int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.ep0state {
	case EP0RX:
		if rxsize > len(d.ep0next) {
			rxsize = len(d.ep0next)
		}
		d.ep0received = d.ep0next[:rxsize]
		d.ep[0].rxsize = rxsize
		d.ep0state = EP0SendingSts
		if err := d.lld.StartIn(d, 0, nil); err != nil {
			d.ep0ProtocolError()
		}

	case EP0WaitingSts:
		if rxsize != 0 {
			d.ep0ProtocolError()
			return
		}
		d.ep0state = EP0WaitingSetup
		if cb := d.ep0endcb; cb != nil {
			d.ep0endcb = nil
			cb(d)
		}

	default:
		d.ep0ProtocolError()
	}
}

// ep0ProtocolError stalls both directions of EP0, fires EventStalled, and
// rearms WAITING_SETUP so the host can recover with a fresh SETUP.
// Callers must already hold d.mu.
func (d *Driver) ep0ProtocolError() {
	_ = d.lld.StallIn(d, 0)
	_ = d.lld.StallOut(d, 0)
	d.ep0state = EP0WaitingSetup
	d.ep0zlpPending = false
	usblog.Warn(usblog.ComponentEP0, "protocol stall")
	if d.cfg.EventCB != nil {
		d.cfg.EventCB(d, EventStalled)
	}
}

// commitAddress writes addr to the LLD, fires EventAddress, and advances
// the lifecycle state to SELECTED. Callers must already hold d.mu; it is
// released while LLD.SetAddress runs, since SetAddress reads d.Address().
func (d *Driver) commitAddress(addr uint8) {
	d.address = addr
	d.mu.Unlock()
	_ = d.lld.SetAddress(d)
	d.mu.Lock()
	d.state = StateSelected
	usblog.Debug(usblog.ComponentEP0, "address committed", "address", addr)
	if d.cfg.EventCB != nil {
		d.cfg.EventCB(d, EventAddress)
	}
}

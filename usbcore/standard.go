package usbcore

import "encoding/binary"

// handleStandardRequest dispatches a Standard request by recipient. Callers
// must already hold d.mu. A recipient or request combination this driver
// does not recognize returns Reject(), which stalls EP0.
func (d *Driver) handleStandardRequest(s SetupPacket) ControlResponse {
	switch s.Recipient() {
	case RecipientDevice:
		return d.handleDeviceRequest(s)
	case RecipientInterface:
		return d.handleInterfaceRequest(s)
	case RecipientEndpoint:
		return d.handleEndpointRequest(s)
	default:
		return Reject()
	}
}

func (d *Driver) handleDeviceRequest(s SetupPacket) ControlResponse {
	switch s.Request {
	case RequestGetStatus:
		if !s.IsDeviceToHost() || s.Value != 0 {
			return Reject()
		}
		binary.LittleEndian.PutUint16(d.statusBuf[:], d.status)
		return Accept(d.statusBuf[:])

	case RequestClearFeature:
		if s.Value == FeatureDeviceRemoteWakeup {
			d.status &^= deviceStatusRemoteWakeup
			return AcceptStatusOnly()
		}
		return Reject()

	case RequestSetFeature:
		if s.Value == FeatureDeviceRemoteWakeup {
			d.status |= deviceStatusRemoteWakeup
			return AcceptStatusOnly()
		}
		if s.Value == FeatureTestMode {
			return AcceptStatusOnly()
		}
		return Reject()

	case RequestSetAddress:
		if s.Value > 0x7F {
			return Reject()
		}
		if d.opts.addressMode == AddressModeEarly {
			d.commitAddress(uint8(s.Value))
			return AcceptStatusOnly()
		}
		// AddressModeLate commits from EP0InComplete once the status-stage
		// IN has actually gone out, by re-parsing d.setup.
		return AcceptStatusOnly()

	case RequestGetDescriptor:
		if !s.IsDeviceToHost() {
			return Reject()
		}
		return d.getDescriptor(s)

	case RequestGetConfiguration:
		if !s.IsDeviceToHost() {
			return Reject()
		}
		d.configBuf[0] = d.configuration
		return Accept(d.configBuf[:])

	case RequestSetConfiguration:
		value := uint8(s.Value)
		return AcceptStatusOnly().WithCallback(func(d *Driver) {
			d.configuration = value
			if value == 0 {
				d.state = StateSelected
			} else {
				d.state = StateActive
			}
			if d.cfg.EventCB != nil {
				d.cfg.EventCB(d, EventConfigured)
			}
		})

	default:
		return Reject()
	}
}

func (d *Driver) handleInterfaceRequest(s SetupPacket) ControlResponse {
	switch s.Request {
	case RequestGetStatus:
		if !s.IsDeviceToHost() {
			return Reject()
		}
		d.statusBuf[0], d.statusBuf[1] = 0, 0
		return Accept(d.statusBuf[:])
	case RequestGetInterface, RequestSetInterface:
		// No interface/alt-setting model in this core; an application
		// RequestsHook is the place to answer these for a real device.
		return Reject()
	default:
		return Reject()
	}
}

func (d *Driver) handleEndpointRequest(s SetupPacket) ControlResponse {
	ep := s.EndpointNumber()
	if int(ep) >= len(d.ep) {
		return Reject()
	}
	switch s.Request {
	case RequestGetStatus:
		if !s.IsDeviceToHost() {
			return Reject()
		}
		var status EndpointStatus
		if s.EndpointIsIn() {
			status = d.lld.StatusIn(d, ep)
		} else {
			status = d.lld.StatusOut(d, ep)
		}
		switch status {
		case EndpointStatusStalled:
			d.statusBuf[0] = 1
		case EndpointStatusActive:
			d.statusBuf[0] = 0
		default:
			return Reject()
		}
		d.statusBuf[1] = 0
		return Accept(d.statusBuf[:])

	case RequestClearFeature:
		if s.Value != FeatureEndpointHalt {
			return Reject()
		}
		return AcceptStatusOnly().WithCallback(func(d *Driver) {
			if s.EndpointIsIn() {
				_ = d.lld.ClearIn(d, ep)
			} else {
				_ = d.lld.ClearOut(d, ep)
			}
		})

	case RequestSetFeature:
		if s.Value != FeatureEndpointHalt {
			return Reject()
		}
		return AcceptStatusOnly().WithCallback(func(d *Driver) {
			if s.EndpointIsIn() {
				_ = d.lld.StallIn(d, ep)
			} else {
				_ = d.lld.StallOut(d, ep)
			}
		})

	case RequestSynchFrame:
		d.statusBuf[0], d.statusBuf[1] = 0, 0
		return Accept(d.statusBuf[:2])

	default:
		return Reject()
	}
}

// getDescriptor answers GET_DESCRIPTOR by delegating to the
// application-supplied Config.GetDescriptor, rendering its result into
// d.descRespBuf when an encoding header must be synthesized.
func (d *Driver) getDescriptor(s SetupPacket) ControlResponse {
	if d.cfg.GetDescriptor == nil {
		return Reject()
	}
	desc, ok := d.cfg.GetDescriptor(s.DescriptorType(), s.DescriptorIndex(), s.Index)
	if !ok {
		return Reject()
	}
	switch desc.Encoding {
	case EncodingRaw:
		return Accept(desc.Bytes)
	case EncodingUTF16String:
		n := len(desc.Bytes) + 2
		if n > len(d.descRespBuf) {
			n = len(d.descRespBuf)
		}
		d.descRespBuf[0] = uint8(n)
		d.descRespBuf[1] = descriptorTypeString
		copy(d.descRespBuf[2:n], desc.Bytes)
		return Accept(d.descRespBuf[:n])
	default:
		return Reject()
	}
}

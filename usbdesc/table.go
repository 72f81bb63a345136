package usbdesc

import "github.com/ardnew/usbcore/usbcore"

// Table holds a fixed set of pre-rendered descriptors and answers
// usbcore.Config.GetDescriptor by type and index. Configurations are stored
// fully rendered (header plus interface and endpoint descriptors
// concatenated), the way a real device's descriptor ROM would hold them.
type Table struct {
	device         []byte
	configurations [][]byte
	strings        map[uint8][]byte
	languages      []byte
}

// NewTable builds an empty Table. Use the setters to populate it before
// passing Get as a usbcore.Config.GetDescriptor callback.
func NewTable() *Table {
	return &Table{strings: make(map[uint8][]byte)}
}

// SetDevice renders dev into the table's device descriptor slot.
func (t *Table) SetDevice(dev DeviceDescriptor) *Table {
	buf := make([]byte, DeviceDescriptorSize)
	dev.MarshalTo(buf)
	t.device = buf
	return t
}

// AddConfiguration appends a fully rendered configuration descriptor (its
// header plus every interface and endpoint descriptor that follows it,
// concatenated in wire order) as the next configuration, returned by Get
// for descriptor index len(existing).
func (t *Table) AddConfiguration(rendered []byte) *Table {
	t.configurations = append(t.configurations, rendered)
	return t
}

// SetString installs the UTF-16LE string descriptor bytes (without the
// two-byte header) at index idx. Get returns them with
// EncodingUTF16String, and usbcore synthesizes the header when replying.
func (t *Table) SetString(idx uint8, utf16 []byte) *Table {
	t.strings[idx] = utf16
	return t
}

// SetLanguages renders the string index 0 language ID list.
func (t *Table) SetLanguages(langIDs ...uint16) *Table {
	buf := make([]byte, 2+len(langIDs)*2)
	LanguageDescriptorTo(buf, langIDs...)
	t.languages = buf
	return t
}

// Get implements the usbcore.Config.GetDescriptor signature.
func (t *Table) Get(dtype, dindex uint8, langID uint16) (usbcore.Descriptor, bool) {
	switch dtype {
	case TypeDevice:
		if t.device == nil {
			return usbcore.Descriptor{}, false
		}
		return usbcore.Descriptor{Bytes: t.device, Encoding: usbcore.EncodingRaw}, true

	case TypeConfiguration:
		if int(dindex) >= len(t.configurations) {
			return usbcore.Descriptor{}, false
		}
		return usbcore.Descriptor{Bytes: t.configurations[dindex], Encoding: usbcore.EncodingRaw}, true

	case TypeString:
		if dindex == 0 {
			if t.languages == nil {
				return usbcore.Descriptor{}, false
			}
			return usbcore.Descriptor{Bytes: t.languages, Encoding: usbcore.EncodingRaw}, true
		}
		bytes, ok := t.strings[dindex]
		if !ok {
			return usbcore.Descriptor{}, false
		}
		return usbcore.Descriptor{Bytes: bytes, Encoding: usbcore.EncodingUTF16String}, true

	default:
		return usbcore.Descriptor{}, false
	}
}

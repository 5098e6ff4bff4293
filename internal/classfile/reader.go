package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const magic = 0xCAFEBABE

func newReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

type attribute struct {
	NameIndex uint16
	Info      []byte
}

type member struct {
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []attribute
}

type rawClass struct {
	pool            pool
	accessFlags     uint16
	thisClass       uint16
	superClass      uint16
	interfaces      []uint16
	fields          []member
	methods         []member
	attributes      []attribute
}

// decoder wraps bytes.Reader with the panic/recover-free big-endian reads
// the class format needs (every multi-byte field is big-endian per JVMS).
type decoder struct {
	r   *bytes.Reader
	err error
}

func (d *decoder) u1() uint8 {
	if d.err != nil {
		return 0
	}
	b, err := d.r.ReadByte()
	if err != nil {
		d.err = err
		return 0
	}
	return b
}

func (d *decoder) u2() uint16 {
	var v uint16
	d.readBinary(&v)
	return v
}

func (d *decoder) u4() uint32 {
	var v uint32
	d.readBinary(&v)
	return v
}

func (d *decoder) readBinary(v any) {
	if d.err != nil {
		return
	}
	if err := binary.Read(d.r, binary.BigEndian, v); err != nil {
		d.err = err
	}
}

func (d *decoder) bytesN(n uint32) []byte {
	if d.err != nil {
		return nil
	}
	buf := make([]byte, n)
	if _, err := d.r.Read(buf); err != nil {
		d.err = err
		return nil
	}
	return buf
}

// parseRaw decodes the class-file envelope down to the member/attribute
// level, leaving attribute payloads as opaque byte slices for the
// higher-level extraction rules to interpret on demand.
func parseRaw(data []byte) (*rawClass, error) {
	d := &decoder{r: bytes.NewReader(data)}
	got := d.u4()
	if d.err != nil {
		return nil, Error{Kind: ErrParse, Detail: d.err.Error()}
	}
	if got != magic {
		return nil, Error{Kind: ErrParse, Detail: fmt.Sprintf("bad magic %#x", got)}
	}
	d.u2() // minor_version
	d.u2() // major_version

	cpCount := d.u2()
	p := make(pool, cpCount)
	for i := 1; i < int(cpCount); i++ {
		tag := d.u1()
		entry := poolEntry{Tag: tag}
		switch tag {
		case tagUtf8:
			length := d.u2()
			entry.Text = string(d.bytesN(uint32(length)))
		case tagInteger, tagFloat:
			d.u4()
		case tagLong, tagDouble:
			d.u4()
			d.u4()
			p[i] = entry
			i++ // occupies two slots
			continue
		case tagClass, tagString, tagMethodType, tagModule, tagPackage:
			entry.NameIndex = d.u2()
		case tagFieldref, tagMethodref, tagInterfaceMethodref:
			entry.ClassIndex = d.u2()
			entry.NameAndTypeIndex = d.u2()
		case tagNameAndType:
			entry.NameIndex = d.u2()
			entry.DescriptorIndex = d.u2()
		case tagMethodHandle:
			d.u1()
			d.u2()
		case tagDynamic, tagInvokeDynamic:
			d.u2()
			d.u2()
		default:
			return nil, Error{Kind: ErrParse, Detail: fmt.Sprintf("unknown constant tag %d", tag)}
		}
		if d.err != nil {
			return nil, Error{Kind: ErrParse, Detail: d.err.Error()}
		}
		p[i] = entry
	}

	rc := &rawClass{pool: p}
	rc.accessFlags = d.u2()
	rc.thisClass = d.u2()
	rc.superClass = d.u2()

	ifaceCount := d.u2()
	rc.interfaces = make([]uint16, ifaceCount)
	for i := range rc.interfaces {
		rc.interfaces[i] = d.u2()
	}

	var derr error
	rc.fields, derr = d.readMembers()
	if derr != nil {
		return nil, derr
	}
	rc.methods, derr = d.readMembers()
	if derr != nil {
		return nil, derr
	}
	rc.attributes, derr = d.readAttributes()
	if derr != nil {
		return nil, derr
	}
	if d.err != nil {
		return nil, Error{Kind: ErrParse, Detail: d.err.Error()}
	}
	return rc, nil
}

func (d *decoder) readMembers() ([]member, error) {
	count := d.u2()
	out := make([]member, count)
	for i := range out {
		out[i].AccessFlags = d.u2()
		out[i].NameIndex = d.u2()
		out[i].DescriptorIndex = d.u2()
		attrs, err := d.readAttributes()
		if err != nil {
			return nil, err
		}
		out[i].Attributes = attrs
	}
	if d.err != nil {
		return nil, Error{Kind: ErrParse, Detail: d.err.Error()}
	}
	return out, nil
}

func (d *decoder) readAttributes() ([]attribute, error) {
	count := d.u2()
	out := make([]attribute, count)
	for i := range out {
		out[i].NameIndex = d.u2()
		length := d.u4()
		out[i].Info = d.bytesN(length)
	}
	if d.err != nil {
		return nil, Error{Kind: ErrParse, Detail: d.err.Error()}
	}
	return out, nil
}

func findAttribute(p pool, attrs []attribute, name string) (attribute, bool) {
	for _, a := range attrs {
		if n, ok := p.utf8(a.NameIndex); ok && n == name {
			return a, true
		}
	}
	return attribute{}, false
}

func hasAttribute(p pool, attrs []attribute, name string) bool {
	_, ok := findAttribute(p, attrs, name)
	return ok
}

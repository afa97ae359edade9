package bitplane

import (
	"fmt"
	"io"
)

// Serialized layout: Bytes() bytes, row-major, cell index c stored at bit
// c%8 (LSB first) of byte c/8.

// MarshalBinary encodes the plane in the flat bit-packed layout
func (p *Plane) MarshalBinary() ([]byte, error) {
	buf := make([]byte, p.Bytes())
	p.encode(buf)
	return buf, nil
}

// UnmarshalBinary decodes data produced by MarshalBinary for a plane of the
// same dimension. The plane must already be allocated with New.
func (p *Plane) UnmarshalBinary(data []byte) error {
	if p.dim == 0 {
		return ErrInvalidDim
	}
	if len(data) < p.Bytes() {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrShortData, len(data), p.Bytes())
	}
	if len(data) > p.Bytes() {
		return fmt.Errorf("bitplane: %d trailing bytes after %dx%d plane", len(data)-p.Bytes(), p.dim, p.dim)
	}
	p.decode(data)
	return nil
}

// Decode allocates a plane of side dim from its serialized form
func Decode(dim int, data []byte) (*Plane, error) {
	p, err := New(dim)
	if err != nil {
		return nil, err
	}
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return p, nil
}

// WriteTo writes the serialized plane to w
func (p *Plane) WriteTo(w io.Writer) (int64, error) {
	buf, _ := p.MarshalBinary()
	n, err := w.Write(buf)
	return int64(n), err
}

// ReadFrom reads exactly Bytes() bytes from r into the plane
func (p *Plane) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, p.Bytes())
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return int64(n), fmt.Errorf("%w: read %d of %d bytes", ErrShortData, n, len(buf))
		}
		return int64(n), err
	}
	p.decode(buf)
	return int64(n), nil
}

func (p *Plane) encode(buf []byte) {
	rowBytes := p.dim / 8
	for y := 0; y < p.dim; y++ {
		row := p.words[y*p.stride : (y+1)*p.stride]
		out := buf[y*rowBytes : (y+1)*rowBytes]
		for j := range out {
			out[j] = byte(row[j>>3] >> uint((j&7)*8))
		}
	}
}

func (p *Plane) decode(buf []byte) {
	rowBytes := p.dim / 8
	for y := 0; y < p.dim; y++ {
		row := p.words[y*p.stride : (y+1)*p.stride]
		clear(row)
		in := buf[y*rowBytes : (y+1)*rowBytes]
		for j, b := range in {
			row[j>>3] |= uint64(b) << uint((j&7)*8)
		}
	}
}

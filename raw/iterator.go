package raw

import (
	"bytes"
	"encoding/binary"

	"github.com/chaisql/docwire/encoding"
	"github.com/chaisql/docwire/types"
	"github.com/cockroachdb/errors"
)

// Iterator walks the elements of an encoded document or array in place.
// Use it like a bufio.Scanner:
//
//	it := doc.Iter()
//	for it.Next() {
//	    el := it.Element()
//	    ...
//	}
//	if err := it.Err(); err != nil {
//	    ...
//	}
//
// A structural problem stops the iteration for good: Next keeps returning
// false and Err reports the failure.
type Iterator struct {
	buf  []byte
	off  int
	el   Element
	err  error
	done bool
}

// Next advances to the next element. It returns false once the iterator is
// exhausted or broken.
func (it *Iterator) Next() bool {
	if it.err != nil || it.done {
		return false
	}

	last := len(it.buf) - 1
	if it.off >= last {
		it.done = true
		switch {
		case last < 4 || it.off != last:
			it.err = errors.Wrap(encoding.ErrTruncated, "document ends before its terminator")
		case it.buf[last] != 0:
			it.err = errors.Wrap(encoding.ErrTerminator, "document is not NUL-terminated")
		}
		return false
	}

	el, next, err := readRawElement(it.buf, it.off)
	if err != nil {
		it.err = err
		return false
	}

	it.el = el
	it.off = next
	return true
}

// Element returns the element Next last advanced to.
func (it *Iterator) Element() Element { return it.el }

// Err returns the error that stopped the iteration, if any.
func (it *Iterator) Err() error { return it.err }

// readRawElement slices one element out of buf starting at the marker byte
// at off. The payload is sized and bounds-checked but not decoded.
func readRawElement(buf []byte, off int) (Element, int, error) {
	last := len(buf) - 1

	if buf[off] == 0 {
		return Element{}, 0, errors.Wrap(encoding.ErrTerminator, "document terminator before declared end")
	}
	typ := types.Type(buf[off])

	keyStart := off + 1
	i := bytes.IndexByte(buf[keyStart:last], 0)
	if i < 0 {
		return Element{}, 0, errors.Wrap(encoding.ErrTruncated, "unterminated key")
	}
	key := buf[keyStart : keyStart+i]
	valStart := keyStart + i + 1

	if !typ.Valid() {
		return Element{}, 0, errors.Wrapf(encoding.ErrUnknownType, "marker 0x%02X for key %q", buf[off], key)
	}

	n, err := sizeValue(typ, buf[valStart:last])
	if err != nil {
		return Element{}, 0, encoding.WithPathSegment(err, string(key))
	}

	return Element{
		typ:   typ,
		key:   key,
		value: buf[valStart : valStart+n],
		start: off,
		end:   valStart + n,
	}, valStart + n, nil
}

// sizeValue returns how many bytes the payload of a t element occupies at
// the start of b, where b extends to the enclosing document's terminator.
// Lengths, signs and bounds are checked; payload content is not.
func sizeValue(t types.Type, b []byte) (int, error) {
	fixed := func(n int, what string) (int, error) {
		if len(b) < n {
			return 0, errors.Wrapf(encoding.ErrTruncated, "%s: need %d bytes, have %d", what, n, len(b))
		}
		return n, nil
	}

	switch t {
	case types.TypeDouble:
		return fixed(8, "double")

	case types.TypeString:
		return sizeString(b, "string")

	case types.TypeDocument, types.TypeArray:
		return sizeDocument(b)

	case types.TypeBinary:
		if len(b) < 5 {
			return 0, errors.Wrapf(encoding.ErrTruncated, "binary header: need 5 bytes, have %d", len(b))
		}
		l := int32(binary.LittleEndian.Uint32(b))
		if l < 0 {
			return 0, errors.Wrapf(encoding.ErrMalformedLength, "binary length %d is negative", l)
		}
		// Compare in int64: 5+int(l) can wrap on 32-bit platforms.
		if int64(l) > int64(len(b)-5) {
			return 0, errors.Wrapf(encoding.ErrTruncated, "binary claims %d bytes, %d available", l, len(b)-5)
		}
		return 4 + 1 + int(l), nil

	case types.TypeUndefined, types.TypeNull, types.TypeMinKey, types.TypeMaxKey:
		return 0, nil

	case types.TypeObjectID:
		return fixed(12, "object id")

	case types.TypeBoolean:
		return fixed(1, "boolean")

	case types.TypeDateTime:
		return fixed(8, "datetime")

	case types.TypeRegex:
		p := bytes.IndexByte(b, 0)
		if p < 0 {
			return 0, errors.Wrap(encoding.ErrTruncated, "unterminated regex pattern")
		}
		o := bytes.IndexByte(b[p+1:], 0)
		if o < 0 {
			return 0, errors.Wrap(encoding.ErrTruncated, "unterminated regex options")
		}
		return p + 1 + o + 1, nil

	case types.TypeDBPointer:
		n, err := sizeString(b, "dbPointer namespace")
		if err != nil {
			return 0, err
		}
		if len(b)-n < 12 {
			return 0, errors.Wrapf(encoding.ErrTruncated, "dbPointer id: need 12 bytes, have %d", len(b)-n)
		}
		return n + 12, nil

	case types.TypeJavaScript:
		return sizeString(b, "code")

	case types.TypeSymbol:
		return sizeString(b, "symbol")

	case types.TypeCodeWithScope:
		if len(b) < 4 {
			return 0, errors.Wrapf(encoding.ErrTruncated, "reading code-with-scope length: need 4 bytes, have %d", len(b))
		}
		total := int(int32(binary.LittleEndian.Uint32(b)))
		if total < encoding.MinCodeWithScopeSize {
			return 0, errors.Wrapf(encoding.ErrMalformedLength, "code-with-scope length %d, want at least %d", total, encoding.MinCodeWithScopeSize)
		}
		if total > len(b) {
			return 0, errors.Wrapf(encoding.ErrTruncated, "code-with-scope claims %d bytes, %d available", total, len(b))
		}
		return total, nil

	case types.TypeInt32:
		return fixed(4, "int32")

	case types.TypeTimestamp:
		return fixed(8, "timestamp")

	case types.TypeInt64:
		return fixed(8, "int64")

	case types.TypeDecimal128:
		return fixed(16, "decimal128")
	}

	return 0, errors.Wrapf(encoding.ErrUnknownType, "marker 0x%02X", byte(t))
}

func sizeString(b []byte, what string) (int, error) {
	if len(b) < 4 {
		return 0, errors.Wrapf(encoding.ErrTruncated, "reading %s length: need 4 bytes, have %d", what, len(b))
	}
	l := int32(binary.LittleEndian.Uint32(b))
	if l < encoding.MinStringSize-4 {
		return 0, errors.Wrapf(encoding.ErrMalformedLength, "%s length %d, want at least %d", what, l, encoding.MinStringSize-4)
	}
	// Compare in int64: 4+int(l) can wrap on 32-bit platforms.
	if int64(l) > int64(len(b)-4) {
		return 0, errors.Wrapf(encoding.ErrTruncated, "%s claims %d bytes, %d available", what, l, len(b)-4)
	}
	total := 4 + int(l)
	if b[total-1] != 0 {
		return 0, errors.Wrapf(encoding.ErrTerminator, "%s is not NUL-terminated", what)
	}
	return total, nil
}

func sizeDocument(b []byte) (int, error) {
	if len(b) < 4 {
		return 0, errors.Wrapf(encoding.ErrTruncated, "reading document length: need 4 bytes, have %d", len(b))
	}
	l := int(int32(binary.LittleEndian.Uint32(b)))
	if l < encoding.MinDocumentSize {
		return 0, errors.Wrapf(encoding.ErrMalformedLength, "document length %d, want at least %d", l, encoding.MinDocumentSize)
	}
	if l > len(b) {
		return 0, errors.Wrapf(encoding.ErrTruncated, "document claims %d bytes, %d available", l, len(b))
	}
	if b[l-1] != 0 {
		return 0, errors.Wrap(encoding.ErrTerminator, "document is not NUL-terminated")
	}
	return l, nil
}

package encoding

import (
	"encoding/binary"
	"strconv"

	"github.com/chaisql/docwire/types"
	"github.com/cockroachdb/errors"
)

// DecodeDocument parses b, which must hold exactly one document, into an
// owned tree. Everything is validated; malformed input yields an error
// wrapping one of the package sentinels, annotated with the field path to
// the failure. It never panics.
//
// Duplicate keys are legal on the wire; the last occurrence wins.
func DecodeDocument(b []byte) (*types.Document, error) {
	return decodeDocument(b, false)
}

// DecodeDocumentLossy is DecodeDocument with lossy text handling: invalid
// UTF-8 in keys, strings, code and regex parts decodes to replacement
// characters instead of failing. Structural validation is unchanged.
func DecodeDocumentLossy(b []byte) (*types.Document, error) {
	return decodeDocument(b, true)
}

func decodeDocument(b []byte, lossy bool) (*types.Document, error) {
	doc, n, err := readDocument(b, lossy)
	if err != nil {
		return nil, err
	}
	if n != len(b) {
		return nil, errors.Wrapf(ErrMalformedLength, "document length %d does not cover the %d-byte buffer", n, len(b))
	}
	return doc, nil
}

// DecodeValue parses one element payload of the given type from the start
// of b and returns the value and the bytes consumed.
func DecodeValue(t types.Type, b []byte) (types.Value, int, error) {
	return decodeValue(t, b, false)
}

// DecodeValueLossy is DecodeValue with lossy text handling.
func DecodeValueLossy(t types.Type, b []byte) (types.Value, int, error) {
	return decodeValue(t, b, true)
}

// documentLen validates the envelope of a document at the start of b:
// length field within bounds and terminator in place. It returns the
// declared length.
func documentLen(b []byte) (int, error) {
	if len(b) < 4 {
		return 0, errors.Wrapf(ErrTruncated, "reading document length: need 4 bytes, have %d", len(b))
	}
	length := int(int32(binary.LittleEndian.Uint32(b)))
	if length < MinDocumentSize {
		return 0, errors.Wrapf(ErrMalformedLength, "document length %d, want at least %d", length, MinDocumentSize)
	}
	if length > len(b) {
		return 0, errors.Wrapf(ErrTruncated, "document claims %d bytes, %d available", length, len(b))
	}
	if b[length-1] != 0 {
		return 0, errors.Wrapf(ErrTerminator, "document is not NUL-terminated")
	}
	return length, nil
}

func readDocument(b []byte, lossy bool) (*types.Document, int, error) {
	length, err := documentLen(b)
	if err != nil {
		return nil, 0, err
	}

	doc := types.NewDocument()
	off := 4
	end := length - 1

	for off < end {
		key, v, n, err := readElement(b[off:end], lossy)
		if err != nil {
			return nil, 0, err
		}
		if err := doc.Set(key, v); err != nil {
			return nil, 0, err
		}
		off += n
	}

	return doc, length, nil
}

// readArray parses an array body. Index keys are read for structure only,
// their content is ignored; values are collected in wire order.
func readArray(b []byte, lossy bool) (*types.Array, int, error) {
	length, err := documentLen(b)
	if err != nil {
		return nil, 0, err
	}

	arr := types.NewArray()
	off := 4
	end := length - 1
	idx := 0

	for off < end {
		if b[off] == 0 {
			return nil, 0, errors.Wrap(ErrTerminator, "document terminator before declared end")
		}
		typ := types.Type(b[off])

		_, kn, err := readKey(b[off+1:end], true)
		if err != nil {
			return nil, 0, err
		}

		if !typ.Valid() {
			return nil, 0, WithPathSegment(errors.Wrapf(ErrUnknownType, "marker 0x%02X", b[off]), strconv.Itoa(idx))
		}

		v, vn, err := decodeValue(typ, b[off+1+kn:end], lossy)
		if err != nil {
			return nil, 0, WithPathSegment(err, strconv.Itoa(idx))
		}

		arr.Push(v)
		off += 1 + kn + vn
		idx++
	}

	return arr, length, nil
}

// readElement parses one element (marker, key, payload) from the start of
// b, which extends exactly to the enclosing document's terminator.
func readElement(b []byte, lossy bool) (string, types.Value, int, error) {
	if b[0] == 0 {
		return "", nil, 0, errors.Wrap(ErrTerminator, "document terminator before declared end")
	}
	typ := types.Type(b[0])

	key, kn, err := readKey(b[1:], lossy)
	if err != nil {
		return "", nil, 0, err
	}

	if !typ.Valid() {
		return "", nil, 0, WithPathSegment(errors.Wrapf(ErrUnknownType, "marker 0x%02X", b[0]), key)
	}

	v, vn, err := decodeValue(typ, b[1+kn:], lossy)
	if err != nil {
		return "", nil, 0, WithPathSegment(err, key)
	}

	return key, v, 1 + kn + vn, nil
}

func decodeValue(t types.Type, b []byte, lossy bool) (types.Value, int, error) {
	switch t {
	case types.TypeDouble:
		f, err := DecodeDouble(b)
		if err != nil {
			return nil, 0, err
		}
		return types.Double(f), 8, nil

	case types.TypeString:
		s, n, err := readString(b, lossy)
		if err != nil {
			return nil, 0, err
		}
		return types.String(s), n, nil

	case types.TypeDocument:
		d, n, err := readDocument(b, lossy)
		if err != nil {
			return nil, 0, err
		}
		return d, n, nil

	case types.TypeArray:
		a, n, err := readArray(b, lossy)
		if err != nil {
			return nil, 0, err
		}
		return a, n, nil

	case types.TypeBinary:
		return readBinary(b)

	case types.TypeUndefined:
		return types.Undefined{}, 0, nil

	case types.TypeObjectID:
		if len(b) < 12 {
			return nil, 0, errors.Wrapf(ErrTruncated, "object id: need 12 bytes, have %d", len(b))
		}
		var id types.ObjectID
		copy(id[:], b[:12])
		return id, 12, nil

	case types.TypeBoolean:
		if len(b) < 1 {
			return nil, 0, errors.Wrap(ErrTruncated, "boolean: need 1 byte")
		}
		switch b[0] {
		case 0:
			return types.Boolean(false), 1, nil
		case 1:
			return types.Boolean(true), 1, nil
		}
		return nil, 0, errors.Wrapf(ErrInvalidScalar, "boolean byte 0x%02X, want 0x00 or 0x01", b[0])

	case types.TypeDateTime:
		v, err := DecodeInt64(b)
		if err != nil {
			return nil, 0, err
		}
		return types.DateTime(v), 8, nil

	case types.TypeNull:
		return types.Null{}, 0, nil

	case types.TypeRegex:
		pattern, pn, err := readCString(b, lossy)
		if err != nil {
			return nil, 0, errors.Wrap(err, "regex pattern")
		}
		options, on, err := readCString(b[pn:], lossy)
		if err != nil {
			return nil, 0, errors.Wrap(err, "regex options")
		}
		return types.Regex{Pattern: pattern, Options: options}, pn + on, nil

	case types.TypeDBPointer:
		ns, n, err := readString(b, lossy)
		if err != nil {
			return nil, 0, err
		}
		if len(b)-n < 12 {
			return nil, 0, errors.Wrapf(ErrTruncated, "dbPointer id: need 12 bytes, have %d", len(b)-n)
		}
		var id types.ObjectID
		copy(id[:], b[n:n+12])
		return types.DBPointer{Namespace: ns, ID: id}, n + 12, nil

	case types.TypeJavaScript:
		s, n, err := readString(b, lossy)
		if err != nil {
			return nil, 0, err
		}
		return types.JavaScript(s), n, nil

	case types.TypeSymbol:
		s, n, err := readString(b, lossy)
		if err != nil {
			return nil, 0, err
		}
		return types.Symbol(s), n, nil

	case types.TypeCodeWithScope:
		return readCodeWithScope(b, lossy)

	case types.TypeInt32:
		v, err := DecodeInt32(b)
		if err != nil {
			return nil, 0, err
		}
		return types.Int32(v), 4, nil

	case types.TypeTimestamp:
		u, err := DecodeUint64(b)
		if err != nil {
			return nil, 0, err
		}
		return types.TimestampFromUint64(u), 8, nil

	case types.TypeInt64:
		v, err := DecodeInt64(b)
		if err != nil {
			return nil, 0, err
		}
		return types.Int64(v), 8, nil

	case types.TypeDecimal128:
		if len(b) < 16 {
			return nil, 0, errors.Wrapf(ErrTruncated, "decimal128: need 16 bytes, have %d", len(b))
		}
		var raw [16]byte
		copy(raw[:], b[:16])
		return types.Decimal128FromBytes(raw), 16, nil

	case types.TypeMinKey:
		return types.MinKey{}, 0, nil

	case types.TypeMaxKey:
		return types.MaxKey{}, 0, nil
	}

	return nil, 0, errors.Wrapf(ErrUnknownType, "marker 0x%02X", byte(t))
}

// readBinary parses an outer length, a subtype byte and the payload. For
// SubtypeBinaryOld the payload nests its own length, which must equal the
// outer length minus 4; the returned value carries the payload without
// that prefix.
func readBinary(b []byte) (types.Value, int, error) {
	if len(b) < 4 {
		return nil, 0, errors.Wrapf(ErrTruncated, "reading binary length: need 4 bytes, have %d", len(b))
	}
	l := int32(binary.LittleEndian.Uint32(b))
	if l < 0 {
		return nil, 0, errors.Wrapf(ErrMalformedLength, "binary length %d is negative", l)
	}
	if len(b) < 5 {
		return nil, 0, errors.Wrap(ErrTruncated, "binary subtype byte missing")
	}
	// Compare in int64: 5+int(l) can wrap on 32-bit platforms.
	if int64(l) > int64(len(b)-5) {
		return nil, 0, errors.Wrapf(ErrTruncated, "binary claims %d bytes, %d available", l, len(b)-5)
	}
	total := 4 + 1 + int(l)

	subtype := types.BinarySubtype(b[4])
	payload := b[5:total]

	if subtype == types.SubtypeBinaryOld {
		if len(payload) < 4 {
			return nil, 0, errors.Wrapf(ErrMalformedLength, "legacy binary payload of %d bytes cannot hold its inner length", len(payload))
		}
		inner := int32(binary.LittleEndian.Uint32(payload))
		if int(inner) != len(payload)-4 {
			return nil, 0, errors.Wrapf(ErrInvalidScalar, "legacy binary inner length %d, want %d", inner, len(payload)-4)
		}
		payload = payload[4:]
	}

	data := make([]byte, len(payload))
	copy(data, payload)
	return types.Binary{Subtype: subtype, Data: data}, total, nil
}

func readCodeWithScope(b []byte, lossy bool) (types.Value, int, error) {
	if len(b) < 4 {
		return nil, 0, errors.Wrapf(ErrTruncated, "reading code-with-scope length: need 4 bytes, have %d", len(b))
	}
	total := int(int32(binary.LittleEndian.Uint32(b)))
	if total < MinCodeWithScopeSize {
		return nil, 0, errors.Wrapf(ErrMalformedLength, "code-with-scope length %d, want at least %d", total, MinCodeWithScopeSize)
	}
	if total > len(b) {
		return nil, 0, errors.Wrapf(ErrTruncated, "code-with-scope claims %d bytes, %d available", total, len(b))
	}

	code, n, err := readString(b[4:total], lossy)
	if err != nil {
		return nil, 0, errors.Wrap(err, "code-with-scope code")
	}
	scope, m, err := readDocument(b[4+n:total], lossy)
	if err != nil {
		return nil, 0, errors.Wrap(err, "code-with-scope scope")
	}
	if 4+n+m != total {
		return nil, 0, errors.Wrapf(ErrMalformedLength, "code-with-scope declares %d bytes but holds %d", total, 4+n+m)
	}

	return types.CodeWithScope{Code: code, Scope: scope}, total, nil
}

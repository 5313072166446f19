package encoding

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/chaisql/docwire/types"
	"github.com/cockroachdb/errors"
)

// EncodeDocument appends the wire form of d to dst and returns the
// extended buffer. Four length bytes are reserved up front and patched
// once the elements and the terminator are in place. Encoding the same
// document always yields the same bytes.
func EncodeDocument(dst []byte, d *types.Document) ([]byte, error) {
	start := len(dst)
	dst = append(dst, 0, 0, 0, 0)

	var err error
	iterErr := d.Iterate(func(key string, v types.Value) error {
		dst, err = appendElement(dst, key, v)
		return err
	})
	if iterErr != nil {
		return nil, iterErr
	}

	dst = append(dst, 0)
	return patchLength(dst, start)
}

// EncodeArray appends the wire form of a to dst: a document whose keys
// are the decimal element indices.
func EncodeArray(dst []byte, a *types.Array) ([]byte, error) {
	start := len(dst)
	dst = append(dst, 0, 0, 0, 0)

	var err error
	iterErr := a.Iterate(func(i int, v types.Value) error {
		dst, err = appendElement(dst, strconv.Itoa(i), v)
		return err
	})
	if iterErr != nil {
		return nil, iterErr
	}

	dst = append(dst, 0)
	return patchLength(dst, start)
}

func patchLength(dst []byte, start int) ([]byte, error) {
	size := len(dst) - start
	if int64(size) > math.MaxInt32 {
		return nil, errors.Wrapf(ErrTooLarge, "document of %d bytes overflows the length field", size)
	}
	binary.LittleEndian.PutUint32(dst[start:], uint32(size))
	return dst, nil
}

func appendElement(dst []byte, key string, v types.Value) ([]byte, error) {
	dst = append(dst, byte(v.Type()))

	dst, err := EncodeCString(dst, key)
	if err != nil {
		return nil, errors.Wrap(err, "encoding key")
	}

	switch x := v.(type) {
	case types.Double:
		return EncodeDouble(dst, float64(x)), nil

	case types.String:
		return EncodeString(dst, string(x))

	case *types.Document:
		return EncodeDocument(dst, x)

	case *types.Array:
		return EncodeArray(dst, x)

	case types.Binary:
		return appendBinary(dst, x)

	case types.Undefined:
		return dst, nil

	case types.ObjectID:
		return append(dst, x[:]...), nil

	case types.Boolean:
		if x {
			return append(dst, 1), nil
		}
		return append(dst, 0), nil

	case types.DateTime:
		return EncodeInt64(dst, int64(x)), nil

	case types.Null:
		return dst, nil

	case types.Regex:
		dst, err = EncodeCString(dst, x.Pattern)
		if err != nil {
			return nil, errors.Wrap(err, "encoding regex pattern")
		}
		dst, err = EncodeCString(dst, x.Options)
		if err != nil {
			return nil, errors.Wrap(err, "encoding regex options")
		}
		return dst, nil

	case types.DBPointer:
		dst, err = EncodeString(dst, x.Namespace)
		if err != nil {
			return nil, err
		}
		return append(dst, x.ID[:]...), nil

	case types.JavaScript:
		return EncodeString(dst, string(x))

	case types.Symbol:
		return EncodeString(dst, string(x))

	case types.CodeWithScope:
		return appendCodeWithScope(dst, x)

	case types.Int32:
		return EncodeInt32(dst, int32(x)), nil

	case types.Timestamp:
		return EncodeUint64(dst, x.Uint64()), nil

	case types.Int64:
		return EncodeInt64(dst, int64(x)), nil

	case types.Decimal128:
		b := x.Bytes()
		return append(dst, b[:]...), nil

	case types.MinKey, types.MaxKey:
		return dst, nil
	}

	return nil, errors.Newf("unsupported value type %T", v)
}

// appendBinary writes the outer length, the subtype byte and the payload.
// The legacy SubtypeBinaryOld layout nests a second length ahead of the
// payload, counted by the outer one.
func appendBinary(dst []byte, b types.Binary) ([]byte, error) {
	payload := int64(len(b.Data))
	if b.Subtype == types.SubtypeBinaryOld {
		payload += 4
	}
	if payload > math.MaxInt32 {
		return nil, errors.Wrapf(ErrTooLarge, "binary of %d bytes overflows the length field", payload)
	}

	dst = EncodeInt32(dst, int32(payload))
	dst = append(dst, byte(b.Subtype))
	if b.Subtype == types.SubtypeBinaryOld {
		dst = EncodeInt32(dst, int32(len(b.Data)))
	}
	return append(dst, b.Data...), nil
}

func appendCodeWithScope(dst []byte, c types.CodeWithScope) ([]byte, error) {
	start := len(dst)
	dst = append(dst, 0, 0, 0, 0)

	dst, err := EncodeString(dst, c.Code)
	if err != nil {
		return nil, err
	}
	dst, err = EncodeDocument(dst, c.Scope)
	if err != nil {
		return nil, err
	}
	return patchLength(dst, start)
}

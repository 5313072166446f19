package docwire

import (
	"github.com/chaisql/docwire/encoding"
	"github.com/chaisql/docwire/raw"
	"github.com/chaisql/docwire/types"
)

// Marshal encodes doc into a fresh buffer.
func Marshal(doc *types.Document) ([]byte, error) {
	return encoding.EncodeDocument(nil, doc)
}

// AppendMarshal encodes doc and appends the bytes to dst. It returns the
// extended buffer.
func AppendMarshal(dst []byte, doc *types.Document) ([]byte, error) {
	return encoding.EncodeDocument(dst, doc)
}

// Unmarshal decodes b, which must hold exactly one document, into an owned
// tree. Malformed input is reported as an error, never a panic.
func Unmarshal(b []byte) (*types.Document, error) {
	return encoding.DecodeDocument(b)
}

// UnmarshalLossy decodes b with invalid UTF-8 in keys and text replaced by
// U+FFFD instead of rejected. Structural rules stay strict.
func UnmarshalLossy(b []byte) (*types.Document, error) {
	return encoding.DecodeDocumentLossy(b)
}

// Raw wraps b as a read-only view without decoding it. Only the envelope is
// checked up front; elements are parsed as they are accessed.
func Raw(b []byte) (raw.Document, error) {
	return raw.NewDocument(b)
}

// Validate checks every byte of b, nested values included, without
// materializing anything.
func Validate(b []byte) error {
	d, err := raw.NewDocument(b)
	if err != nil {
		return err
	}
	return d.Validate()
}

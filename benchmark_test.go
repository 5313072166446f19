package docwire_test

import (
	"testing"

	"github.com/chaisql/docwire"
	"github.com/chaisql/docwire/raw"
	"github.com/chaisql/docwire/types"
	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// benchDoc is shaped like a small record: a few scalars, one nested
// document, one array.
func benchDoc() *types.Document {
	return types.NewDocument().
		MustSet("_id", types.ObjectID{0x65, 0x2C, 0x7E, 0x1F, 0xAB, 0xCD, 0xEF, 0x01, 0x23, 0x45, 0x67, 0x89}).
		MustSet("name", types.String("benchmark")).
		MustSet("score", types.Double(99.5)).
		MustSet("active", types.Boolean(true)).
		MustSet("tags", types.NewArray(types.String("a"), types.String("b"), types.String("c"))).
		MustSet("meta", types.NewDocument().
			MustSet("created", types.DateTime(1591700287095)).
			MustSet("revision", types.Int64(12))).
		MustSet("count", types.Int32(1024))
}

// benchMap mirrors benchDoc for codecs that marshal native Go values. Maps
// lose field order, which neither format charges for.
func benchMap() map[string]any {
	return map[string]any{
		"_id":    []byte{0x65, 0x2C, 0x7E, 0x1F, 0xAB, 0xCD, 0xEF, 0x01, 0x23, 0x45, 0x67, 0x89},
		"name":   "benchmark",
		"score":  99.5,
		"active": true,
		"tags":   []string{"a", "b", "c"},
		"meta": map[string]any{
			"created":  int64(1591700287095),
			"revision": int64(12),
		},
		"count": int32(1024),
	}
}

func BenchmarkMarshal(b *testing.B) {
	b.Run("docwire", func(b *testing.B) {
		doc := benchDoc()
		b.ReportAllocs()
		b.ResetTimer()

		var out []byte
		for i := 0; i < b.N; i++ {
			var err error
			out, err = docwire.Marshal(doc)
			if err != nil {
				b.Fatal(err)
			}
		}
		b.ReportMetric(float64(len(out)), "bytes/doc")
	})

	b.Run("msgpack", func(b *testing.B) {
		m := benchMap()
		b.ReportAllocs()
		b.ResetTimer()

		var out []byte
		for i := 0; i < b.N; i++ {
			var err error
			out, err = msgpack.Marshal(m)
			if err != nil {
				b.Fatal(err)
			}
		}
		b.ReportMetric(float64(len(out)), "bytes/doc")
	})

	b.Run("cbor", func(b *testing.B) {
		m := benchMap()
		b.ReportAllocs()
		b.ResetTimer()

		var out []byte
		for i := 0; i < b.N; i++ {
			var err error
			out, err = cbor.Marshal(m)
			if err != nil {
				b.Fatal(err)
			}
		}
		b.ReportMetric(float64(len(out)), "bytes/doc")
	})
}

func BenchmarkUnmarshal(b *testing.B) {
	b.Run("docwire", func(b *testing.B) {
		enc, err := docwire.Marshal(benchDoc())
		if err != nil {
			b.Fatal(err)
		}
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			if _, err := docwire.Unmarshal(enc); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("msgpack", func(b *testing.B) {
		enc, err := msgpack.Marshal(benchMap())
		if err != nil {
			b.Fatal(err)
		}
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			var m map[string]any
			if err := msgpack.Unmarshal(enc, &m); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("cbor", func(b *testing.B) {
		enc, err := cbor.Marshal(benchMap())
		if err != nil {
			b.Fatal(err)
		}
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			var m map[string]any
			if err := cbor.Unmarshal(enc, &m); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkLookup contrasts pulling one field through the raw view against
// decoding the whole tree first.
func BenchmarkLookup(b *testing.B) {
	enc, err := docwire.Marshal(benchDoc())
	if err != nil {
		b.Fatal(err)
	}

	b.Run("raw view", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			doc, err := raw.NewDocument(enc)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := doc.GetInt32("count"); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("owned decode", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			doc, err := docwire.Unmarshal(enc)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := doc.GetInt32("count"); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkValidate(b *testing.B) {
	enc, err := docwire.Marshal(benchDoc())
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := docwire.Validate(enc); err != nil {
			b.Fatal(err)
		}
	}
}

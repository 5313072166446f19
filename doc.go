/*
Package docwire implements a binary, length-prefixed, self-describing
document format. A document is an ordered list of key/value pairs whose
values carry their own type on the wire, so a reader needs no schema to
walk one.

The module is split in three layers, each usable on its own.

Owned values

The types package holds the value model: a Document preserves insertion
order and looks keys up by name, an Array is a positional list, and every
scalar the wire knows has a Go type, from Double and String down to
ObjectID, DateTime, Decimal128, Regex, Timestamp and Binary. Building a
document is a chain of Set calls:

	doc := types.NewDocument().
		MustSet("title", types.String("Dune")).
		MustSet("year", types.Int32(1965)).
		MustSet("ratings", types.NewArray(types.Double(4.5), types.Double(4.9)))

Wire encoding

Marshal and Unmarshal convert between owned trees and wire bytes:

	b, err := docwire.Marshal(doc)
	...
	doc2, err := docwire.Unmarshal(b)

Everything the decoder reads is checked: lengths against the buffer,
terminators in place, keys and strings valid UTF-8, scalar payloads well
formed. Malformed or truncated input of any shape comes back as an error
wrapping one of the encoding package's sentinel errors, annotated with the
path to the offending field; the decoder never panics and never returns
silently wrong data. UnmarshalLossy relaxes exactly one rule: invalid
UTF-8 decodes to replacement characters instead of failing.

The raw view

When only a field or two is needed out of a large document, decoding the
whole tree is wasted work. The raw package reinterprets the encoded bytes
in place:

	rdoc, err := docwire.Raw(b)
	...
	title, err := rdoc.GetString("title")

Lookups and iteration walk the buffer lazily and hand out sub-slices;
nested documents and arrays are re-wrapped without copying. Construction
checks only the outer envelope, so problems deep inside a document surface
at the point of access, again as errors rather than panics. Validate runs
every check eagerly without building the tree.
*/
package docwire

package nodeset

import (
	"encoding/xml"
	"io"

	"golang.org/x/net/html/charset"
)

// TokenSource yields XML tokens one at a time, the same contract the
// parser state machine drives regardless of what sits behind it; the
// stdlib *xml.Decoder satisfies it.
type TokenSource interface {
	Token() (xml.Token, error)
}

// newDecoder returns an *xml.Decoder reading from r with a
// charset-aware CharsetReader installed, so a nodeset declaring an
// encoding other than UTF-8 in its XML prolog (ISO-8859-1 is common in
// nodesets exported by older tooling) decodes instead of failing on the
// first non-ASCII byte.
func newDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}

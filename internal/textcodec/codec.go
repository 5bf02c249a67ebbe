// Package textcodec converts file bytes to text and back using a single
// configured character encoding.
package textcodec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is the encoding used when none is configured.
const DefaultEncoding = "utf-8"

// Codec decodes and encodes text with one encoding. UTF-8 is validated
// strictly instead of substituting U+FFFD for invalid sequences.
type Codec struct {
	name string
	enc  encoding.Encoding
}

// New resolves an encoding label such as "utf-8", "latin1" or "shift_jis".
func New(label string) (*Codec, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultEncoding
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}

	c := &Codec{name: name}
	if name != DefaultEncoding {
		c.enc = enc
	}
	return c, nil
}

// Name returns the canonical encoding name.
func (c *Codec) Name() string {
	return c.name
}

// Decode converts raw bytes into a UTF-8 string.
func (c *Codec) Decode(data []byte) (string, error) {
	if c.enc == nil {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: content is not valid %s", ErrEncoding, c.name)
		}
		return string(data), nil
	}

	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: decode %s: %v", ErrEncoding, c.name, err)
	}
	return string(out), nil
}

// Encode converts text back into the codec's encoding.
func (c *Codec) Encode(text string) ([]byte, error) {
	if c.enc == nil {
		return []byte(text), nil
	}

	out, err := c.enc.NewEncoder().String(text)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %v", ErrEncoding, c.name, err)
	}
	return []byte(out), nil
}

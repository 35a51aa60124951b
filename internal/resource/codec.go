package resource

import (
	"fmt"
	"strings"
	"unicode"
)

// KeyCodec converts member names between the wire form and the internal
// underscored form.
type KeyCodec interface {
	ToInternal(name string) string
	ToExternal(name string) string
}

// Key formats accepted by CodecFor.
const (
	FormatUnderscored = "underscored"
	FormatDasherized  = "dasherized"
	FormatCamelized   = "camelized"
)

// Underscored keeps keys as they are: first_name.
type Underscored struct{}

func (Underscored) ToInternal(name string) string { return name }
func (Underscored) ToExternal(name string) string { return name }

// Dasherized renders first_name as first-name.
type Dasherized struct{}

func (Dasherized) ToInternal(name string) string { return strings.ReplaceAll(name, "-", "_") }
func (Dasherized) ToExternal(name string) string { return strings.ReplaceAll(name, "_", "-") }

// Camelized renders first_name as firstName.
type Camelized struct{}

func (Camelized) ToInternal(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (Camelized) ToExternal(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// CodecFor returns the codec for a configured key format.
func CodecFor(format string) (KeyCodec, error) {
	switch format {
	case "", FormatUnderscored:
		return Underscored{}, nil
	case FormatDasherized:
		return Dasherized{}, nil
	case FormatCamelized:
		return Camelized{}, nil
	}
	return nil, fmt.Errorf("unknown key format %q", format)
}

package catapult

import (
	"fmt"
	"strconv"
)

// AppendEscapedString appends the JSON-escaped contents of s (without
// surrounding quotes) to buf: the six named escapes, \u00XX for any
// other control byte (code <= 0x1f), and every other byte verbatim.
// Input is assumed to be well-formed UTF-8 and is not itself validated.
func AppendEscapedString(buf []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			buf = append(buf, '\\', '"')
		case '\\':
			buf = append(buf, '\\', '\\')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\t':
			buf = append(buf, '\\', 't')
		case '\b':
			buf = append(buf, '\\', 'b')
		default:
			if c <= 0x1f {
				buf = append(buf, fmt.Sprintf("\\u00%02x", c)...)
			} else {
				buf = append(buf, c)
			}
		}
	}
	return buf
}

// AppendJSONString appends a fully quoted, escaped JSON string.
func AppendJSONString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	buf = AppendEscapedString(buf, s)
	buf = append(buf, '"')
	return buf
}

// AppendJSON appends the JSON serialization of d: absent -> null,
// integer -> decimal, boolean -> true/false, string -> escaped JSON
// string, float -> shortest round-trip decimal.
func (d Datum) AppendJSON(buf []byte) []byte {
	switch d.kind {
	case datumAbsent:
		return append(buf, "null"...)
	case datumInt:
		return strconv.AppendInt(buf, d.i, 10)
	case datumBool:
		return strconv.AppendBool(buf, d.b)
	case datumString:
		return AppendJSONString(buf, d.s)
	case datumFloat:
		return strconv.AppendFloat(buf, d.f, 'g', -1, 64)
	default:
		return append(buf, "null"...)
	}
}

// AppendArgsObject appends the JSON object {"k1":v1,...} for attrs.
// The args field is omitted entirely when the attribute list is empty;
// callers that must honor that should check len(attrs) == 0 themselves
// before calling this.
func AppendArgsObject(buf []byte, attrs Attrs) []byte {
	buf = append(buf, '{')
	for i, a := range attrs {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = AppendJSONString(buf, a.Key)
		buf = append(buf, ':')
		buf = a.Value.AppendJSON(buf)
	}
	buf = append(buf, '}')
	return buf
}

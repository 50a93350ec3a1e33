package node

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v4"
)

// MarshalJSON implements json.Marshaler. Mapping keys are written in
// document order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	writeJSON(&buf, n)
	return buf.Bytes(), nil
}

// MarshalJSONIndent renders n as indented JSON followed by a newline.
func (n *Node) MarshalJSONIndent(prefix, indent string) ([]byte, error) {
	compact, err := n.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, prefix, indent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// MarshalYAML renders n as a YAML document.
func (n *Node) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(n.ToYAML())
}

func writeJSON(buf *bytes.Buffer, n *Node) {
	if n == nil {
		buf.WriteString("null")
		return
	}

	switch n.Kind {
	case MappingNode:
		buf.WriteByte('{')
		for i, key := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, key)
			buf.WriteByte(':')
			writeJSON(buf, n.fields[key])
		}
		buf.WriteByte('}')
	case SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSON(buf, item)
		}
		buf.WriteByte(']')
	default:
		writeJSONScalar(buf, n)
	}
}

func writeJSONScalar(buf *bytes.Buffer, n *Node) {
	switch n.Tag {
	case TagNull:
		buf.WriteString("null")
	case TagBool:
		if b, err := strconv.ParseBool(strings.ToLower(n.Value)); err == nil {
			buf.WriteString(strconv.FormatBool(b))
			return
		}
		writeJSONString(buf, n.Value)
	case TagInt:
		if isJSONNumber(n.Value) {
			buf.WriteString(n.Value)
			return
		}
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			buf.WriteString(strconv.FormatInt(i, 10))
			return
		}
		writeJSONString(buf, n.Value)
	case TagFloat:
		if isJSONNumber(n.Value) {
			buf.WriteString(n.Value)
			return
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64)
		if err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
			return
		}
		// .inf and .nan have no JSON form
		writeJSONString(buf, n.Value)
	default:
		writeJSONString(buf, n.Value)
	}
}

// isJSONNumber reports whether s is already a valid JSON number literal.
func isJSONNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

const hexDigits = "0123456789abcdef"

// writeJSONString quotes s without HTML escaping, so "<" and "&" in
// descriptions survive unchanged. Invalid UTF-8 becomes U+FFFD.
func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				buf.WriteByte('\\')
				buf.WriteByte(c)
			case c == '\n':
				buf.WriteString(`\n`)
			case c == '\r':
				buf.WriteString(`\r`)
			case c == '\t':
				buf.WriteString(`\t`)
			case c < 0x20:
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[c>>4])
				buf.WriteByte(hexDigits[c&0xF])
			default:
				buf.WriteByte(c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteString("\ufffd")
		} else {
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
	buf.WriteByte('"')
}

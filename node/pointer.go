package node

import (
	"strconv"
	"strings"
)

// ResolvePointer follows a local JSON pointer ("#/components/schemas/Pet")
// from n. "#" alone resolves to n. Tokens are unescaped per RFC 6901 (~1 is
// "/", ~0 is "~"); numeric tokens index into sequences.
func (n *Node) ResolvePointer(ref string) (*Node, bool) {
	if ref == "#" {
		return n, n != nil
	}
	rest, ok := strings.CutPrefix(ref, "#/")
	if !ok || n == nil {
		return nil, false
	}

	cur := n
	for _, token := range strings.Split(rest, "/") {
		token = UnescapePointerToken(token)
		switch {
		case cur.IsMapping():
			next, ok := cur.Get(token)
			if !ok {
				return nil, false
			}
			cur = next
		case cur.IsSequence():
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(cur.Items) {
				return nil, false
			}
			cur = cur.Items[i]
		default:
			return nil, false
		}
	}
	return cur, cur != nil
}

// UnescapePointerToken unescapes a single JSON pointer token.
// Per RFC 6901, ~1 represents / and ~0 represents ~
func UnescapePointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

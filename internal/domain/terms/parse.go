package terms

import "strings"

// ParseList splits raw list content into normalized terms.
// Lines end in "\n" or "\r\n"; a leading UTF-8 BOM is ignored; blank lines
// are dropped. Duplicates are kept in order.
func ParseList(raw []byte, n Normalizer) []string {
	text := strings.TrimPrefix(string(raw), "\ufeff")
	if text == "" {
		return []string{}
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		term := n.Term(strings.TrimSuffix(line, "\r"))
		if term == "" {
			continue
		}
		out = append(out, term)
	}
	return out
}

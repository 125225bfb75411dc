package normalize

import "strings"

// ExtractLabeled scans text line by line for "Label: value" lines. Labels
// match case-insensitively after markdown bullets and bold markers are
// removed. The first non-empty value per label wins; missing labels are
// absent from the map.
func ExtractLabeled(text string, labels ...string) map[string]string {
	out := make(map[string]string, len(labels))
	for _, line := range strings.Split(text, "\n") {
		line = cleanLine(line)
		if line == "" {
			continue
		}
		for _, label := range labels {
			if _, done := out[label]; done {
				continue
			}
			prefix := label + ":"
			if len(line) < len(prefix) || !strings.EqualFold(line[:len(prefix)], prefix) {
				continue
			}
			value := strings.Trim(strings.TrimSpace(line[len(prefix):]), "\"")
			if value = strings.TrimSpace(value); value != "" {
				out[label] = value
			}
		}
	}
	return out
}

func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*•> ")
	line = strings.ReplaceAll(line, "**", "")
	return strings.TrimSpace(line)
}

// SplitList splits a comma or semicolon separated value into trimmed,
// non-empty items.
func SplitList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

package matching

import "strings"

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Overlaps reports whether either string contains the other, ignoring case.
// Blank strings never match.
func Overlaps(a, b string) bool {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// SameCountry compares two country names case-insensitively. Blank never matches.
func SameCountry(a, b string) bool {
	a, b = normalize(a), normalize(b)
	return a != "" && a == b
}

// countMatchedSkills returns how many of required overlap with at least one of have.
func countMatchedSkills(required, have []string) int {
	matched := 0
	for _, skill := range required {
		for _, h := range have {
			if Overlaps(skill, h) {
				matched++
				break
			}
		}
	}
	return matched
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// distinctSkills drops blanks and case-insensitive duplicates, keeping first spelling.
func distinctSkills(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := normalize(v)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

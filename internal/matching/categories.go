package matching

var broaderCategories = map[string][]string{
	"camera":   {"photography", "video", "cinematography"},
	"lens":     {"photography", "camera", "optics"},
	"lighting": {"studio", "photography", "video"},
	"audio":    {"sound", "recording", "microphone"},
	"tripod":   {"support", "photography", "video"},
	"gimbal":   {"stabilization", "video", "camera"},
	"drone":    {"aerial", "video", "photography"},
	"computer": {"editing", "post-production", "workstation"},
	"monitor":  {"display", "editing", "post-production"},
}

// BroaderCategories returns the neighbouring categories used for suggestions.
// Unknown categories map to themselves.
func BroaderCategories(category string) []string {
	if related, ok := broaderCategories[normalize(category)]; ok {
		out := make([]string, len(related))
		copy(out, related)
		return out
	}
	return []string{category}
}

// CandidateCategories lists the category filters for the equipment fetch. In
// strict mode only the requested category is used, so every fetched listing
// matches it; otherwise broader categories are added and listings can land in
// the related-category branch.
func CandidateCategories(category string, strict bool) []string {
	if normalize(category) == "" {
		return nil
	}
	if strict {
		return []string{category}
	}
	cats := []string{category}
	for _, c := range BroaderCategories(category) {
		if normalize(c) != normalize(category) {
			cats = append(cats, c)
		}
	}
	return cats
}

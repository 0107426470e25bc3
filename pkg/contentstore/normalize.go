package contentstore

import "unicode/utf8"

// NormalizeText replaces each invalid UTF-8 byte with U+FFFD, matching what
// the JSON encoder writes to the slot.
func NormalizeText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return string([]rune(s))
}

// NormalizeItem applies NormalizeText to every field of item.
func NormalizeItem(item ContentItem) ContentItem {
	return ContentItem{
		ID:      NormalizeText(item.ID),
		Type:    ContentType(NormalizeText(string(item.Type))),
		Content: NormalizeText(item.Content),
	}
}

func normalizeItems(items []ContentItem) []ContentItem {
	normalized := make([]ContentItem, len(items))
	for i, item := range items {
		normalized[i] = NormalizeItem(item)
	}
	return normalized
}

package contentstore

// ContentType is the tag of a content item.
type ContentType string

// Content type constants (typed).
const (
	ContentTypeCodeBlock ContentType = "codeBlock"
	ContentTypeHeadline  ContentType = "headline"
	ContentTypeImage     ContentType = "image"
	ContentTypeTable     ContentType = "table"
)

// ContentTypes lists every known content type in display order.
var ContentTypes = []ContentType{
	ContentTypeCodeBlock,
	ContentTypeHeadline,
	ContentTypeImage,
	ContentTypeTable,
}

// IsValid reports whether t is one of the known content types.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeCodeBlock, ContentTypeHeadline, ContentTypeImage, ContentTypeTable:
		return true
	default:
		return false
	}
}

func (t ContentType) String() string {
	return string(t)
}

// ContentItem is a single editable content unit. The ID is assigned by the
// caller; the store never generates or checks it.
type ContentItem struct {
	ID      string      `json:"id"`
	Type    ContentType `json:"type"`
	Content string      `json:"content"`
}

package contentstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/content-items/pkg/contentstore"
)

func TestEncode(t *testing.T) {
	data, err := contentstore.Encode([]contentstore.ContentItem{
		{ID: "1", Type: contentstore.ContentTypeHeadline, Content: "Hi"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","type":"headline","content":"Hi"}]`, string(data))

	empty, err := contentstore.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      []contentstore.ContentItem
		malformed bool
	}{
		{name: "empty input", input: "", want: []contentstore.ContentItem{}},
		{name: "whitespace", input: "  \n", want: []contentstore.ContentItem{}},
		{name: "null", input: "null", want: []contentstore.ContentItem{}},
		{name: "empty array", input: "[]", want: []contentstore.ContentItem{}},
		{
			name:  "items in order",
			input: `[{"id":"b","type":"image","content":"b.png"},{"id":"a","type":"codeBlock","content":"x"}]`,
			want: []contentstore.ContentItem{
				{ID: "b", Type: contentstore.ContentTypeImage, Content: "b.png"},
				{ID: "a", Type: contentstore.ContentTypeCodeBlock, Content: "x"},
			},
		},
		{name: "truncated", input: `[{"id":"1"`, malformed: true},
		{name: "object instead of array", input: `{"id":"1"}`, malformed: true},
		{name: "wrong field type", input: `[{"id":1,"type":"headline","content":"x"}]`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := contentstore.Decode([]byte(tt.input))
			if tt.malformed {
				assert.ErrorIs(t, err, contentstore.ErrMalformedSlot)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	items := []contentstore.ContentItem{
		{ID: "1", Type: contentstore.ContentTypeHeadline, Content: "Ünïcode ✓"},
		{ID: "1", Type: contentstore.ContentTypeTable, Content: "a|b\n1|2"},
		{ID: "", Type: contentstore.ContentTypeCodeBlock, Content: `"quoted" <html>`},
	}

	data, err := contentstore.Encode(items)
	require.NoError(t, err)
	got, err := contentstore.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

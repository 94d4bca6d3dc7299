package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("empty payload is an empty document", func(t *testing.T) {
		doc, err := Parse(nil)
		require.NoError(t, err)
		assert.True(t, doc.IsEmpty())
	})

	t.Run("null payload is an empty document", func(t *testing.T) {
		doc, err := Parse([]byte("null"))
		require.NoError(t, err)
		assert.True(t, doc.IsEmpty())
	})

	t.Run("malformed payload errors", func(t *testing.T) {
		_, err := Parse([]byte("{not json"))
		assert.Error(t, err)
	})

	t.Run("blocks round through", func(t *testing.T) {
		doc, err := Parse([]byte(`{"blocks":[{"type":"paragraph","data":{"text":"hi"}}]}`))
		require.NoError(t, err)
		assert.False(t, doc.IsEmpty())
		assert.Equal(t, "hi", doc.PlainText())
	})
}

func TestReadTime(t *testing.T) {
	t.Run("empty document reads one minute", func(t *testing.T) {
		assert.Equal(t, 1, Document{}.ReadTime())
	})

	t.Run("225 words reads one minute", func(t *testing.T) {
		doc := Document{Blocks: []Block{{Type: "paragraph", Data: BlockData{
			Text: strings.Repeat("word ", 225),
		}}}}
		assert.Equal(t, 1, doc.ReadTime())
	})

	t.Run("226 words rounds up", func(t *testing.T) {
		doc := Document{Blocks: []Block{{Type: "paragraph", Data: BlockData{
			Text: strings.Repeat("word ", 226),
		}}}}
		assert.Equal(t, 2, doc.ReadTime())
	})

	t.Run("list items count as words", func(t *testing.T) {
		doc := Document{Blocks: []Block{{Type: "list", Data: BlockData{
			Items: []string{strings.Repeat("word ", 300)},
		}}}}
		assert.Equal(t, 2, doc.ReadTime())
	})
}

func TestSanitize(t *testing.T) {
	doc := Document{Blocks: []Block{{Type: "paragraph", Data: BlockData{
		Text: `hello <script>alert("x")</script><b>bold</b>`,
	}}}}
	doc.Sanitize()
	assert.NotContains(t, doc.Blocks[0].Data.Text, "script")
	assert.Contains(t, doc.Blocks[0].Data.Text, "<b>bold</b>")
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "clean", SanitizeText(`<script>bad()</script>clean`))
}

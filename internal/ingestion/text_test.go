package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \n  \n  ", ""},
		{"line endings", "a\r\nb\rc", "a\nb\nc"},
		{"inner spaces", "Go    语言   开发", "Go 语言 开发"},
		{"ideographic space", "张三　　工程师", "张三 工程师"},
		{"blank line runs", "第一段\n\n\n\n第二段", "第一段\n\n第二段"},
		{"trailing spaces", "教育背景  \n某大学\t", "教育背景\n某大学"},
		{"bullets kept", "- Go\n* Redis", "- Go\n* Redis"},
		{"invalid utf8", "ab\xffc", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	input := "张三\r\n\r\n\r\n工作经验   \n  A公司  Go  "
	once := CleanText(input)
	assert.Equal(t, once, CleanText(once))
}

func TestPrintableFallback(t *testing.T) {
	data := []byte("\x00\x01张三\x02\x03 简历é Go！")
	assert.Equal(t, "张三 简历 Go！", printableFallback(data))
}

func TestDocumentXMLText(t *testing.T) {
	xml := `<w:body><w:p><w:r><w:t>张三</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>工作经验</w:t><w:tab/><w:t>A&amp;B</w:t></w:r></w:p></w:body>`
	assert.Equal(t, "张三\n工作经验\tA&B\n", documentXMLText(xml))
}

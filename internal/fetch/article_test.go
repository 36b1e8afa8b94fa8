package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wechatPage = `<html><head><title>页面标题</title></head><body>
<h1 class="rich_media_title" id="activity-name">
    Acme 2024   招聘
</h1>
<a id="js_name">Acme科技</a>
<div id="js_content">
<p>招聘：Go工程师</p>
<p><strong>任职要求：</strong></p>
<p>熟悉Go；了解Redis</p>
<p>联系邮箱：hr@acme.com</p>
<script>var tracker = 1;</script>
</div>
<div id="js_pc_qr_code">扫码关注</div>
</body></html>`

func TestExtractArticle_WeChat(t *testing.T) {
	article, err := ExtractArticle(wechatPage, "https://mp.weixin.qq.com/s/abc")
	require.NoError(t, err)

	assert.Equal(t, "https://mp.weixin.qq.com/s/abc", article.URL)
	assert.Equal(t, "Acme 2024 招聘", article.Title)
	assert.Equal(t, "Acme科技", article.AccountName)
	assert.Contains(t, article.Text, "招聘：Go工程师")
	assert.Contains(t, article.Text, "任职要求：")
	assert.Contains(t, article.Text, "熟悉Go；了解Redis")
	assert.Contains(t, article.Text, "hr@acme.com")
	assert.NotContains(t, article.Text, "**")
	assert.NotContains(t, article.Text, "tracker")
	assert.NotContains(t, article.Text, "扫码关注")
	assert.NotContains(t, article.Text, "\n\n")
}

func TestExtractArticle_Generic(t *testing.T) {
	html := `<html><head><title>招聘页</title></head><body>
<nav>导航</nav><article><p>正文一</p><p>正文二</p></article><footer>页脚</footer></body></html>`

	article, err := ExtractArticle(html, "https://example.com/post")
	require.NoError(t, err)
	assert.Equal(t, "招聘页", article.Title)
	assert.Empty(t, article.AccountName)
	assert.Equal(t, "正文一\n正文二", article.Text)
}

func TestExtractArticle_TitleFallbacks(t *testing.T) {
	html := `<html><head><meta property="og:title" content="OG标题"><title>T</title></head>
<body><div>内容</div></body></html>`
	article, err := ExtractArticle(html, "https://mp.weixin.qq.com/s/x")
	require.NoError(t, err)
	assert.Equal(t, "OG标题", article.Title)
	assert.Equal(t, "内容", article.Text)
}

func TestMarkdownToText(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{"heading", "# 标题\n\n正文", "标题\n正文"},
		{"emphasis", "**任职要求**：", "任职要求："},
		{"link", "[点击这里](https://x.com) 投递", "点击这里 投递"},
		{"image", "![logo](a.png)图", "图"},
		{"escapes", "1\\. 熟悉Go\n\\- 沟通", "1. 熟悉Go\n- 沟通"},
		{"quote", "> 引用内容", "引用内容"},
		{"rule", "上\n\n* * *\n\n下", "上\n下"},
		{"spaces", "a  　 b", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarkdownToText(tt.md))
		})
	}
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser(strings.Repeat("字", MinContentRunes-1)))
	assert.False(t, ShouldUseBrowser(strings.Repeat("字", MinContentRunes)))
}

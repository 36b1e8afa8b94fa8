package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-dispatch/internal/patterns"
)

const sampleResume = `张三
电话：13812345678  邮箱：zhangsan@example.com

教育背景
北京大学 计算机科学 硕士 2015-2018

工作经历
Acme 科技 高级后端工程师 2018-至今
负责订单系统的分布式改造

专业技能
Go, Python, MySQL, 沟通能力

项目经历
电商秒杀平台：基于Go和Redis

自我评价
热爱技术，专注后端`

func TestParse_FullResume(t *testing.T) {
	parsed := Parse(sampleResume)

	assert.Equal(t, "张三", parsed.Name)
	assert.Equal(t, "13812345678", parsed.Phone)
	assert.Equal(t, "zhangsan@example.com", parsed.Email)
	assert.Equal(t, "北京大学 计算机科学 硕士 2015-2018", parsed.Education)
	assert.Equal(t, "Acme 科技 高级后端工程师 2018-至今\n负责订单系统的分布式改造", parsed.Experience)
	assert.Equal(t, "Go, Python, MySQL, 沟通能力", parsed.Skills)
	assert.Equal(t, "电商秒杀平台：基于Go和Redis", parsed.Projects)
	assert.Equal(t, "热爱技术，专注后端", parsed.Summary)
}

func TestParse_MissingSectionsAreEmpty(t *testing.T) {
	parsed := Parse("just some text without structure at all")

	assert.Empty(t, parsed.Name)
	assert.Empty(t, parsed.Phone)
	assert.Empty(t, parsed.Email)
	assert.Empty(t, parsed.Education)
	assert.Empty(t, parsed.Skills)
}

func TestParse_StrictEmailOnly(t *testing.T) {
	parsed := Parse("李四\nli [at] example [dot] com")
	assert.Empty(t, parsed.Email)
}

func TestGuessName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first short line", "王五\n简历", "王五"},
		{"skips punctuated lines", "你好，我是\n赵六", "赵六"},
		{"trims spaces", "   Tom  \nrest of resume", "Tom"},
		{"too long lines", "个人简历及其附件\n这一行也非常长的内容", ""},
		{"crlf", "钱七\r\n电话", "钱七"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GuessName(tt.text))
		})
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	assert.NotPanics(t, func() {
		Parse("\xff\xfe技能\x80：Go")
	})
}

func TestSectionText(t *testing.T) {
	tests := []struct {
		label  string
		want   string
		wantOK bool
	}{
		{patterns.Skills, "Go, Python, MySQL, 沟通能力", true},
		{patterns.Summary, "热爱技术，专注后端", true},
		{"certificates", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := SectionText(sampleResume, tt.label)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := SectionText("只有名字", patterns.Education)
	assert.False(t, ok)
}

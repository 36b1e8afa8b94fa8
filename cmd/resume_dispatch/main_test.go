package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-dispatch/internal/extraction"
	"github.com/jonathan/resume-dispatch/internal/types"
)

const resumeText = `张三
电话：13800138000
个人简介
五年Go后端经验
工作经验
B公司 Go Redis 微服务
专业技能
Java、Go、Redis`

// resetFlags restores every flag variable, since cobra keeps values between
// Execute calls.
func resetFlags() {
	configPath, verbose = "", false
	extractTextFile, extractHTMLFile, extractURL, extractBrowser, extractOutput = "", "", "", false, ""
	batchConcurrency, batchOutput = extraction.DefaultBatchLimit, ""
	parseResumeFile, parseResumeOutput, parseResumeSection = "", "", ""
	customizeResume, customizeJob, customizeOut = "", "", "."
	servePort = 0
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractJob_TextFile(t *testing.T) {
	path := writeTemp(t, "article.txt", "欢迎加入我们\n简历投递至 hr@acme.com")

	out, err := execute(t, "extract-job", "--text-file", path, "--url", "https://mp.weixin.qq.com/s/abc")
	require.NoError(t, err)

	var job types.JobInfo
	require.NoError(t, json.Unmarshal([]byte(out), &job))
	assert.Equal(t, "hr@acme.com", job.ContactEmail)
	assert.Equal(t, "https://mp.weixin.qq.com/s/abc", job.ArticleURL)
}

func TestExtractJob_HTMLFileToOutput(t *testing.T) {
	html := `<html><body><h1 class="rich_media_title">Acme 招聘</h1>
		<div id="js_content"><p>简历请发送至 jobs@acme.com</p></div></body></html>`
	path := writeTemp(t, "page.html", html)
	outPath := filepath.Join(t.TempDir(), "job.json")

	_, err := execute(t, "extract-job", "--html-file", path, "--url", "https://mp.weixin.qq.com/s/x", "-o", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var job types.JobInfo
	require.NoError(t, json.Unmarshal(data, &job))
	assert.Equal(t, "Acme 招聘", job.ArticleTitle)
	assert.Equal(t, "jobs@acme.com", job.ContactEmail)
}

func TestExtractJob_FlagValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no source", []string{"extract-job"}, "required"},
		{"two files", []string{"extract-job", "--text-file", "a", "--html-file", "b"}, "only one"},
		{"missing file", []string{"extract-job", "--text-file", "/nonexistent/a.txt"}, "failed to read"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExtractBatch(t *testing.T) {
	a := writeTemp(t, "a.txt", "投递邮箱：a@acme.com")
	b := writeTemp(t, "b.txt", "没有联系方式")

	out, err := execute(t, "extract-batch", a, b)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var first, second batchLine
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, a, first.File)
	assert.Equal(t, "a@acme.com", first.JobInfo.ContactEmail)
	assert.Equal(t, b, second.File)
	assert.Empty(t, second.JobInfo.ContactEmail)
}

func TestExtractBatch_RequiresFiles(t *testing.T) {
	_, err := execute(t, "extract-batch")
	assert.Error(t, err)
}

func TestParseResume(t *testing.T) {
	path := writeTemp(t, "zhangsan.txt", resumeText)

	out, err := execute(t, "parse-resume", "--file", path)
	require.NoError(t, err)

	var sections types.ParsedSections
	require.NoError(t, json.Unmarshal([]byte(out), &sections))
	assert.Equal(t, "张三", sections.Name)
	assert.Equal(t, "13800138000", sections.Phone)
	assert.Contains(t, sections.Skills, "Redis")
}

func TestParseResume_Section(t *testing.T) {
	path := writeTemp(t, "zhangsan.txt", resumeText)

	out, err := execute(t, "parse-resume", "--file", path, "--section", "skills")
	require.NoError(t, err)
	assert.Equal(t, "Java、Go、Redis\n", out)

	_, err = execute(t, "parse-resume", "--file", path, "--section", "hobbies")
	assert.ErrorContains(t, err, "unknown section")

	_, err = execute(t, "parse-resume", "--file", path, "--section", "projects")
	assert.ErrorContains(t, err, "not found")
}

func TestParseResume_Errors(t *testing.T) {
	_, err := execute(t, "parse-resume")
	assert.ErrorContains(t, err, "--file is required")

	_, err = execute(t, "parse-resume", "--file", writeTemp(t, "photo.png", "x"))
	assert.ErrorContains(t, err, "不支持的文件格式")
}

func TestCustomize(t *testing.T) {
	resumePath := writeTemp(t, "zhangsan.txt", resumeText)
	jobPath := writeTemp(t, "job.json", `{
		"title": "Go工程师",
		"company": "Acme",
		"requirements": ["Go", "Redis"],
		"contactEmail": "hr@acme.com"
	}`)
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, "customize", "--resume", resumePath, "--job", jobPath, "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "strategy: template")

	text, err := os.ReadFile(filepath.Join(outDir, "张三_Acme_Go工程师.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(text), "张三")

	letter, err := os.ReadFile(filepath.Join(outDir, coverLetterFile))
	require.NoError(t, err)
	assert.Contains(t, string(letter), "Go工程师")

	email, err := os.ReadFile(filepath.Join(outDir, emailFile))
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(string(email)))
}

func TestCustomize_RequiresFlags(t *testing.T) {
	_, err := execute(t, "customize", "--resume", "a.txt")
	assert.ErrorContains(t, err, "required")
}

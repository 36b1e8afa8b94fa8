package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreParagraph(t *testing.T) {
	k := Keywords{"Go", "分布式", "Kafka"}
	assert.Equal(t, 2, ScoreParagraph("使用Go构建分布式队列", k))
	assert.Equal(t, 1, ScoreParagraph("使用go构建", k))
	assert.Equal(t, 0, ScoreParagraph("", k))
}

func TestScoreParagraph_MixedCasePosting(t *testing.T) {
	// "GO" folds into the first spelling "Go" when keywords are derived.
	k := KeywordsFromText("Go 后端 GO")
	assert.Equal(t, Keywords{"Go", "后端"}, k)
	assert.Equal(t, 1, ScoreParagraph("熟练使用GO", k))
	assert.Equal(t, []string{"Go"}, k.FoundIn("熟练使用GO"))
	assert.Equal(t, 0, ScoreParagraph("", k))
}

func TestSkillMatches(t *testing.T) {
	k := Keywords{"Go", "MySQL数据库"}
	assert.True(t, SkillMatches("golang", k))
	assert.True(t, SkillMatches("mysql", k))
	assert.False(t, SkillMatches("Python", k))
}

package patterns

// Section labels.
const (
	Requirements     = "requirements"
	Responsibilities = "responsibilities"
	Education        = "education"
	Experience       = "experience"
	Skills           = "skills"
	Projects         = "projects"
	Summary          = "summary"
)

// SynonymGroup lists the interchangeable header strings of one section,
// in the order they are tried.
type SynonymGroup struct {
	Label    string
	Synonyms []string
}

// SectionTable describes how a text is split into labeled sections.
// A section ends at the next synonym of any other group, at any Terminator,
// or at a HeadingStop match, whichever comes first. With LineStart set,
// synonyms and terminators only end a section at the start of a line.
type SectionTable struct {
	Groups      []SynonymGroup
	Terminators []string
	LineStart   bool
	HeadingStop string
}

// PostingSections splits one posting block.
var PostingSections = SectionTable{
	Groups: []SynonymGroup{
		{Label: Requirements, Synonyms: []string{"任职要求", "岗位要求", "要求"}},
		{Label: Responsibilities, Synonyms: []string{"工作职责", "岗位职责", "职责"}},
	},
	HeadingStop: HeadingLine,
}

// PageSections splits the full text of an article page.
var PageSections = SectionTable{
	Groups: []SynonymGroup{
		{Label: Requirements, Synonyms: []string{"任职要求", "岗位要求", "职位要求", "要求", "条件", "Requirements"}},
		{Label: Responsibilities, Synonyms: []string{"工作职责", "岗位职责", "职责", "工作内容", "Responsibilities"}},
	},
	Terminators: []string{
		"任职要求", "岗位要求", "职位要求", "工作职责", "岗位职责",
		"薪资", "待遇", "福利", "联系", "投递", "简历", "报名", "工作地", "公司介绍", "关于我们",
	},
	LineStart: true,
}

// ResumeSections splits résumé text. Each section is bounded by the headers
// of the other four.
var ResumeSections = SectionTable{
	Groups: []SynonymGroup{
		{Label: Education, Synonyms: []string{"教育背景", "教育经历", "教育", "学历"}},
		{Label: Experience, Synonyms: []string{"工作经历", "工作经验", "工作背景", "实习经历", "实习经验", "工作"}},
		{Label: Skills, Synonyms: []string{"专业技能", "个人技能", "技能", "技术栈"}},
		{Label: Projects, Synonyms: []string{"项目经历", "项目经验", "项目"}},
		{Label: Summary, Synonyms: []string{"自我评价", "个人简介", "个人总介", "自我介绍", "Summary"}},
	},
}

// Labels returns the group labels of t in order.
func (t SectionTable) Labels() []string {
	labels := make([]string, len(t.Groups))
	for i, g := range t.Groups {
		labels[i] = g.Label
	}
	return labels
}

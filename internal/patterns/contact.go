package patterns

import "regexp"

// Email tolerance levels, most strict first.
const (
	EmailStrict     = "strict"
	EmailSpaced     = "spaced"
	EmailObfuscated = "obfuscated"
)

// StrictEmail matches a plain address.
var StrictEmail = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// ValidEmail matches a whole string that is a plain address.
var ValidEmail = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// EmailRules is the escalating email cascade used on job-posting text.
var EmailRules = []Rule{
	{Name: EmailStrict, Re: StrictEmail},
	rule(EmailSpaced, `[a-zA-Z0-9._%+-]+\s*[@＠]\s*[a-zA-Z0-9.-]+\s*[.．]\s*[a-zA-Z]{2,}`, 0),
	rule(EmailObfuscated,
		`(?i)[a-zA-Z0-9._%+-]+\s*(?:\[at\]|\(at\)|（at）|【at】)\s*[a-zA-Z0-9.-]+\s*(?:\[dot\]|\(dot\)|（dot）|【dot】)\s*[a-zA-Z]{2,}`, 0),
}

// AtMarker and DotMarker match the bracketed placeholders used to hide
// addresses from scrapers.
var (
	AtMarker  = regexp.MustCompile(`(?i)\[at\]|\(at\)|（at）|【at】`)
	DotMarker = regexp.MustCompile(`(?i)\[dot\]|\(dot\)|（dot）|【dot】`)
)

// MobilePhone matches an 11-digit mainland mobile number.
var MobilePhone = regexp.MustCompile(`1[3-9]\d{9}`)

// ContactNameRules finds the recruiter's name after a contact label.
var ContactNameRules = []Rule{
	rule("contact-label", `(?:联系人|负责人|(?:HR|hr)[：:\s])[：:\s]*([^\n]+)`, 1),
}

// Package types provides type definitions for structured data used throughout the resume-dispatch system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// JobInfo is the structured record extracted from one recruitment article.
// Empty strings and nil slices mean the field was not found.
type JobInfo struct {
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Department       string    `json:"department,omitempty"`
	Location         string    `json:"location,omitempty"`
	Requirements     []string  `json:"requirements"`
	Responsibilities []string  `json:"responsibilities"`
	Salary           string    `json:"salary,omitempty"`
	ContactEmail     string    `json:"contactEmail"`
	ContactName      string    `json:"contactName,omitempty"`
	ArticleURL       string    `json:"articleUrl"`
	ArticleTitle     string    `json:"articleTitle"`
	ExtractedAt      time.Time `json:"extractedAt,omitzero"`
}

// Clone returns a deep copy, so the snapshot embedded in a CustomizedResume
// cannot be changed through the caller's slices.
func (j JobInfo) Clone() JobInfo {
	out := j
	if j.Requirements != nil {
		out.Requirements = append([]string(nil), j.Requirements...)
	}
	if j.Responsibilities != nil {
		out.Responsibilities = append([]string(nil), j.Responsibilities...)
	}
	return out
}

// IsEmpty reports whether no field carries a value.
func (j JobInfo) IsEmpty() bool {
	return j.Title == "" && j.Company == "" && j.Department == "" && j.Location == "" &&
		len(j.Requirements) == 0 && len(j.Responsibilities) == 0 && j.Salary == "" &&
		j.ContactEmail == "" && j.ContactName == "" && j.ArticleURL == "" && j.ArticleTitle == ""
}

// Article is the readable content of one recruitment page.
type Article struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	AccountName string `json:"accountName,omitempty"`
	Text        string `json:"text"`
}

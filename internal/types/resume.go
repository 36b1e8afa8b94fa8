package types

import "time"

// ParsedSections holds the sections recognized in a résumé.
// Name is always present (possibly empty); the others are omitted when not found.
type ParsedSections struct {
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Education  string `json:"education,omitempty"`
	Experience string `json:"experience,omitempty"`
	Skills     string `json:"skills,omitempty"`
	Projects   string `json:"projects,omitempty"`
	Summary    string `json:"summary,omitempty"`
}

// ResumeData is an uploaded résumé. It is never mutated after creation.
type ResumeData struct {
	ID             string         `json:"id"`
	FileName       string         `json:"fileName"`
	StorageKey     string         `json:"storageKey,omitempty"`
	RawText        string         `json:"rawText"`
	ParsedSections ParsedSections `json:"parsedSections"`
	UploadedAt     time.Time      `json:"uploadedAt"`
}

// ResumeSummary is the listing view of a résumé without its raw text.
type ResumeSummary struct {
	ID             string         `json:"id"`
	FileName       string         `json:"fileName"`
	ParsedSections ParsedSections `json:"parsedSections"`
	UploadedAt     time.Time      `json:"uploadedAt"`
}

// Summary returns the listing view of r.
func (r *ResumeData) Summary() ResumeSummary {
	return ResumeSummary{
		ID:             r.ID,
		FileName:       r.FileName,
		ParsedSections: r.ParsedSections,
		UploadedAt:     r.UploadedAt,
	}
}

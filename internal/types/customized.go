package types

import "time"

// CustomizedResume is a job-tailored variant of a résumé together with its
// outreach email. Only Status and SentAt change after creation.
type CustomizedResume struct {
	ID                 string     `json:"id"`
	BaseResumeID       string     `json:"baseResumeId"`
	JobInfo            JobInfo    `json:"jobInfo"`
	CustomizedText     string     `json:"customizedText"`
	CustomizedFileName string     `json:"customizedFileName"`
	StorageKey         string     `json:"storageKey,omitempty"`
	CoverLetter        string     `json:"coverLetter"`
	EmailSubject       string     `json:"emailSubject"`
	EmailBody          string     `json:"emailBody"`
	Strategy           string     `json:"strategy"`
	Status             Status     `json:"status"`
	CreatedAt          time.Time  `json:"createdAt"`
	SentAt             *time.Time `json:"sentAt,omitempty"`
}

// SubmissionStatus is the delivery state of one email submission.
type SubmissionStatus string

// Submission states.
const (
	SubmissionPending SubmissionStatus = "pending"
	SubmissionSending SubmissionStatus = "sending"
	SubmissionSent    SubmissionStatus = "sent"
	SubmissionFailed  SubmissionStatus = "failed"
)

// SubmissionRecord is one attempt to email a customized résumé.
type SubmissionRecord struct {
	ID                 string           `json:"id"`
	CustomizedResumeID string           `json:"customizedResumeId"`
	JobInfo            JobInfo          `json:"jobInfo"`
	RecipientEmail     string           `json:"recipientEmail"`
	EmailSubject       string           `json:"emailSubject"`
	Status             SubmissionStatus `json:"status"`
	Error              string           `json:"error,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
	SentAt             *time.Time       `json:"sentAt,omitempty"`
}

// Stats summarizes delivery activity.
type Stats struct {
	TodayCount  int `json:"todayCount"`
	TotalCount  int `json:"totalCount"`
	ResumeCount int `json:"resumeCount"`
}

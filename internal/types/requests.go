package types

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ExtractRequest is the body of an article text extraction call.
type ExtractRequest struct {
	Text string `json:"text" validate:"required"`
	URL  string `json:"url"`
}

// ExtractPageRequest is the body of an article HTML extraction call.
type ExtractPageRequest struct {
	HTML string `json:"html" validate:"required"`
	URL  string `json:"url"`
}

// CustomizeRequest asks for a résumé tailored to one job.
type CustomizeRequest struct {
	ResumeID string   `json:"resumeId" validate:"required"`
	JobInfo  *JobInfo `json:"jobInfo" validate:"required"`
}

// SendRequest asks for a customized résumé to be emailed.
// Empty subject or body fall back to the stored ones.
type SendRequest struct {
	CustomizedResumeID string `json:"customizedResumeId" validate:"required"`
	SkipReview         bool   `json:"skipReview"`
	EmailSubject       string `json:"emailSubject,omitempty"`
	EmailBody          string `json:"emailBody,omitempty"`
}

// Validate validates the ExtractRequest using the validator.
func (r *ExtractRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ExtractPageRequest using the validator.
func (r *ExtractPageRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the CustomizeRequest using the validator.
func (r *CustomizeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the SendRequest using the validator.
func (r *SendRequest) Validate() error {
	return validate.Struct(r)
}

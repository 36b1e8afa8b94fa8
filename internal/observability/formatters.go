// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-dispatch/internal/types"
)

const (
	// boxWidth is the display width of formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// displayWidth counts East Asian wide runes as two columns.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		w += runeWidth(r)
	}
	return w
}

func runeWidth(r rune) int {
	if unicode.Is(unicode.Han, r) ||
		(r >= 0x3000 && r <= 0x303F) ||
		(r >= 0xFF00 && r <= 0xFF60) {
		return 2
	}
	return 1
}

// truncate cuts s to at most width columns, ending with "..." when cut.
func truncate(s string, width int) string {
	if displayWidth(s) <= width {
		return s
	}
	var sb strings.Builder
	w := 0
	for _, r := range s {
		rw := runeWidth(r)
		if w+rw > width-3 {
			break
		}
		sb.WriteRune(r)
		w += rw
	}
	return sb.String() + "..."
}

func pad(s string, width int) string {
	if gap := width - displayWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", label)
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintJobInfo outputs a human-readable summary of an extracted posting.
func (p *Printer) PrintJobInfo(job *types.JobInfo) {
	if job == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title:    %s\n", orDash(job.Title))
	fmt.Fprintf(&sb, "Company:  %s\n", orDash(job.Company))
	if job.Location != "" {
		fmt.Fprintf(&sb, "Location: %s\n", job.Location)
	}
	if job.Salary != "" {
		fmt.Fprintf(&sb, "Salary:   %s\n", job.Salary)
	}
	fmt.Fprintf(&sb, "Contact:  %s\n", orDash(job.ContactEmail))
	sb.WriteString("\n")

	writeList(&sb, "Requirements", job.Requirements, maxItemsToShow)
	writeList(&sb, "Responsibilities", job.Responsibilities, 3)

	p.printBox("EXTRACTED JOB", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintParsedSections shows which résumé sections were found and how long each is.
func (p *Printer) PrintParsedSections(s *types.ParsedSections) {
	if s == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:     %s\n", orDash(s.Name))
	fmt.Fprintf(&sb, "Phone:    %s\n", orDash(s.Phone))
	fmt.Fprintf(&sb, "Email:    %s\n", orDash(s.Email))
	sb.WriteString("\n")

	sections := []struct {
		label string
		text  string
	}{
		{"Summary", s.Summary},
		{"Education", s.Education},
		{"Experience", s.Experience},
		{"Skills", s.Skills},
		{"Projects", s.Projects},
	}
	for _, sec := range sections {
		if sec.text == "" {
			fmt.Fprintf(&sb, "✗ %s\n", sec.label)
			continue
		}
		fmt.Fprintf(&sb, "✓ %s (%d chars)\n", sec.label, utf8.RuneCountInString(sec.text))
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCustomized outputs the generated file name, strategy and email preview.
func (p *Printer) PrintCustomized(c *types.CustomizedResume) {
	if c == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "File:     %s\n", c.CustomizedFileName)
	fmt.Fprintf(&sb, "Strategy: %s\n", orDash(c.Strategy))
	fmt.Fprintf(&sb, "Status:   %s\n", c.Status)
	fmt.Fprintf(&sb, "Subject:  %s\n", c.EmailSubject)
	sb.WriteString("\n")

	lines := strings.Split(strings.TrimSpace(c.CoverLetter), "\n")
	count := min(len(lines), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(lines[i])
		sb.WriteString("\n")
	}
	if len(lines) > maxItemsToShow {
		fmt.Fprintf(&sb, "... and %d more lines\n", len(lines)-maxItemsToShow)
	}

	p.printBox("CUSTOMIZED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSubmission outputs the result of one delivery attempt.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSubmission(r *types.SubmissionRecord) {
	if r == nil {
		return
	}
	if r.Status == types.SubmissionSent {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate("✅ SENT TO "+r.RecipientEmail, boxWidth-4), boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "To:       %s\n", r.RecipientEmail)
	fmt.Fprintf(&sb, "Status:   %s\n", r.Status)
	if r.Error != "" {
		fmt.Fprintf(&sb, "⚠ %s", r.Error)
	}
	p.printBox("SUBMISSION", strings.TrimSuffix(sb.String(), "\n"))
}

// internal/scoring/validate.go
package scoring

import (
	"errors"
	"fmt"
	"math"

	"civic-relevance-workers/internal/models"
)

var (
	ErrInvalidProfile   = errors.New("INVALID_PROFILE")
	ErrInvalidIssue     = errors.New("INVALID_ISSUE")
	ErrInvalidThreshold = errors.New("INVALID_THRESHOLD")
	ErrIssueNotFound    = errors.New("ISSUE_NOT_FOUND")
)

// ValidationError names the offending field of a malformed record.
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Kind, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func ValidateProfile(p *models.Profile) error {
	if p == nil {
		return &ValidationError{Kind: ErrInvalidProfile, Field: "profile", Message: "is required"}
	}
	if p.Demographics == nil {
		return &ValidationError{Kind: ErrInvalidProfile, Field: profileField(p, "demographics"), Message: "is required"}
	}
	if p.Location == nil {
		return &ValidationError{Kind: ErrInvalidProfile, Field: profileField(p, "location"), Message: "is required"}
	}
	return nil
}

func ValidateIssue(is *models.Issue) error {
	if is == nil {
		return &ValidationError{Kind: ErrInvalidIssue, Field: "issue", Message: "is required"}
	}
	if is.TargetDemo == nil {
		return &ValidationError{Kind: ErrInvalidIssue, Field: issueField(is, "targetDemo"), Message: "is required"}
	}
	if is.Weights == nil {
		return &ValidationError{Kind: ErrInvalidIssue, Field: issueField(is, "weights"), Message: "is required"}
	}
	if is.Location == nil {
		return &ValidationError{Kind: ErrInvalidIssue, Field: issueField(is, "location"), Message: "is required"}
	}
	w := is.Weights
	if w.D < 0 || w.G < 0 || w.S < 0 || w.X < 0 {
		return &ValidationError{Kind: ErrInvalidIssue, Field: issueField(is, "weights"), Message: "must be non-negative"}
	}
	return nil
}

func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return &ValidationError{
			Kind:    ErrInvalidThreshold,
			Field:   "threshold",
			Message: fmt.Sprintf("must be within [0,1], got %v", threshold),
		}
	}
	return nil
}

func profileField(p *models.Profile, field string) string {
	if p.ID == "" {
		return "profile." + field
	}
	return fmt.Sprintf("profile[%s].%s", p.ID, field)
}

func issueField(is *models.Issue, field string) string {
	if is.Title == "" {
		return "issue." + field
	}
	return fmt.Sprintf("issue[%s].%s", is.Title, field)
}

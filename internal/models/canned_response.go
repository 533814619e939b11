package models

import (
	"time"

	"github.com/localnerve/expiestack/internal/types"
)

// CannedResponse is a reusable message template
type CannedResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	UsageCount int       `json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// HasTag reports whether tag is one of the response's tags
func (r CannedResponse) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NewCannedResponse is the create input for a CannedResponse.
// Tags accept a single string or an array.
type NewCannedResponse struct {
	UserID  string                 `json:"-"`
	Title   string                 `json:"title"`
	Content string                 `json:"content"`
	Tags    types.FlexList[string] `json:"tags"`
}

// CannedResponsePatch lists the patchable canned response fields
type CannedResponsePatch struct {
	Title   *string                `json:"title,omitempty"`
	Content *string                `json:"content,omitempty"`
	Tags    types.FlexList[string] `json:"tags,omitempty"`
}

// Apply merges the provided fields into r
func (p CannedResponsePatch) Apply(r *CannedResponse) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Content != nil {
		r.Content = *p.Content
	}
	if p.Tags != nil {
		r.Tags = UniqueTags(p.Tags)
	}
}

// UniqueTags drops empty and repeated tags, keeping first occurrences
func UniqueTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

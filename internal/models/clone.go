package models

import "slices"

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone returns a copy that shares no memory with r
func (r CannedResponse) Clone() CannedResponse {
	r.Tags = slices.Clone(r.Tags)
	return r
}

// Clone returns a copy that shares no memory with i
func (i ActionItem) Clone() ActionItem {
	i.Transcript = clonePtr(i.Transcript)
	i.DueDate = clonePtr(i.DueDate)
	i.Source = clonePtr(i.Source)
	return i
}

// Clone returns a copy that shares no memory with a
func (a Automation) Clone() Automation {
	a.LastRun = clonePtr(a.LastRun)
	return a
}

package model

// PostStatus is the closed set of post lifecycle states.
type PostStatus string

const (
	StatusDraft     PostStatus = "DRAFT"
	StatusScheduled PostStatus = "SCHEDULED"
	StatusPublished PostStatus = "PUBLISHED"
	StatusFailed    PostStatus = "FAILED"
)

// transitions holds every allowed move. PUBLISHED is terminal;
// FAILED is terminal for the pipeline, the owner may reset it to DRAFT.
var transitions = map[PostStatus]map[PostStatus]bool{
	StatusDraft: {
		StatusScheduled: true,
	},
	StatusScheduled: {
		StatusDraft:     true,
		StatusPublished: true,
		StatusFailed:    true,
	},
	StatusPublished: {},
	StatusFailed: {
		StatusDraft: true,
	},
}

func (s PostStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusPublished, StatusFailed:
		return true
	}
	return false
}

// CanTransition reports whether the move from s to target is allowed.
func (s PostStatus) CanTransition(target PostStatus) bool {
	return transitions[s][target]
}

package types

// Status is the row lifecycle status, distinct from business statuses such as
// InstallmentStatus. Queries only see published rows.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

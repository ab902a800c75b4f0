package domain

import "time"

// ResourceState is the modification state of a resource in the offline project
type ResourceState string

const (
	ResourceNew       ResourceState = "new"
	ResourceChanged   ResourceState = "changed"
	ResourceDeleted   ResourceState = "deleted"
	ResourceUnchanged ResourceState = "unchanged"
)

// Letter returns the one-letter marker shown next to a resource
func (s ResourceState) Letter() string {
	switch s {
	case ResourceNew:
		return "N"
	case ResourceChanged:
		return "C"
	case ResourceDeleted:
		return "D"
	case ResourceUnchanged:
		return "U"
	default:
		return "?"
	}
}

// ProblemType classifies the info attached to a publish resource
type ProblemType string

const (
	ProblemBrokenLink  ProblemType = "brokenlink"
	ProblemLocked      ProblemType = "locked"
	ProblemPermissions ProblemType = "permissions"
	ProblemPublished   ProblemType = "published"
	ProblemRelated     ProblemType = "related"
	ProblemSibling     ProblemType = "sibling"
)

// Blocks reports whether a resource carrying this type may not be published
func (t ProblemType) Blocks() bool {
	switch t {
	case ProblemBrokenLink, ProblemLocked, ProblemPermissions, ProblemPublished:
		return true
	default:
		return false
	}
}

// ParseProblemType converts a stored/manifest value to a ProblemType.
// The empty string yields ok == true with an empty type (no info).
func ParseProblemType(s string) (ProblemType, bool) {
	switch t := ProblemType(s); t {
	case "", ProblemBrokenLink, ProblemLocked, ProblemPermissions, ProblemPublished, ProblemRelated, ProblemSibling:
		return t, true
	default:
		return "", false
	}
}

// ProblemInfo describes why a resource is listed or why it cannot be published
type ProblemInfo struct {
	Type    ProblemType
	Message string
}

// HasProblemType reports whether the info blocks publishing
func (i *ProblemInfo) HasProblemType() bool {
	return i != nil && i.Type.Blocks()
}

// RelationKind tells how a related resource is attached to its parent
type RelationKind string

const (
	RelationRelated RelationKind = "related"
	RelationSibling RelationKind = "sibling"
)

// PublishResource is one entry of a publish list
type PublishResource struct {
	ID               string
	Path             string
	Title            string
	ResourceType     string
	State            ResourceState
	UserLastModified string
	DateLastModified time.Time
	Related          []PublishResource // one level deep; entries carry no Related of their own
	Relation         RelationKind      // set on Related entries only
	Info             *ProblemInfo
}

// PublishGroup is a named, ordered bucket of resources
type PublishGroup struct {
	Name      string
	Resources []PublishResource
}

// PublishOptions control which resources the source attaches to a publish list
type PublishOptions struct {
	IncludeRelated  bool
	IncludeSiblings bool
}

// PublishRequest is what the dialog submits
type PublishRequest struct {
	PublishIDs []string
	RemoveIDs  []string
	Options    PublishOptions
}

// PublishResult reports the outcome of a submitted request
type PublishResult struct {
	JobID     string
	Published int
	Removed   int
}

package input

// ModelContext implements the Context interface for the input handler. The
// model fills it from its current rows before every key press.
type ModelContext struct {
	Index       int
	Total       int
	OnGroup     bool
	GroupIndex  int
	ResourceID  string // empty on headers and related rows
	Submittable bool
	Filter      string
}

// CurrentIndex returns the cursor row
func (c *ModelContext) CurrentIndex() int {
	return c.Index
}

// TotalItems returns the number of visible rows
func (c *ModelContext) TotalItems() int {
	return c.Total
}

// IsOnGroup returns true if the cursor is on a group header
func (c *ModelContext) IsOnGroup() bool {
	return c.OnGroup
}

// CurrentGroupIndex returns the model group index of the cursor row
func (c *ModelContext) CurrentGroupIndex() int {
	return c.GroupIndex
}

// CurrentResourceID returns the id of the resource under the cursor
func (c *ModelContext) CurrentResourceID() string {
	return c.ResourceID
}

// CanSubmit reports whether the publish list has anything to submit
func (c *ModelContext) CanSubmit() bool {
	return c.Submittable
}

// FilterQuery returns the active path filter
func (c *ModelContext) FilterQuery() string {
	return c.Filter
}

package publish

import (
	"cmspublish/internal/domain"
)

// TotalSummaryKey is the key of the whole-model summary in the map returned by
// ComputeGroupSelectionStates
const TotalSummaryKey = -1

// HasProblems reports whether res carries info that blocks publishing
func HasProblems(res domain.PublishResource) bool {
	return res.Info.HasProblemType()
}

// DataModel owns one publish list: its groups, the per-resource statuses and
// the related-resource links. It is rebuilt, never patched, when the list
// changes.
//
// Lookups by id or group index expect values taken from the model itself.
// An unknown id or an out-of-range index is a caller bug: lookups return the
// zero value and signals addressed to it change nothing.
//
// Duplicate ids across groups are tolerated: the first occurrence owns the
// status, the resource index keeps the last one and the id is listed in every
// group it appears in.
type DataModel struct {
	groups []domain.PublishGroup

	publishResources map[string]domain.PublishResource // id -> resource
	resourcesByPath  map[string]domain.PublishResource // path -> resource, last write wins
	status           map[string]*ItemStatus             // id -> status
	statusOrder      []string                           // ids in first-seen order
	idsByGroup       [][]string                         // group index -> ids

	relatedIDs       map[string][]string               // id -> related ids
	relatedResources map[string]domain.PublishResource // related id -> resource

	selectionChangeAction func()
}

// NewDataModel indexes groups and creates one status per resource. handler
// receives every status update and may be nil.
func NewDataModel(groups []domain.PublishGroup, handler UpdateHandler) *DataModel {
	m := &DataModel{
		groups:           groups,
		publishResources: make(map[string]domain.PublishResource),
		resourcesByPath:  make(map[string]domain.PublishResource),
		status:           make(map[string]*ItemStatus),
		idsByGroup:       make([][]string, len(groups)),
		relatedIDs:       make(map[string][]string),
		relatedResources: make(map[string]domain.PublishResource),
	}

	for i, group := range groups {
		ids := make([]string, 0, len(group.Resources))
		for _, res := range group.Resources {
			if _, exists := m.status[res.ID]; !exists {
				m.status[res.ID] = NewItemStatus(res.ID, StateNormal, HasProblems(res), handler)
				m.statusOrder = append(m.statusOrder, res.ID)
			}
			m.publishResources[res.ID] = res
			m.resourcesByPath[res.Path] = res
			ids = append(ids, res.ID)

			for _, related := range res.Related {
				m.addRelated(res.ID, related.ID)
				m.relatedResources[related.ID] = related
			}
		}
		m.idsByGroup[i] = ids
	}

	return m
}

// addRelated stores relatedID under id once per distinct parent relationship
func (m *DataModel) addRelated(id, relatedID string) {
	for _, existing := range m.relatedIDs[id] {
		if existing == relatedID {
			return
		}
	}
	m.relatedIDs[id] = append(m.relatedIDs[id], relatedID)
}

// SetSelectionChangeAction registers the callback fired once after every
// Signal, SignalAll and SignalGroup call. The last registration wins.
func (m *DataModel) SetSelectionChangeAction(action func()) {
	m.selectionChangeAction = action
}

// ComputeGroupSelectionStates tallies item states per group index plus the
// whole model under TotalSummaryKey. Disabled items count as remove.
func (m *DataModel) ComputeGroupSelectionStates() map[int]*ItemStateSummary {
	result := make(map[int]*ItemStateSummary, len(m.groups)+1)
	total := &ItemStateSummary{}
	result[TotalSummaryKey] = total

	for i, ids := range m.idsByGroup {
		summary := &ItemStateSummary{}
		result[i] = summary
		for _, id := range ids {
			status := m.status[id]
			summary.AddItem(status.State(), status.IsDisabled())
			total.AddItem(status.State(), status.IsDisabled())
		}
	}

	return result
}

// CountResources counts the indexed resources matching pred
func (m *DataModel) CountResources(pred func(domain.PublishResource) bool) int {
	count := 0
	for _, id := range m.statusOrder {
		if pred(m.publishResources[id]) {
			count++
		}
	}
	return count
}

// CountResourcesInGroup counts the resources matching pred
func (m *DataModel) CountResourcesInGroup(pred func(domain.PublishResource) bool, resources []domain.PublishResource) int {
	count := 0
	for _, res := range resources {
		if pred(res) {
			count++
		}
	}
	return count
}

// CountProblems counts resources whose problems block publishing
func (m *DataModel) CountProblems() int {
	return m.CountResources(HasProblems)
}

// PublishIDs returns the ids to submit for publishing: every item in state
// publish plus the problem-free related resources of those items. Related
// resources have no status of their own; they ride along with their parent.
func (m *DataModel) PublishIDs() []string {
	var ids []string
	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, id := range m.statusOrder {
		if m.status[id].State() != StatePublish {
			continue
		}
		add(id)
		for _, relatedID := range m.relatedIDs[id] {
			related, ok := m.relatedResources[relatedID]
			if ok && !HasProblems(related) {
				add(relatedID)
			}
		}
	}

	return ids
}

// RemoveIDs returns the ids of items in state remove. Removal never cascades
// to related resources.
func (m *DataModel) RemoveIDs() []string {
	var ids []string
	for _, id := range m.statusOrder {
		if m.status[id].State() == StateRemove {
			ids = append(ids, id)
		}
	}
	return ids
}

// IDsOfAlreadyPublishedResources returns the ids of resources and related
// resources, across all groups, whose info says they were already published
func (m *DataModel) IDsOfAlreadyPublishedResources() []string {
	var ids []string
	seen := make(map[string]bool)
	check := func(res domain.PublishResource) {
		if res.Info != nil && res.Info.Type == domain.ProblemPublished && !seen[res.ID] {
			seen[res.ID] = true
			ids = append(ids, res.ID)
		}
	}

	for _, group := range m.groups {
		for _, res := range group.Resources {
			check(res)
			for _, related := range res.Related {
				check(related)
			}
		}
	}

	return ids
}

// Signal sends sig to the status of id, then fires the selection-change
// callback. id must come from the model.
func (m *DataModel) Signal(sig Signal, id string) {
	if status := m.status[id]; status != nil {
		status.HandleSignal(sig)
	}
	m.fireSelectionChange()
}

// SignalAll sends sig to every status, then fires the callback once
func (m *DataModel) SignalAll(sig Signal) {
	for _, id := range m.statusOrder {
		m.status[id].HandleSignal(sig)
	}
	m.fireSelectionChange()
}

// SignalGroup sends sig to the resources of one group, not to their related
// resources, then fires the callback once. groupIndex must be in range.
func (m *DataModel) SignalGroup(sig Signal, groupIndex int) {
	for _, id := range m.IDsForGroup(groupIndex) {
		m.status[id].HandleSignal(sig)
	}
	m.fireSelectionChange()
}

func (m *DataModel) fireSelectionChange() {
	if m.selectionChangeAction != nil {
		m.selectionChangeAction()
	}
}

// Status returns the status of id, or nil for an id the model does not know
func (m *DataModel) Status(id string) *ItemStatus {
	return m.status[id]
}

// Groups returns the groups as received
func (m *DataModel) Groups() []domain.PublishGroup {
	groups := make([]domain.PublishGroup, len(m.groups))
	copy(groups, m.groups)
	return groups
}

// IDsForGroup returns the ids of group i in list order, or nil when i is out of range
func (m *DataModel) IDsForGroup(i int) []string {
	if i < 0 || i >= len(m.idsByGroup) {
		return nil
	}
	ids := make([]string, len(m.idsByGroup[i]))
	copy(ids, m.idsByGroup[i])
	return ids
}

// PublishResources returns the top-level resources by id
func (m *DataModel) PublishResources() map[string]domain.PublishResource {
	result := make(map[string]domain.PublishResource, len(m.publishResources))
	for k, v := range m.publishResources {
		result[k] = v
	}
	return result
}

// PublishResourcesByPath returns the top-level resources by path
func (m *DataModel) PublishResourcesByPath() map[string]domain.PublishResource {
	result := make(map[string]domain.PublishResource, len(m.resourcesByPath))
	for k, v := range m.resourcesByPath {
		result[k] = v
	}
	return result
}

// RelatedResources returns the related resources of id in link order
func (m *DataModel) RelatedResources(id string) []domain.PublishResource {
	relatedIDs := m.relatedIDs[id]
	if len(relatedIDs) == 0 {
		return nil
	}
	result := make([]domain.PublishResource, 0, len(relatedIDs))
	for _, relatedID := range relatedIDs {
		if res, ok := m.relatedResources[relatedID]; ok {
			result = append(result, res)
		}
	}
	return result
}

// GroupIndexOf returns the first group listing id
func (m *DataModel) GroupIndexOf(id string) (int, bool) {
	for i, ids := range m.idsByGroup {
		for _, candidate := range ids {
			if candidate == id {
				return i, true
			}
		}
	}
	return 0, false
}

// HasSingleGroup reports whether the list has exactly one group
func (m *DataModel) HasSingleGroup() bool {
	return len(m.groups) == 1
}

// IsEmpty reports whether the model holds no statuses
func (m *DataModel) IsEmpty() bool {
	return len(m.status) == 0
}

// CanSubmit reports whether there is anything to publish or remove
func (m *DataModel) CanSubmit() bool {
	return len(m.PublishIDs()) > 0 || len(m.RemoveIDs()) > 0
}

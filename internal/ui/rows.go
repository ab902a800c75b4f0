package ui

import (
	"cmspublish/internal/publish"
	uilogic "cmspublish/internal/ui/logic"
	"cmspublish/internal/ui/views"
)

// buildRows lays out the publish list: a header per group followed by its
// resources and, with showRelated, their related resources. A non-empty
// filter keeps the resources whose path fuzzy-matches it. Hidden ids are left
// out and groups left without resources are dropped.
func buildRows(dm *publish.DataModel, filter string, hidden map[string]bool, showRelated bool,
	checkBox func(id string) string) []views.Row {
	if dm == nil {
		return nil
	}

	summaries := dm.ComputeGroupSelectionStates()
	var rows []views.Row

	for gi, group := range dm.Groups() {
		var visible []int // indexes into group.Resources
		for ri, res := range group.Resources {
			if !hidden[res.ID] {
				visible = append(visible, ri)
			}
		}

		paths := make([]string, len(visible))
		for i, ri := range visible {
			paths[i] = group.Resources[ri].Path
		}
		kept, hits := uilogic.FilterPaths(filter, paths)
		matched := make(map[int][]int, len(hits))
		for i, offsets := range hits {
			matched[visible[i]] = offsets
		}
		filtered := make([]int, len(kept))
		for i, k := range kept {
			filtered[i] = visible[k]
		}
		visible = filtered

		// An empty group keeps its header unless a filter is active
		if len(visible) == 0 && (len(group.Resources) > 0 || filter != "") {
			continue
		}

		rows = append(rows, views.Row{
			Kind:       views.RowGroup,
			GroupIndex: gi,
			GroupName:  group.Name,
			Summary:    summaries[gi],
		})

		for _, ri := range visible {
			res := group.Resources[ri]
			rows = append(rows, views.Row{
				Kind:       views.RowResource,
				GroupIndex: gi,
				Resource:   res,
				CheckBox:   checkBox(res.ID),
				Matched:    matched[ri],
			})

			if !showRelated {
				continue
			}
			publishing := false
			if status := dm.Status(res.ID); status != nil {
				publishing = status.State() == publish.StatePublish
			}
			for _, related := range dm.RelatedResources(res.ID) {
				if hidden[related.ID] {
					continue
				}
				rows = append(rows, views.Row{
					Kind:       views.RowRelated,
					GroupIndex: gi,
					Resource:   related,
					ParentID:   res.ID,
					RidesAlong: publishing && !publish.HasProblems(related),
				})
			}
		}
	}

	return rows
}

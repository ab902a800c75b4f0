package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmspublish/internal/domain"
	"cmspublish/internal/publish"
	"cmspublish/internal/ui/views"
)

func noCheckBox(string) string { return "" }

func rowIDs(rows []views.Row) []string {
	var ids []string
	for _, row := range rows {
		switch row.Kind {
		case views.RowGroup:
			ids = append(ids, "#"+row.GroupName)
		case views.RowResource:
			ids = append(ids, row.Resource.ID)
		case views.RowRelated:
			ids = append(ids, row.ParentID+">"+row.Resource.ID)
		}
	}
	return ids
}

func TestBuildRows(t *testing.T) {
	dm := publish.NewDataModel(testGroups(), nil)

	rows := buildRows(dm, "", nil, true, noCheckBox)
	assert.Equal(t, []string{"#My changes", "a", "a>r1", "a>r2", "b", "c", "#Other users", "d", "p"}, rowIDs(rows))

	rows = buildRows(dm, "", nil, false, noCheckBox)
	assert.Equal(t, []string{"#My changes", "a", "b", "c", "#Other users", "d", "p"}, rowIDs(rows))
}

func TestBuildRowsNilModel(t *testing.T) {
	assert.Nil(t, buildRows(nil, "", nil, true, noCheckBox))
}

func TestBuildRowsHidden(t *testing.T) {
	dm := publish.NewDataModel(testGroups(), nil)

	rows := buildRows(dm, "", map[string]bool{"d": true, "p": true, "r2": true}, true, noCheckBox)
	assert.Equal(t, []string{"#My changes", "a", "a>r1", "b", "c"}, rowIDs(rows))
}

func TestBuildRowsFilter(t *testing.T) {
	dm := publish.NewDataModel(testGroups(), nil)

	rows := buildRows(dm, "d.h", nil, true, noCheckBox)
	assert.Equal(t, []string{"#Other users", "d"}, rowIDs(rows))
	assert.NotEmpty(t, rows[1].Matched)
	assert.Equal(t, 1, rows[0].GroupIndex, "group index refers to the model, not the rows")
}

func TestBuildRowsEmptyGroup(t *testing.T) {
	groups := []domain.PublishGroup{
		{Name: "Empty"},
		{Name: "Full", Resources: []domain.PublishResource{{ID: "x", Path: "/x.html"}}},
	}
	dm := publish.NewDataModel(groups, nil)

	assert.Equal(t, []string{"#Empty", "#Full", "x"}, rowIDs(buildRows(dm, "", nil, true, noCheckBox)))
	assert.Empty(t, buildRows(dm, "zzz", nil, true, noCheckBox))
}

func TestBuildRowsRidesAlong(t *testing.T) {
	dm := publish.NewDataModel(testGroups(), nil)
	dm.Signal(publish.SignalPublish, "a")

	rows := buildRows(dm, "", nil, true, func(id string) string { return "<" + id + ">" })
	require.Equal(t, "a>r1", rowIDs(rows)[2])
	assert.True(t, rows[2].RidesAlong)
	assert.False(t, rows[3].RidesAlong)
	assert.Equal(t, "<a>", rows[1].CheckBox)
	assert.Empty(t, rows[2].CheckBox)
}

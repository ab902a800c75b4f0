// Package manifest reads publish lists described in TOML files.
//
//	[[group]]
//	name = "My changes"
//
//	  [[group.resource]]
//	  path = "/sites/default/index.html"
//	  state = "changed"
//	  related = ["/sites/default/img/logo.png"]
//	  siblings = ["/sites/en/index.html"]
//
//	[[resource]]
//	path = "/sites/default/img/logo.png"
//	state = "new"
//
// Top-level resources are not listed themselves; they can be referenced as
// related or sibling entries.
package manifest

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"cmspublish/internal/domain"
	"cmspublish/internal/store"
)

// Manifest is a parsed publish list
type Manifest struct {
	GroupEntries []Group    `toml:"group"`
	Resources    []Resource `toml:"resource"`

	byPath map[string]*Resource
}

// Group is a named list of resources
type Group struct {
	Name      string     `toml:"name"`
	Resources []Resource `toml:"resource"`
}

// Resource is one manifest entry
type Resource struct {
	ID       string    `toml:"id"`
	Path     string    `toml:"path"`
	Title    string    `toml:"title"`
	Type     string    `toml:"type"`
	State    string    `toml:"state"`
	User     string    `toml:"user"`
	Modified time.Time `toml:"modified"`
	Problem  string    `toml:"problem"`
	Message  string    `toml:"message"`
	Related  []string  `toml:"related"`
	Siblings []string  `toml:"siblings"`
}

// Load reads and parses the manifest at path
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates a manifest. Missing ids are derived from the
// resource path, a missing state defaults to changed.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	m.byPath = make(map[string]*Resource)
	for gi := range m.GroupEntries {
		if m.GroupEntries[gi].Name == "" {
			return nil, fmt.Errorf("group %d has no name", gi)
		}
		for ri := range m.GroupEntries[gi].Resources {
			if err := m.register(&m.GroupEntries[gi].Resources[ri]); err != nil {
				return nil, err
			}
		}
	}
	for i := range m.Resources {
		if err := m.register(&m.Resources[i]); err != nil {
			return nil, err
		}
	}

	for _, r := range m.all() {
		for _, p := range append(append([]string{}, r.Related...), r.Siblings...) {
			if _, ok := m.byPath[p]; !ok {
				return nil, fmt.Errorf("%s: unknown related resource %s", r.Path, p)
			}
		}
	}

	return &m, nil
}

func (m *Manifest) register(r *Resource) error {
	if r.Path == "" {
		return fmt.Errorf("resource without path")
	}
	if r.ID == "" {
		r.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(r.Path)).String()
	}

	switch domain.ResourceState(r.State) {
	case "":
		r.State = string(domain.ResourceChanged)
	case domain.ResourceNew, domain.ResourceChanged, domain.ResourceDeleted, domain.ResourceUnchanged:
	default:
		return fmt.Errorf("%s: invalid state %q", r.Path, r.State)
	}

	if _, ok := domain.ParseProblemType(r.Problem); !ok {
		return fmt.Errorf("%s: invalid problem %q", r.Path, r.Problem)
	}

	// a resource listed twice keeps its first definition
	if _, exists := m.byPath[r.Path]; !exists {
		m.byPath[r.Path] = r
	}
	return nil
}

// all returns every defined resource, grouped ones first
func (m *Manifest) all() []*Resource {
	var result []*Resource
	for gi := range m.GroupEntries {
		for ri := range m.GroupEntries[gi].Resources {
			result = append(result, &m.GroupEntries[gi].Resources[ri])
		}
	}
	for i := range m.Resources {
		result = append(result, &m.Resources[i])
	}
	return result
}

// Groups converts the manifest to publish groups with every related and
// sibling entry attached
func (m *Manifest) Groups() []domain.PublishGroup {
	groups := make([]domain.PublishGroup, 0, len(m.GroupEntries))
	for _, g := range m.GroupEntries {
		group := domain.PublishGroup{Name: g.Name}
		for _, r := range g.Resources {
			res := r.toDomain()
			if res.Info == nil && res.State == domain.ResourceUnchanged {
				res.Info = &domain.ProblemInfo{Type: domain.ProblemPublished}
			}
			for _, p := range r.Related {
				res.Related = append(res.Related, m.relatedEntry(p, domain.RelationRelated))
			}
			for _, p := range r.Siblings {
				res.Related = append(res.Related, m.relatedEntry(p, domain.RelationSibling))
			}
			group.Resources = append(group.Resources, res)
		}
		groups = append(groups, group)
	}
	return groups
}

func (m *Manifest) relatedEntry(path string, kind domain.RelationKind) domain.PublishResource {
	res := m.byPath[path].toDomain()
	res.Relation = kind
	if res.Info == nil {
		switch {
		case res.State == domain.ResourceUnchanged:
			res.Info = &domain.ProblemInfo{Type: domain.ProblemPublished}
		case kind == domain.RelationSibling:
			res.Info = &domain.ProblemInfo{Type: domain.ProblemSibling}
		default:
			res.Info = &domain.ProblemInfo{Type: domain.ProblemRelated}
		}
	}
	return res
}

func (r Resource) toDomain() domain.PublishResource {
	res := domain.PublishResource{
		ID:               r.ID,
		Path:             r.Path,
		Title:            r.Title,
		ResourceType:     r.Type,
		State:            domain.ResourceState(r.State),
		UserLastModified: r.User,
		DateLastModified: r.Modified,
	}
	if r.Problem != "" {
		res.Info = &domain.ProblemInfo{Type: domain.ProblemType(r.Problem), Message: r.Message}
	}
	return res
}

// Seed imports the manifest into st. Grouped resources are added to the
// publish list in manifest order.
func (m *Manifest) Seed(ctx context.Context, st *store.Store) error {
	resources := m.all()
	for _, r := range resources {
		if err := st.UpsertResource(ctx, r.toDomain()); err != nil {
			return err
		}
	}

	for _, r := range resources {
		pos := 0
		for _, p := range r.Related {
			if err := st.AddRelation(ctx, r.ID, m.byPath[p].ID, store.RelationRelated, pos); err != nil {
				return err
			}
			pos++
		}
		for _, p := range r.Siblings {
			if err := st.AddRelation(ctx, r.ID, m.byPath[p].ID, store.RelationSibling, pos); err != nil {
				return err
			}
			pos++
		}
	}

	pos := 0
	for _, g := range m.GroupEntries {
		for _, r := range g.Resources {
			if err := st.AddToPublishList(ctx, r.ID, g.Name, pos); err != nil {
				return err
			}
			pos++
		}
	}
	return nil
}

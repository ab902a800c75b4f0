package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cmspublish/internal/domain"
)

// RelationKind distinguishes related resources from siblings
type RelationKind = domain.RelationKind

const (
	RelationRelated = domain.RelationRelated
	RelationSibling = domain.RelationSibling
)

// Job is a submitted publish request
type Job struct {
	ID        string
	CreatedAt time.Time
	Options   domain.PublishOptions
	Published []string
	Removed   []string
}

const resourceColumns = `r.id, r.path, r.title, r.resource_type, r.state, r.user_last_modified, r.date_last_modified,
	COALESCE(p.type, ''), COALESCE(p.message, '')`

// UpsertResource inserts or replaces a resource and its problem info.
// Related entries of res are ignored; use AddRelation.
func (s *Store) UpsertResource(ctx context.Context, res domain.PublishResource) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO resources(id, path, title, resource_type, state, user_last_modified, date_last_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path=excluded.path,
			title=excluded.title,
			resource_type=excluded.resource_type,
			state=excluded.state,
			user_last_modified=excluded.user_last_modified,
			date_last_modified=excluded.date_last_modified;
		`, res.ID, res.Path, res.Title, res.ResourceType, string(res.State), res.UserLastModified, toUnix(res.DateLastModified))
		if err != nil {
			return fmt.Errorf("upsert resource %s: %w", res.Path, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM problems WHERE resource_id = ?`, res.ID); err != nil {
			return fmt.Errorf("clear problem of %s: %w", res.Path, err)
		}
		if res.Info != nil && res.Info.Type != "" {
			_, err = tx.ExecContext(ctx, `INSERT INTO problems(resource_id, type, message) VALUES (?, ?, ?)`,
				res.ID, string(res.Info.Type), res.Info.Message)
			if err != nil {
				return fmt.Errorf("store problem of %s: %w", res.Path, err)
			}
		}
		return nil
	})
}

// AddRelation links sourceID to targetID. Both resources must exist.
func (s *Store) AddRelation(ctx context.Context, sourceID, targetID string, kind RelationKind, position int) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO relations(source_id, target_id, kind, position) VALUES (?, ?, ?, ?)
	ON CONFLICT(source_id, target_id, kind) DO UPDATE SET position=excluded.position;
	`, sourceID, targetID, string(kind), position)
	if err != nil {
		return fmt.Errorf("add relation %s -> %s: %w", sourceID, targetID, err)
	}
	return nil
}

// AddToPublishList puts a resource on the publish list in group at position
func (s *Store) AddToPublishList(ctx context.Context, resourceID, group string, position int) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO publish_list(resource_id, group_name, position) VALUES (?, ?, ?)
	ON CONFLICT(resource_id) DO UPDATE SET group_name=excluded.group_name, position=excluded.position;
	`, resourceID, group, position)
	if err != nil {
		return fmt.Errorf("add %s to publish list: %w", resourceID, err)
	}
	return nil
}

// FetchGroups builds the publish list. Groups appear in the order of their
// first entry.
func (s *Store) FetchGroups(ctx context.Context, opts domain.PublishOptions) ([]domain.PublishGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT `+resourceColumns+`, pl.group_name
	FROM publish_list pl
	JOIN resources r ON r.id = pl.resource_id
	LEFT JOIN problems p ON p.resource_id = r.id
	ORDER BY pl.position, r.path`)
	if err != nil {
		return nil, fmt.Errorf("query publish list: %w", err)
	}
	defer rows.Close()

	var groups []domain.PublishGroup
	groupIndex := make(map[string]int)
	position := make(map[string][2]int) // resource id -> group index, resource index

	for rows.Next() {
		var groupName string
		res, err := scanResource(rows, &groupName)
		if err != nil {
			return nil, err
		}
		if res.Info == nil && res.State == domain.ResourceUnchanged {
			res.Info = &domain.ProblemInfo{Type: domain.ProblemPublished}
		}

		gi, ok := groupIndex[groupName]
		if !ok {
			gi = len(groups)
			groupIndex[groupName] = gi
			groups = append(groups, domain.PublishGroup{Name: groupName})
		}
		groups[gi].Resources = append(groups[gi].Resources, res)
		position[res.ID] = [2]int{gi, len(groups[gi].Resources) - 1}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if !opts.IncludeRelated && !opts.IncludeSiblings {
		return groups, nil
	}

	related, err := s.db.QueryContext(ctx, `
	SELECT rel.source_id, rel.kind, `+resourceColumns+`
	FROM relations rel
	JOIN resources r ON r.id = rel.target_id
	LEFT JOIN problems p ON p.resource_id = r.id
	WHERE rel.source_id IN (SELECT resource_id FROM publish_list)
	ORDER BY rel.source_id, rel.position, r.path`)
	if err != nil {
		return nil, fmt.Errorf("query relations: %w", err)
	}
	defer related.Close()

	for related.Next() {
		var sourceID, kind string
		res, err := scanResource(related, nil, &sourceID, &kind)
		if err != nil {
			return nil, err
		}
		if kind == string(RelationSibling) && !opts.IncludeSiblings {
			continue
		}
		if kind == string(RelationRelated) && !opts.IncludeRelated {
			continue
		}
		res.Relation = RelationKind(kind)
		if res.Info == nil {
			switch {
			case res.State == domain.ResourceUnchanged:
				res.Info = &domain.ProblemInfo{Type: domain.ProblemPublished}
			case kind == string(RelationSibling):
				res.Info = &domain.ProblemInfo{Type: domain.ProblemSibling}
			default:
				res.Info = &domain.ProblemInfo{Type: domain.ProblemRelated}
			}
		}

		pos := position[sourceID]
		parent := &groups[pos[0]].Resources[pos[1]]
		parent.Related = append(parent.Related, res)
	}
	return groups, related.Err()
}

// scanResource reads resourceColumns. suffix receives columns selected after
// them, prefix columns selected before them.
func scanResource(rows *sql.Rows, suffix *string, prefix ...any) (domain.PublishResource, error) {
	var (
		res                     domain.PublishResource
		state, problem, message string
		modified                int64
	)
	dest := append([]any{}, prefix...)
	dest = append(dest, &res.ID, &res.Path, &res.Title, &res.ResourceType, &state,
		&res.UserLastModified, &modified, &problem, &message)
	if suffix != nil {
		dest = append(dest, suffix)
	}
	if err := rows.Scan(dest...); err != nil {
		return res, fmt.Errorf("scan resource: %w", err)
	}

	res.State = domain.ResourceState(state)
	res.DateLastModified = fromUnix(modified)
	if problem != "" {
		res.Info = &domain.ProblemInfo{Type: domain.ProblemType(problem), Message: message}
	}
	return res, nil
}

// Submit records a publish job. Published resources become unchanged (deleted
// ones are dropped), and both published and removed ids leave the publish list.
func (s *Store) Submit(ctx context.Context, req domain.PublishRequest) (domain.PublishResult, error) {
	jobID := uuid.NewString()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO publish_jobs(id, created_at, include_related, include_siblings) VALUES (?, ?, ?, ?)`,
			jobID, time.Now().UTC().Unix(), boolInt(req.Options.IncludeRelated), boolInt(req.Options.IncludeSiblings))
		if err != nil {
			return fmt.Errorf("insert job: %w", err)
		}

		for _, id := range req.PublishIDs {
			if err := addJobResource(ctx, tx, jobID, id, "publish"); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM resources WHERE id = ? AND state = ?`,
				id, string(domain.ResourceDeleted)); err != nil {
				return fmt.Errorf("drop deleted resource %s: %w", id, err)
			}
			if _, err := tx.ExecContext(ctx, `UPDATE resources SET state = ? WHERE id = ?`,
				string(domain.ResourceUnchanged), id); err != nil {
				return fmt.Errorf("mark %s published: %w", id, err)
			}
		}

		for _, id := range req.RemoveIDs {
			if err := addJobResource(ctx, tx, jobID, id, "remove"); err != nil {
				return err
			}
		}

		return deleteFromPublishList(ctx, tx, append(append([]string{}, req.PublishIDs...), req.RemoveIDs...))
	})
	if err != nil {
		return domain.PublishResult{}, err
	}

	return domain.PublishResult{
		JobID:     jobID,
		Published: len(req.PublishIDs),
		Removed:   len(req.RemoveIDs),
	}, nil
}

func addJobResource(ctx context.Context, tx *sql.Tx, jobID, resourceID, action string) error {
	_, err := tx.ExecContext(ctx, `
	INSERT INTO publish_job_resources(job_id, resource_id, action) VALUES (?, ?, ?)
	ON CONFLICT DO NOTHING`, jobID, resourceID, action)
	if err != nil {
		return fmt.Errorf("record %s of %s: %w", action, resourceID, err)
	}
	return nil
}

func deleteFromPublishList(ctx context.Context, tx *sql.Tx, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM publish_list WHERE resource_id IN (`+placeholders+`)`, args...); err != nil {
		return fmt.Errorf("update publish list: %w", err)
	}
	return nil
}

// ListJobs returns submitted jobs, newest first
func (s *Store) ListJobs(ctx context.Context) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, created_at, include_related, include_siblings
	FROM publish_jobs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	index := make(map[string]int)
	for rows.Next() {
		var (
			j                 Job
			created           int64
			related, siblings int
		)
		if err := rows.Scan(&j.ID, &created, &related, &siblings); err != nil {
			return nil, err
		}
		j.CreatedAt = fromUnix(created)
		j.Options = domain.PublishOptions{IncludeRelated: related == 1, IncludeSiblings: siblings == 1}
		index[j.ID] = len(jobs)
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := s.db.QueryContext(ctx, `
	SELECT job_id, resource_id, action FROM publish_job_resources ORDER BY job_id, rowid`)
	if err != nil {
		return nil, fmt.Errorf("query job resources: %w", err)
	}
	defer items.Close()

	for items.Next() {
		var jobID, resourceID, action string
		if err := items.Scan(&jobID, &resourceID, &action); err != nil {
			return nil, err
		}
		i, ok := index[jobID]
		if !ok {
			continue
		}
		if action == "publish" {
			jobs[i].Published = append(jobs[i].Published, resourceID)
		} else {
			jobs[i].Removed = append(jobs[i].Removed, resourceID)
		}
	}
	return jobs, items.Err()
}

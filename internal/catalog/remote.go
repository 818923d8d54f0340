// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivision/showcase-go/internal/model"
)

// RemoteDataSource persists projects in the hosted Postgres backend.
// Project rows live in projects, their metrics in project_metrics.
type RemoteDataSource struct {
	pool *pgxpool.Pool
}

// NewRemoteDataSource connects to the backend and verifies the
// connection before returning.
func NewRemoteDataSource(ctx context.Context, databaseURL string) (*RemoteDataSource, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to catalog backend: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging catalog backend: %w", err)
	}
	return &RemoteDataSource{pool: pool}, nil
}

// Close releases the connection pool.
func (s *RemoteDataSource) Close() {
	s.pool.Close()
}

const listProjects = `
SELECT id, title, category, COALESCE(image_url, ''), COALESCE(video_url, ''),
       COALESCE(client, ''), COALESCE(description, ''), COALESCE(size, ''), created_at
FROM projects
ORDER BY created_at DESC, id DESC
`

// List returns all projects newest first, metrics included.
func (s *RemoteDataSource) List(ctx context.Context) ([]model.Project, error) {
	rows, err := s.pool.Query(ctx, listProjects)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	ids := make([]int64, 0)
	for rows.Next() {
		var (
			id int64
			p  model.Project
		)
		if err := rows.Scan(&id, &p.Title, &p.Category, &p.ImageURL, &p.VideoURL,
			&p.Client, &p.Description, &p.Size, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		p.ID = strconv.FormatInt(id, 10)
		projects = append(projects, p)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	if len(ids) == 0 {
		return projects, nil
	}

	metrics, err := s.metricsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].Metrics = metrics[projects[i].ID]
	}
	return projects, nil
}

const listMetrics = `
SELECT project_id, label, value
FROM project_metrics
WHERE project_id = ANY($1)
ORDER BY id
`

func (s *RemoteDataSource) metricsFor(ctx context.Context, ids []int64) (map[string][]model.Metric, error) {
	rows, err := s.pool.Query(ctx, listMetrics, ids)
	if err != nil {
		return nil, fmt.Errorf("listing metrics: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]model.Metric)
	for rows.Next() {
		var (
			projectID int64
			m         model.Metric
		)
		if err := rows.Scan(&projectID, &m.Label, &m.Value); err != nil {
			return nil, fmt.Errorf("scanning metric: %w", err)
		}
		key := strconv.FormatInt(projectID, 10)
		out[key] = append(out[key], m)
	}
	return out, rows.Err()
}

const getProject = `
SELECT id, title, category, COALESCE(image_url, ''), COALESCE(video_url, ''),
       COALESCE(client, ''), COALESCE(description, ''), COALESCE(size, ''), created_at
FROM projects
WHERE id = $1
`

// Get returns one project by ID.
func (s *RemoteDataSource) Get(ctx context.Context, id string) (model.Project, error) {
	numID, err := parseID(id)
	if err != nil {
		return model.Project{}, ErrNotFound
	}

	var p model.Project
	var rowID int64
	err = s.pool.QueryRow(ctx, getProject, numID).Scan(&rowID, &p.Title, &p.Category,
		&p.ImageURL, &p.VideoURL, &p.Client, &p.Description, &p.Size, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Project{}, ErrNotFound
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("getting project %s: %w", id, err)
	}
	p.ID = strconv.FormatInt(rowID, 10)

	metrics, err := s.metricsFor(ctx, []int64{numID})
	if err != nil {
		return model.Project{}, err
	}
	p.Metrics = metrics[p.ID]
	return p, nil
}

const insertProject = `
INSERT INTO projects (title, category, image_url, video_url, client, description, size)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`

const insertMetric = `
INSERT INTO project_metrics (project_id, label, value)
VALUES ($1, $2, $3)
`

// Create inserts the project and its metrics in one transaction.
func (s *RemoteDataSource) Create(ctx context.Context, p model.Project) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, insertProject,
		p.Title, p.Category, p.ImageURL, p.VideoURL, p.Client, p.Description, p.Size,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("inserting project: %w", err)
	}

	for _, m := range p.Metrics {
		if _, err := tx.Exec(ctx, insertMetric, id, m.Label, m.Value); err != nil {
			return "", fmt.Errorf("inserting metric %q: %w", m.Label, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("committing project: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

const updateProject = `
UPDATE projects
SET title = $2, category = $3, image_url = $4, video_url = $5,
    client = $6, description = $7, size = $8
WHERE id = $1
`

// Update rewrites the project row and reconciles its metrics against
// the stored set: changed values update in place, new labels insert
// and removed labels delete. Untouched rows are left alone.
func (s *RemoteDataSource) Update(ctx context.Context, p model.Project) error {
	numID, err := parseID(p.ID)
	if err != nil {
		return ErrNotFound
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, updateProject, numID,
		p.Title, p.Category, p.ImageURL, p.VideoURL, p.Client, p.Description, p.Size)
	if err != nil {
		return fmt.Errorf("updating project %s: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := reconcileMetrics(ctx, tx, numID, p.Metrics); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing project update: %w", err)
	}
	return nil
}

const selectMetricsForUpdate = `
SELECT label, value FROM project_metrics WHERE project_id = $1
`

func reconcileMetrics(ctx context.Context, tx pgx.Tx, projectID int64, want []model.Metric) error {
	rows, err := tx.Query(ctx, selectMetricsForUpdate, projectID)
	if err != nil {
		return fmt.Errorf("loading metrics: %w", err)
	}

	existing := make(map[string]string)
	for rows.Next() {
		var label, value string
		if err := rows.Scan(&label, &value); err != nil {
			rows.Close()
			return fmt.Errorf("scanning metric: %w", err)
		}
		existing[label] = value
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("loading metrics: %w", err)
	}

	wanted := make(map[string]bool, len(want))
	for _, m := range want {
		wanted[m.Label] = true
		current, ok := existing[m.Label]
		switch {
		case !ok:
			if _, err := tx.Exec(ctx, insertMetric, projectID, m.Label, m.Value); err != nil {
				return fmt.Errorf("inserting metric %q: %w", m.Label, err)
			}
		case current != m.Value:
			if _, err := tx.Exec(ctx,
				`UPDATE project_metrics SET value = $3 WHERE project_id = $1 AND label = $2`,
				projectID, m.Label, m.Value); err != nil {
				return fmt.Errorf("updating metric %q: %w", m.Label, err)
			}
		}
	}

	for label := range existing {
		if !wanted[label] {
			if _, err := tx.Exec(ctx,
				`DELETE FROM project_metrics WHERE project_id = $1 AND label = $2`,
				projectID, label); err != nil {
				return fmt.Errorf("deleting metric %q: %w", label, err)
			}
		}
	}
	return nil
}

// Delete removes a project and, via the cascade, its metrics. Deleting
// an absent ID succeeds so the operation stays idempotent.
func (s *RemoteDataSource) Delete(ctx context.Context, id string) error {
	numID, err := parseID(id)
	if err != nil {
		return nil
	}

	if _, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, numID); err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	return nil
}

// Persistent reports that writes survive restarts.
func (s *RemoteDataSource) Persistent() bool { return true }

// Ping verifies the backend connection.
func (s *RemoteDataSource) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func parseID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

var _ DataSource = (*RemoteDataSource)(nil)

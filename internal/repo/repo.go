// Package repo is the Postgres persistence layer: users, sign projects,
// solved result envelopes, and the background solve-job queue.
//
// Tables: users(id, login, email, password), projects(id, owner_id, name,
// site, notes, created_at), envelopes(id, project_id, solver, content_hash
// unique, body, created_at), jobs(id, project_id, solver, payload, status,
// attempts, result_hash, created_at, finished_at).
package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// Job statuses. A job moves queued -> running -> done|failed.
const (
	JobQueued  = "queued"
	JobRunning = "running"
	JobDone    = "done"
	JobFailed  = "failed"
)

type Project struct {
	ID        int             `json:"id"`
	OwnerID   int             `json:"owner_id"`
	Name      string          `json:"name"`
	Site      json.RawMessage `json:"site"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}

// EnvelopeRow is a stored solver result. Body is the serialized envelope;
// ContentHash is its deterministic identity, unique across the table.
type EnvelopeRow struct {
	ID          int             `json:"id"`
	ProjectID   int             `json:"project_id"`
	Solver      string          `json:"solver"`
	ContentHash string          `json:"content_hash"`
	Body        json.RawMessage `json:"body"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Job struct {
	ID        int             `json:"id"`
	ProjectID int             `json:"project_id"`
	Solver    string          `json:"solver"`
	Payload   json.RawMessage `json:"payload"`
	Status    string          `json:"status"`
	Attempts  int             `json:"attempts"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)

	CreateProject(ctx context.Context, ownerID int, name string, site json.RawMessage, notes string) (int, error)
	GetProject(ctx context.Context, ownerID, id int) (Project, error)
	ListProjects(ctx context.Context, ownerID int) ([]Project, error)
	UpdateProject(ctx context.Context, ownerID, id int, name string, site json.RawMessage, notes string) error
	DeleteProject(ctx context.Context, ownerID, id int) error

	SaveEnvelope(ctx context.Context, projectID int, solver, contentHash string, body json.RawMessage) (int, error)
	GetEnvelopeByHash(ctx context.Context, contentHash string) (EnvelopeRow, error)

	EnqueueJob(ctx context.Context, projectID int, solver string, payload json.RawMessage) (int, error)
	ClaimJob(ctx context.Context) (*Job, error)
	CompleteJob(ctx context.Context, jobID int, status, resultHash string) error
}

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (r *Postgres) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

// GetByLogin returns (0, "", nil) on a missing user; the caller rejects the
// credential pair without revealing whether the login exists.
func (r *Postgres) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string
	query := "SELECT id, password FROM users WHERE login=$1"
	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *Postgres) CreateProject(ctx context.Context, ownerID int, name string, site json.RawMessage, notes string) (int, error) {
	var id int
	query := "INSERT INTO projects (owner_id, name, site, notes) VALUES ($1, $2, $3, $4) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, ownerID, name, site, notes).Scan(&id)
	return id, err
}

func (r *Postgres) GetProject(ctx context.Context, ownerID, id int) (Project, error) {
	var p Project
	query := "SELECT id, owner_id, name, site, notes, created_at FROM projects WHERE id=$1 AND owner_id=$2"
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&p.ID, &p.OwnerID, &p.Name, &p.Site, &p.Notes, &p.CreatedAt)
	return p, err
}

func (r *Postgres) ListProjects(ctx context.Context, ownerID int) ([]Project, error) {
	query := "SELECT id, owner_id, name, site, notes, created_at FROM projects WHERE owner_id=$1 ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Site, &p.Notes, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Postgres) UpdateProject(ctx context.Context, ownerID, id int, name string, site json.RawMessage, notes string) error {
	query := "UPDATE projects SET name=$3, site=$4, notes=$5 WHERE id=$1 AND owner_id=$2"
	res, err := r.db.ExecContext(ctx, query, id, ownerID, name, site, notes)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *Postgres) DeleteProject(ctx context.Context, ownerID, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id=$1 AND owner_id=$2", id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SaveEnvelope inserts a solved envelope, idempotent on content_hash: the
// same design solved twice stores one row and both calls get its id.
func (r *Postgres) SaveEnvelope(ctx context.Context, projectID int, solver, contentHash string, body json.RawMessage) (int, error) {
	var id int
	query := `INSERT INTO envelopes (project_id, solver, content_hash, body)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (content_hash) DO UPDATE SET solver = EXCLUDED.solver
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, projectID, solver, contentHash, body).Scan(&id)
	return id, err
}

func (r *Postgres) GetEnvelopeByHash(ctx context.Context, contentHash string) (EnvelopeRow, error) {
	var e EnvelopeRow
	query := "SELECT id, project_id, solver, content_hash, body, created_at FROM envelopes WHERE content_hash=$1"
	err := r.db.QueryRowContext(ctx, query, contentHash).
		Scan(&e.ID, &e.ProjectID, &e.Solver, &e.ContentHash, &e.Body, &e.CreatedAt)
	return e, err
}

func (r *Postgres) EnqueueJob(ctx context.Context, projectID int, solver string, payload json.RawMessage) (int, error) {
	var id int
	query := "INSERT INTO jobs (project_id, solver, payload, status) VALUES ($1, $2, $3, $4) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, projectID, solver, payload, JobQueued).Scan(&id)
	return id, err
}

// ClaimJob takes the oldest queued job, marking it running. SKIP LOCKED
// keeps concurrent workers off the same row. A drained queue returns
// (nil, nil).
func (r *Postgres) ClaimJob(ctx context.Context) (*Job, error) {
	query := `UPDATE jobs SET status=$1, attempts = attempts + 1
		WHERE id = (
			SELECT id FROM jobs WHERE status=$2 ORDER BY id
			FOR UPDATE SKIP LOCKED LIMIT 1
		)
		RETURNING id, project_id, solver, payload, attempts`
	var j Job
	err := r.db.QueryRowContext(ctx, query, JobRunning, JobQueued).
		Scan(&j.ID, &j.ProjectID, &j.Solver, &j.Payload, &j.Attempts)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	j.Status = JobRunning
	return &j, nil
}

func (r *Postgres) CompleteJob(ctx context.Context, jobID int, status, resultHash string) error {
	query := "UPDATE jobs SET status=$2, result_hash=$3, finished_at=now() WHERE id=$1"
	_, err := r.db.ExecContext(ctx, query, jobID, status, resultHash)
	return err
}

package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/EAGLE605/SignX-sub007/internal/repo"
	"github.com/EAGLE605/SignX-sub007/internal/sign/batch"
	"github.com/EAGLE605/SignX-sub007/internal/sign/catalog"
)

const (
	idlePoll     = 2 * time.Second
	errorBackoff = 5 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := repo.InitDB()
	defer db.Close()
	store := repo.NewPostgres(db)
	runner := batch.NewRunner(loadCatalog())

	log.Println("worker started, polling job queue")
	for {
		select {
		case <-ctx.Done():
			log.Println("worker stopping")
			return
		default:
		}

		job, err := store.ClaimJob(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Println("claim error:", err)
			sleep(ctx, errorBackoff)
			continue
		}
		if job == nil {
			sleep(ctx, idlePoll)
			continue
		}
		process(ctx, store, runner, job)
	}
}

// process solves one claimed job and stores the envelope. Solver errors mark
// the job failed; they are job data problems, not worker problems, so the
// loop keeps going.
func process(ctx context.Context, store *repo.Postgres, runner *batch.Runner, job *repo.Job) {
	res, err := runner.Solve(batch.Input{Items: []batch.Request{{Solver: job.Solver, Payload: job.Payload}}})
	if err != nil {
		log.Printf("job %d (%s) failed: %v", job.ID, job.Solver, err)
		if err := store.CompleteJob(ctx, job.ID, repo.JobFailed, ""); err != nil {
			log.Printf("job %d status update error: %v", job.ID, err)
		}
		return
	}
	env := res.Envelopes[0]
	body, err := json.Marshal(env)
	if err != nil {
		log.Printf("job %d envelope encoding error: %v", job.ID, err)
		_ = store.CompleteJob(ctx, job.ID, repo.JobFailed, "")
		return
	}
	if _, err := store.SaveEnvelope(ctx, job.ProjectID, job.Solver, env.ContentHash, body); err != nil {
		log.Printf("job %d store error: %v", job.ID, err)
		_ = store.CompleteJob(ctx, job.ID, repo.JobFailed, "")
		return
	}
	if err := store.CompleteJob(ctx, job.ID, repo.JobDone, env.ContentHash); err != nil {
		log.Printf("job %d status update error: %v", job.ID, err)
		return
	}
	log.Printf("job %d (%s) done, hash %s", job.ID, job.Solver, env.ContentHash)
}

func loadCatalog() *catalog.Catalog {
	if path := os.Getenv("CATALOG_XLSX"); path != "" {
		cat, err := catalog.LoadWorkbook(path)
		if err != nil {
			log.Fatalf("catalog workbook %s: %v", path, err)
		}
		return cat
	}
	return catalog.Builtin()
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

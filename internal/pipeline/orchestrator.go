package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/praveena-03/docinsight/internal/config"
	"github.com/praveena-03/docinsight/internal/extract"
	"github.com/praveena-03/docinsight/internal/monitor"
	"github.com/praveena-03/docinsight/internal/report"
)

// DocumentInput names one uploaded file on disk.
type DocumentInput struct {
	Path     string
	Filename string
}

// Orchestrator owns the task registry, the extraction coordinator and
// the report store, and runs single and collection processing.
type Orchestrator struct {
	cfg    config.Config
	worker *Worker
	tasks  *TaskStore
	store  *report.Store
	log    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOrchestrator(cfg config.Config, stats *monitor.ProcessingStats, log *slog.Logger) *Orchestrator {
	coordinator := extract.NewCoordinator(log)
	return &Orchestrator{
		cfg:    cfg,
		worker: NewWorker(coordinator, stats, log),
		tasks:  NewTaskStore(cfg.TaskTTL),
		store:  report.NewStore(cfg.OutputDir),
		log:    log,
	}
}

// Start launches the task store cleanup loop.
func (o *Orchestrator) Start(ctx context.Context) {
	cleanupCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-cleanupCtx.Done():
				return
			case <-ticker.C:
				o.tasks.Cleanup()
			}
		}
	}()
}

// Stop shuts down background work.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Tasks exposes the registry for the status endpoints.
func (o *Orchestrator) Tasks() *TaskStore {
	return o.tasks
}

// ProcessSingle runs the whole pipeline for one document and persists
// the report. The returned report is valid even when extraction failed;
// the failure lives in the result's error field, not in an error return.
func (o *Orchestrator) ProcessSingle(ctx context.Context, in DocumentInput, cfg *report.PersonaConfig) (report.Report, string) {
	now := time.Now()
	task := &Task{
		ID:        NewTaskID(in.Filename),
		Kind:      "single",
		Files:     []string{in.Filename},
		Status:    StatusProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}
	o.tasks.Put(task)

	dr := o.worker.ProcessDocument(in.Path, in.Filename, cfg)
	if dr.Result.Error != "" {
		task.AddError(dr.Result.Error)
	}

	rep := report.AssembleSingle(in.Filename, dr.Result, cfg)

	outName := report.SingleFilename(in.Filename, time.Now())
	if path, err := o.store.Save(rep, outName); err != nil {
		o.log.Error("report save failed", "task_id", task.ID, "error", err)
		task.AddError("save: " + err.Error())
	} else {
		task.SetOutput(path)
	}
	task.SetStatus(StatusCompleted)

	return rep, outName
}

// ProcessCollection extracts every document with bounded concurrency and
// merges the results into one report. Results are collected by supply
// index, so the emission order the 5-item truncation depends on matches
// the order documents were uploaded regardless of which worker finishes
// first.
func (o *Orchestrator) ProcessCollection(ctx context.Context, task *Task, inputs []DocumentInput, cfg *report.PersonaConfig) (report.Report, string) {
	task.SetStatus(StatusProcessing)

	results := make([]report.DocumentResult, len(inputs))
	sem := make(chan struct{}, o.cfg.MaxConcurrentExtract)
	var wg sync.WaitGroup

	for i, in := range inputs {
		if ctx.Err() != nil {
			results[i] = report.DocumentResult{Filename: in.Filename, Err: ctx.Err().Error()}
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, in DocumentInput) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = o.worker.ProcessDocument(in.Path, in.Filename, cfg)
		}(i, in)
	}
	wg.Wait()

	for _, r := range results {
		if r.Err != "" {
			task.AddError(r.Filename + ": " + r.Err)
		} else if r.Result != nil && r.Result.Error != "" {
			task.AddError(r.Filename + ": " + r.Result.Error)
		}
	}

	rep := report.AssembleCollection(results, cfg)

	outName := report.CollectionFilename(task.ID, time.Now())
	if path, err := o.store.Save(rep, outName); err != nil {
		o.log.Error("report save failed", "task_id", task.ID, "error", err)
		task.AddError("save: " + err.Error())
	} else {
		task.SetOutput(path)
	}
	task.SetStatus(StatusCompleted)

	return rep, outName
}

// NewCollectionTask registers a collection task for the given filenames.
func (o *Orchestrator) NewCollectionTask(filenames []string) *Task {
	seed := ""
	if len(filenames) > 0 {
		seed = filenames[0]
	}
	now := time.Now()
	task := &Task{
		ID:        NewTaskID(seed),
		Kind:      "collection",
		Files:     filenames,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	o.tasks.Put(task)
	return task
}

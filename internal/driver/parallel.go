package driver

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"buildtrim/internal/config"
)

// Options configures one run over a build tree.
type Options struct {
	Root          string
	Config        config.Config
	BlueprintOnly bool
	MakefileOnly  bool
	DisableBackup bool
	// Jobs bounds the number of files rewritten concurrently;
	// zero or negative means GOMAXPROCS.
	Jobs int
}

// Result is the outcome for a single file. Errors are per-file: one
// malformed document never affects the others.
type Result struct {
	Path     string
	Kind     Kind
	Restored bool
	Changed  bool
	Err      error
}

type fileTask struct {
	path string
	kind Kind
}

// discoverTasks lists the build files selected by the options, blueprints
// first, each list in sorted order.
func discoverTasks(opts Options) ([]fileTask, error) {
	var tasks []fileTask
	if !opts.MakefileOnly {
		files, err := DiscoverFiles(opts.Root, opts.Config.Patterns.Blueprint)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			tasks = append(tasks, fileTask{path: f, kind: KindBlueprint})
		}
	}
	if !opts.BlueprintOnly {
		files, err := DiscoverFiles(opts.Root, opts.Config.Patterns.Makefile)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			tasks = append(tasks, fileTask{path: f, kind: KindMakefile})
		}
	}
	return tasks, nil
}

// RemoveDev discovers the configured build files under opts.Root and
// rewrites each with the dev-removal policy. Files are processed in
// parallel; every tree is exclusively owned by the goroutine that parsed
// it, so no coordination is needed beyond the job limit.
func RemoveDev(ctx context.Context, opts Options) ([]Result, error) {
	tasks, err := discoverTasks(opts)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(tasks)))

	for i, task := range tasks {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = processFile(task, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// processFile rewrites one file. A pre-existing backup is restored first so
// repeated runs always start from the pristine tree; otherwise a backup is
// taken unless disabled.
func processFile(task fileTask, opts Options) Result {
	res := Result{Path: task.path, Kind: task.kind}
	suffix := opts.Config.Backup.Suffix

	restored, err := Restore(task.path, suffix)
	if err != nil {
		res.Err = err
		return res
	}
	res.Restored = restored
	if !restored && !opts.DisableBackup {
		if err := Backup(task.path, suffix); err != nil {
			res.Err = err
			return res
		}
	}

	data, err := os.ReadFile(task.path)
	if err != nil {
		res.Err = err
		return res
	}

	var out string
	switch task.kind {
	case KindBlueprint:
		out, err = RewriteBlueprint(string(data), opts.Config)
	case KindMakefile:
		out = RewriteMakefile(string(data))
	}
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", task.path, err)
		return res
	}
	if out == string(data) {
		return res
	}

	info, err := os.Stat(task.path)
	if err != nil {
		res.Err = err
		return res
	}
	if err := os.WriteFile(task.path, []byte(out), info.Mode().Perm()); err != nil {
		res.Err = err
		return res
	}
	res.Changed = true
	return res
}

// BackupAll takes backups of every discovered build file without rewriting.
func BackupAll(ctx context.Context, opts Options) ([]Result, error) {
	return forEachFile(ctx, opts, func(task fileTask) Result {
		res := Result{Path: task.path, Kind: task.kind}
		res.Err = Backup(task.path, opts.Config.Backup.Suffix)
		return res
	})
}

// RestoreAll restores every discovered build file from its backup, when one
// exists.
func RestoreAll(ctx context.Context, opts Options) ([]Result, error) {
	return forEachFile(ctx, opts, func(task fileTask) Result {
		res := Result{Path: task.path, Kind: task.kind}
		res.Restored, res.Err = Restore(task.path, opts.Config.Backup.Suffix)
		return res
	})
}

func forEachFile(ctx context.Context, opts Options, fn func(fileTask) Result) ([]Result, error) {
	tasks, err := discoverTasks(opts)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(tasks))
	for _, task := range tasks {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}
		results = append(results, fn(task))
	}
	return results, nil
}

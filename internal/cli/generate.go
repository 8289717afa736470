package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pyplant/cli/internal/builder"
	"github.com/pyplant/cli/internal/config"
	"github.com/pyplant/cli/internal/db"
	"github.com/pyplant/cli/internal/diagram"
	"github.com/pyplant/cli/internal/pymodel"
	"github.com/pyplant/cli/internal/repo"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the PlantUML diagram of the configured package",
		Long:  "Walk the configured Python package, resolve its class graph and write the PlantUML diagram.",
		RunE:  runGenerate,
	}

	cmd.Flags().String("package", "", "Package directory (defaults to the configured one)")
	cmd.Flags().String("module", "", "Root module name (defaults to the configured one)")
	cmd.Flags().StringP("output", "o", "", "Output file (defaults to the configured path)")
	cmd.Flags().Bool("save", false, "Record the run in the pyplant database")
	cmd.Flags().Bool("watch", false, "Keep watching the package and regenerate on changes")

	return cmd
}

// pipelineResult carries everything one generation produced.
type pipelineResult struct {
	Document  string
	Root      *pymodel.Package
	Relations []pymodel.Relationship
	Errs      []error
}

// runPipeline walks the configured package tree and renders the
// diagram.
func runPipeline(repoRoot string, cfg *config.Config) (*pipelineResult, error) {
	walker, err := builder.NewWalker()
	if err != nil {
		return nil, fmt.Errorf("failed to create walker: %w", err)
	}
	defer walker.Close()

	root, err := walker.Walk(filepath.Join(repoRoot, cfg.PackageDir), cfg.RootModule)
	if err != nil {
		return nil, err
	}
	document, relations, errs := diagram.Build(root)
	return &pipelineResult{Document: document, Root: root, Relations: relations, Errs: errs}, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	repoRoot, err := repo.FindRoot()
	if err != nil {
		return fmt.Errorf("failed to find repo root: %w", err)
	}
	pyplantDir := repo.PyplantDir(repoRoot)
	cfg, err := config.Load(pyplantDir)
	if err != nil {
		return fmt.Errorf("failed to load config (run \"pyplant init\" first): %w", err)
	}
	if packageDir, _ := cmd.Flags().GetString("package"); packageDir != "" {
		cfg.PackageDir = packageDir
	}
	if rootModule, _ := cmd.Flags().GetString("module"); rootModule != "" {
		cfg.RootModule = rootModule
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if outputPath == "" {
		outputPath = cfg.DefaultOutputPath()
	}
	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return err
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}

	generate := func() error {
		result, err := runPipeline(repoRoot, cfg)
		if err != nil {
			return err
		}
		absOutput := outputPath
		if !filepath.IsAbs(absOutput) {
			absOutput = filepath.Join(repoRoot, outputPath)
		}
		if err := os.MkdirAll(filepath.Dir(absOutput), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(absOutput, []byte(result.Document), 0644); err != nil {
			return fmt.Errorf("failed to write diagram: %w", err)
		}

		classCount := len(result.Root.AllClasses())
		cmd.Printf("%s Wrote %s (%d classes, %d relations)\n",
			successStyle.Render("✓"), outputPath, classCount, len(result.Relations))
		for _, resolveErr := range result.Errs {
			cmd.Printf("%s %v\n", warnStyle.Render("!"), resolveErr)
		}

		if save {
			if err := recordRun(pyplantDir, cfg, outputPath, classCount, result); err != nil {
				return err
			}
			cmd.Printf("%s Run recorded\n", successStyle.Render("✓"))
		}
		return nil
	}

	if err := generate(); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	cmd.Printf("%s Watching %s for changes (ctrl-c to stop)\n", infoStyle.Render("→"), cfg.PackageDir)
	return watchAndRegenerate(cmd, filepath.Join(repoRoot, cfg.PackageDir), generate)
}

func recordRun(pyplantDir string, cfg *config.Config, outputPath string, classCount int, result *pipelineResult) error {
	d, err := db.Open(db.DatabasePath(pyplantDir))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	store := db.NewStore(d)
	defer store.Close()

	messages := make([]string, len(result.Errs))
	for i, resolveErr := range result.Errs {
		messages[i] = resolveErr.Error()
	}
	return store.RecordRun(&db.Run{
		RootModule:    cfg.RootModule,
		PackageDir:    cfg.PackageDir,
		OutputPath:    outputPath,
		ClassCount:    classCount,
		RelationCount: len(result.Relations),
		Errors:        messages,
	})
}

// watchAndRegenerate watches the package directory recursively and
// reruns generate after events settle. Edits arrive in bursts, so a
// short debounce window batches them into one regeneration.
func watchAndRegenerate(cmd *cobra.Command, packageDir string, generate func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, packageDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", packageDir, err)
	}

	var mu sync.Mutex
	var timer *time.Timer
	flush := func() {
		if err := generate(); err != nil {
			cmd.Printf("%s %v\n", warnStyle.Render("!"), err)
		}
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				_ = addWatchRecursive(watcher, event.Name)
			} else if !strings.HasSuffix(event.Name, ".py") {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(200*time.Millisecond, flush)
			mu.Unlock()

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmd.Printf("%s watcher error: %v\n", warnStyle.Render("!"), watchErr)
		}
	}
}

// addWatchRecursive adds a directory and all its subdirectories to the watcher.
func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		name := info.Name()
		if strings.HasPrefix(name, ".") || name == "__pycache__" || name == "node_modules" || name == "venv" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pyplant/cli/internal/config"
	"github.com/pyplant/cli/internal/db"
	"github.com/pyplant/cli/internal/repo"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize pyplant in the current repository",
		Long:  "Initialize pyplant by selecting the documented package directory and setting up the run database.",
		RunE:  runInit,
	}

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	repoRoot, err := repo.FindRoot()
	if err != nil {
		return fmt.Errorf("failed to find repo root: %w", err)
	}

	cmd.Printf("%s Initializing pyplant in: %s\n", infoStyle.Render("→"), repoRoot)

	packageDirs, err := repo.DiscoverPackageDirs(repoRoot)
	if err != nil {
		return fmt.Errorf("failed to discover package directories: %w", err)
	}
	if len(packageDirs) == 0 {
		cmd.Println("No directories with Python sources found.")
		return nil
	}

	var options []huh.Option[string]
	for _, dir := range packageDirs {
		// Display with forward slashes for consistency (even on Windows)
		displayPath := strings.ReplaceAll(dir, string(filepath.Separator), "/")
		options = append(options, huh.NewOption(displayPath, dir))
	}

	var packageDir string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select the package directory to document").
				Description("The directory is walked recursively; its last path segment usually names the root package.").
				Options(options...).
				Value(&packageDir),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}
	if packageDir == "" {
		cmd.Println("No directory selected. Exiting.")
		return nil
	}

	rootModule := defaultRootModule(packageDir)
	moduleForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Root module").
				Description("Dotted name the documented tree is known by, e.g. acme.billing").
				Placeholder(rootModule).
				Value(&rootModule),
		),
	)
	if err := moduleForm.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}
	if rootModule == "" {
		rootModule = defaultRootModule(packageDir)
	}

	outputPath := ""
	outputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output path").
				Description("Where the diagram is written, relative to the repo root").
				Placeholder(rootModule + ".puml").
				Value(&outputPath),
		),
	)
	if err := outputForm.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	cfg := &config.Config{
		PackageDir: packageDir,
		RootModule: rootModule,
		OutputPath: outputPath,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	pyplantDir := repo.PyplantDir(repoRoot)
	if err := os.MkdirAll(pyplantDir, 0755); err != nil {
		return fmt.Errorf("failed to create .pyplant directory: %w", err)
	}
	if err := config.Save(cfg, pyplantDir); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	cmd.Printf("%s Configuration saved to: %s\n", successStyle.Render("✓"), config.ConfigPath(pyplantDir))

	dbPath := db.DatabasePath(pyplantDir)
	if err := db.Initialize(dbPath); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	cmd.Printf("%s Database initialized at: %s\n", successStyle.Render("✓"), dbPath)
	cmd.Printf("%s Run \"pyplant generate\" to render %s\n", infoStyle.Render("→"), cfg.DefaultOutputPath())

	return nil
}

// defaultRootModule derives a dotted module name from a repo-relative
// package path, e.g. "src/acme/billing" becomes "acme.billing" when a
// leading src segment is present.
func defaultRootModule(packageDir string) string {
	parts := strings.Split(filepath.ToSlash(packageDir), "/")
	if len(parts) > 1 && parts[0] == "src" {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}

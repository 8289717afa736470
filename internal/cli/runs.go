package cli

import (
	"fmt"

	"github.com/pyplant/cli/internal/db"
	"github.com/pyplant/cli/internal/repo"
	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded diagram runs",
		Long:  "List the diagram generations recorded with \"pyplant generate --save\", newest first.",
		RunE:  runRuns,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().Bool("errors", false, "Show the resolution errors of each run")

	return cmd
}

func runRuns(cmd *cobra.Command, args []string) error {
	repoRoot, err := repo.FindRoot()
	if err != nil {
		return fmt.Errorf("failed to find repo root: %w", err)
	}
	pyplantDir := repo.PyplantDir(repoRoot)

	d, err := db.Open(db.DatabasePath(pyplantDir))
	if err != nil {
		return fmt.Errorf("failed to open database (run \"pyplant init\" first): %w", err)
	}
	store := db.NewStore(d)
	defer store.Close()

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	showErrors, err := cmd.Flags().GetBool("errors")
	if err != nil {
		return err
	}

	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		marker := successStyle.Render("✓")
		if run.ErrorCount > 0 {
			marker = warnStyle.Render("!")
		}
		cmd.Printf("%s %s  %s  %s → %s  (%d classes, %d relations)\n",
			marker, run.CreatedAt, run.ID[:8], run.RootModule, run.OutputPath,
			run.ClassCount, run.RelationCount)
		if !showErrors {
			continue
		}
		messages, err := store.RunErrors(run.ID)
		if err != nil {
			return err
		}
		for _, message := range messages {
			cmd.Printf("    %s\n", message)
		}
	}
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pyplant/cli/internal/config"
	"github.com/pyplant/cli/internal/db"
	"github.com/pyplant/cli/internal/repo"
	"github.com/spf13/cobra"
)

// GenerateDiagramArgs is the input for the generateDiagram MCP tool.
type GenerateDiagramArgs struct {
	Output string `json:"output,omitempty"`
	Save   bool   `json:"save,omitempty"`
}

// ListClassesArgs is the input for the listClasses MCP tool.
type ListClassesArgs struct {
	Module string `json:"module,omitempty"`
}

func newMcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server",
		Long:  "Start the Model Context Protocol server so agents can generate and inspect diagrams.",
		RunE:  runMcp,
	}

	cmd.Flags().String("cwd", "", "Working directory (defaults to current directory)")

	return cmd
}

func runMcp(cmd *cobra.Command, args []string) error {
	cwd, err := cmd.Flags().GetString("cwd")
	if err != nil {
		return fmt.Errorf("failed to get cwd flag: %w", err)
	}
	if cwd != "" {
		info, err := os.Stat(cwd)
		if err != nil {
			return fmt.Errorf("failed to access cwd directory %q: %w", cwd, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("cwd path %q is not a directory", cwd)
		}
		if err := os.Chdir(cwd); err != nil {
			return fmt.Errorf("failed to change to directory %q: %w", cwd, err)
		}
	}

	repoRoot, err := repo.FindRoot()
	if err != nil {
		return fmt.Errorf("failed to find repo root: %w", err)
	}
	pyplantDir := repo.PyplantDir(repoRoot)

	// Redirect all logging to .pyplant/mcp.log so nothing leaks into
	// the stdio JSON-RPC transport.
	if err := initMCPLog(pyplantDir); err != nil {
		return fmt.Errorf("failed to initialize mcp log: %w", err)
	}

	cfg, err := config.Load(pyplantDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "pyplant",
		Version: Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pyplant.projectInfo",
		Description: "Get project information including repo root, documented package directory and root module",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, any, error) {
		info := map[string]interface{}{
			"repoRoot":   repoRoot,
			"packageDir": cfg.PackageDir,
			"rootModule": cfg.RootModule,
			"outputPath": cfg.DefaultOutputPath(),
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Text: fmt.Sprintf("Repo Root: %s\nPackage Dir: %s\nRoot Module: %s\nOutput: %s",
						repoRoot, cfg.PackageDir, cfg.RootModule, cfg.DefaultOutputPath()),
				},
			},
		}, info, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pyplant.generateDiagram",
		Description: "Walk the documented package, render the PlantUML diagram, write it to the output path and return it",
		InputSchema: mustSchema(GenerateDiagramArgs{}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GenerateDiagramArgs) (*mcp.CallToolResult, any, error) {
		result, err := runPipeline(repoRoot, cfg)
		if err != nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)},
				},
				IsError: true,
			}, nil, nil
		}

		outputPath := args.Output
		if outputPath == "" {
			outputPath = cfg.DefaultOutputPath()
		}
		absOutput := outputPath
		if !filepath.IsAbs(absOutput) {
			absOutput = filepath.Join(repoRoot, outputPath)
		}
		if err := os.MkdirAll(filepath.Dir(absOutput), 0755); err == nil {
			if err := os.WriteFile(absOutput, []byte(result.Document), 0644); err != nil {
				log.Printf("failed to write diagram %s: %v", absOutput, err)
			}
		}

		classCount := len(result.Root.AllClasses())
		if args.Save {
			if err := recordRun(pyplantDir, cfg, outputPath, classCount, result); err != nil {
				log.Printf("failed to record run: %v", err)
			}
		}

		var text strings.Builder
		fmt.Fprintf(&text, "Wrote %s (%d classes, %d relations)\n", outputPath, classCount, len(result.Relations))
		for _, resolveErr := range result.Errs {
			fmt.Fprintf(&text, "warning: %v\n", resolveErr)
		}
		text.WriteString("\n")
		text.WriteString(result.Document)

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: text.String()},
			},
		}, nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pyplant.listClasses",
		Description: "List the classes of the documented package with their attributes and methods",
		InputSchema: mustSchema(ListClassesArgs{}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ListClassesArgs) (*mcp.CallToolResult, any, error) {
		result, err := runPipeline(repoRoot, cfg)
		if err != nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)},
				},
				IsError: true,
			}, nil, nil
		}

		var text strings.Builder
		count := 0
		for _, class := range result.Root.AllClasses() {
			if args.Module != "" && !strings.HasPrefix(class.FullyQualifiedName, args.Module) {
				continue
			}
			count++
			fmt.Fprintf(&text, "%s (%d attributes, %d methods)\n",
				class.FullyQualifiedName, len(class.Attributes), len(class.Methods))
		}
		if count == 0 {
			text.WriteString("No classes found.")
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: text.String()},
			},
		}, nil, nil
	})

	// Touch the database early so a broken setup fails at startup, not
	// on the first save.
	if err := db.Initialize(db.DatabasePath(pyplantDir)); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	log.Printf("mcp server ready (package %s, root module %s)", cfg.PackageDir, cfg.RootModule)
	return server.Run(context.Background(), &mcp.StdioTransport{})
}

const mcpLogFileName = "mcp.log"

// initMCPLog opens (or creates) .pyplant/mcp.log and redirects the
// standard log package output there. The file is truncated on each
// startup so it never grows unbounded between runs.
func initMCPLog(pyplantDir string) error {
	if err := os.MkdirAll(pyplantDir, 0755); err != nil {
		return err
	}
	logPath := filepath.Join(pyplantDir, mcpLogFileName)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Printf("mcp server starting (log: %s)", logPath)
	return nil
}

// mustSchema builds a JSON Schema for the given args struct.
func mustSchema(v interface{}) json.RawMessage {
	data, _ := json.Marshal(buildSchema(v))
	return data
}

// buildSchema creates a minimal JSON Schema from the args struct.
func buildSchema(v interface{}) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
	props := schema["properties"].(map[string]interface{})

	switch v.(type) {
	case GenerateDiagramArgs:
		props["output"] = map[string]interface{}{
			"type":        "string",
			"description": "Output file path, relative to the repo root (default: the configured output path)",
		}
		props["save"] = map[string]interface{}{
			"type":        "boolean",
			"description": "Record the run in the pyplant database (default: false)",
			"default":     false,
		}
	case ListClassesArgs:
		props["module"] = map[string]interface{}{
			"type":        "string",
			"description": "Dotted name prefix to filter classes, e.g. acme.billing.invoice",
		}
	}

	return schema
}

package cli

import (
	"encoding/json"
	"testing"
)

func TestDefaultRootModule(t *testing.T) {
	cases := []struct {
		dir  string
		want string
	}{
		{"orchard", "orchard"},
		{"src/orchard", "orchard"},
		{"src/acme/billing", "acme.billing"},
		{"lib/acme", "lib.acme"},
	}
	for _, tc := range cases {
		if got := defaultRootModule(tc.dir); got != tc.want {
			t.Errorf("defaultRootModule(%q) = %q, want %q", tc.dir, got, tc.want)
		}
	}
}

func TestBuildSchemaKnowsEveryArgsStruct(t *testing.T) {
	for name, args := range map[string]interface{}{
		"generateDiagram": GenerateDiagramArgs{},
		"listClasses":     ListClassesArgs{},
	} {
		raw := mustSchema(args)
		var schema map[string]interface{}
		if err := json.Unmarshal(raw, &schema); err != nil {
			t.Fatalf("%s: schema is not valid JSON: %v", name, err)
		}
		props, ok := schema["properties"].(map[string]interface{})
		if !ok || len(props) == 0 {
			t.Errorf("%s: schema has no properties: %v", name, schema)
		}
	}
}

func TestRootCmdWiresSubcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"init", "generate", "runs", "mcp"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

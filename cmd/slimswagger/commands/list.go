package commands

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/mikejonesguy/SlimSwagger/internal/cliutil"
	"github.com/mikejonesguy/SlimSwagger/node"
	"github.com/mikejonesguy/SlimSwagger/slimmer"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"
)

// ListFlags contains flags for the list command
type ListFlags struct {
	Source   string
	Format   string
	Tags     bool
	Schemas  bool
	Insecure bool
	Verbose  bool
	LogFile  string
}

// OperationSummary describes one operation in list output.
type OperationSummary struct {
	ID     string   `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Method string   `json:"method"                yaml:"method"`
	Path   string   `json:"path"                  yaml:"path"`
	Tags   []string `json:"tags,omitempty"        yaml:"tags,omitempty"`
}

// ListOutput is the structured (json/yaml) form of the list command.
type ListOutput struct {
	Source     string             `json:"source"            yaml:"source"`
	Version    string             `json:"version,omitempty" yaml:"version,omitempty"`
	Operations []OperationSummary `json:"operations"        yaml:"operations"`
	Schemas    []string           `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// SetupListFlags creates and configures a FlagSet for the list command.
// Returns the FlagSet and a ListFlags struct with bound flag variables.
func SetupListFlags() (*pflag.FlagSet, *ListFlags) {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	fs.SortFlags = false
	flags := &ListFlags{}

	fs.StringVarP(&flags.Source, "source", "s", "", "source document: file path, http(s) URL, or - for stdin")
	fs.StringVarP(&flags.Format, "format", "f", FormatText, "output format: text, table, json, or yaml")
	fs.BoolVar(&flags.Tags, "tags", false, "qualify operationIds with their tags (text format)")
	fs.BoolVar(&flags.Schemas, "schemas", false, "also list schema ids")
	fs.BoolVar(&flags.Insecure, "insecure", false, "disable TLS certificate verification for https sources")
	fs.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	fs.StringVar(&flags.LogFile, "log-file", "", "write logs to a size-rotated file instead of stderr")

	fs.Usage = func() {
		out := os.Stderr
		cliutil.Writef(out, "Usage: slimswagger list [flags] [source]\n\n")
		cliutil.Writef(out, "List the operations (and optionally the schemas) of an OpenAPI/Swagger document.\n\n")
		cliutil.Writef(out, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(out, "\nExamples:\n")
		cliutil.Writef(out, "  slimswagger list swagger.json\n")
		cliutil.Writef(out, "  slimswagger list --tags --schemas openapi.yaml\n")
		cliutil.Writef(out, "  slimswagger list -f table https://petstore.swagger.io/v2/swagger.json\n")
		cliutil.Writef(out, "  slimswagger list -f json openapi.yaml > operations.json\n")
		cliutil.Writef(out, "\nText output is sorted by operationId; table, json and yaml keep document order.\n")
	}

	return fs, flags
}

// HandleList executes the list command with the provided arguments.
func HandleList(args []string) error {
	return runList(context.Background(), args, os.Stdout, os.Stderr)
}

func runList(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupListFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if err := resolveSource(fs, &flags.Source); err != nil {
		return err
	}

	logger, closeLog := NewLogger(stderr, LogOptions{File: flags.LogFile, Verbose: flags.Verbose})
	defer closeLog()

	parsed, err := loadSource(ctx, flags.Source, flags.Insecure, libraryLogger(logger))
	if err != nil {
		return err
	}

	switch flags.Format {
	case FormatText:
		writeIDList(stdout, parsed.Document, flags.Tags, flags.Schemas)
		return nil
	case FormatTable:
		writeOperationTable(stdout, parsed.Document, flags.Schemas)
		return nil
	}

	output := ListOutput{
		Source:     FormatSpecPath(flags.Source),
		Version:    parsed.Version,
		Operations: summarizeOperations(parsed.Document),
	}
	if flags.Schemas {
		output.Schemas = slimmer.ListSchemaIDs(parsed.Document)
	}
	return OutputStructured(stdout, output, flags.Format)
}

// summarizeOperations returns every operation of doc in document order.
func summarizeOperations(doc *node.Node) []OperationSummary {
	ops := slimmer.NewOperationIndex(doc).Operations()
	out := make([]OperationSummary, 0, len(ops))
	for _, op := range ops {
		out = append(out, OperationSummary{
			ID:     op.ID,
			Method: strings.ToUpper(op.Method),
			Path:   op.Path,
			Tags:   op.Tags,
		})
	}
	return out
}

// writeOperationTable renders operations (and schema ids when requested)
// as borderless tables.
func writeOperationTable(w io.Writer, doc *node.Node, withSchemas bool) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Operation ID", "Method", "Path", "Tags"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	for _, op := range summarizeOperations(doc) {
		table.Append([]string{op.ID, op.Method, op.Path, strings.Join(op.Tags, ", ")})
	}
	table.Render()

	if !withSchemas {
		return
	}
	cliutil.Writef(w, "\n")
	schemas := tablewriter.NewWriter(w)
	schemas.SetHeader([]string{"Schema"})
	schemas.SetBorder(false)
	schemas.SetCenterSeparator("")
	for _, id := range slimmer.ListSchemaIDs(doc) {
		schemas.Append([]string{id})
	}
	schemas.Render()
}

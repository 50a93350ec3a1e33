package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mikejonesguy/SlimSwagger/internal/cliutil"
	"github.com/mikejonesguy/SlimSwagger/node"
	"github.com/mikejonesguy/SlimSwagger/oaserrors"
	"github.com/mikejonesguy/SlimSwagger/selection"
	"github.com/mikejonesguy/SlimSwagger/slimmer"
	"github.com/spf13/pflag"
)

// SlimFlags contains flags for the slim command
type SlimFlags struct {
	Source     string
	Operations string
	Models     string
	Output     string
	Invert     bool
	List       bool
	ListAll    bool
	Tags       bool
	YAML       bool
	Insecure   bool
	Quiet      bool
	Verbose    bool
	LogFile    string
}

// SetupSlimFlags creates and configures a FlagSet for the slim command.
// Returns the FlagSet and a SlimFlags struct with bound flag variables.
func SetupSlimFlags() (*pflag.FlagSet, *SlimFlags) {
	fs := pflag.NewFlagSet("slim", pflag.ContinueOnError)
	fs.SortFlags = false
	flags := &SlimFlags{}

	fs.StringVarP(&flags.Source, "source", "s", "", "source document: file path, http(s) URL, or - for stdin")
	fs.StringVarP(&flags.Operations, "operations", "w", "", "file or URL listing operationIds to keep (one per line)")
	fs.StringVarP(&flags.Models, "models", "m", "", "file or URL listing extra schema ids to keep (or to drop with --invert)")
	fs.StringVarP(&flags.Output, "output", "o", "", "output file or directory (default: <source dir>/"+cliutil.DefaultOutputName+")")
	fs.BoolVar(&flags.Invert, "invert", false, "treat the operations list as a deny-list")
	fs.BoolVar(&flags.List, "list", false, "print the operationIds in the source and exit")
	fs.BoolVar(&flags.ListAll, "list-all", false, "print the operationIds and schema ids in the source and exit")
	fs.BoolVar(&flags.Tags, "tags", false, "qualify listed operationIds with their tags (tag.operationId)")
	fs.BoolVar(&flags.YAML, "yaml", false, "write YAML regardless of the output file extension")
	fs.BoolVar(&flags.Insecure, "insecure", false, "disable TLS certificate verification for https sources and lists")
	fs.BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress the results summary and warnings")
	fs.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	fs.StringVar(&flags.LogFile, "log-file", "", "write logs to a size-rotated file instead of stderr")

	fs.Usage = func() {
		out := os.Stderr
		cliutil.Writef(out, "Usage: slimswagger slim [flags] [source]\n\n")
		cliutil.Writef(out, "Reduce an OpenAPI/Swagger document to selected operations and the schemas they reference.\n")
		cliutil.Writef(out, "Without --operations the operationIds in the source are listed instead.\n\n")
		cliutil.Writef(out, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(out, "\nExamples:\n")
		cliutil.Writef(out, "  slimswagger slim -s swagger.json --list\n")
		cliutil.Writef(out, "  slimswagger slim -s https://petstore.swagger.io/v2/swagger.json -w ops.txt -o slim.json\n")
		cliutil.Writef(out, "  slimswagger slim -s openapi.yaml -w ops.txt -m models.txt -o slim.yaml\n")
		cliutil.Writef(out, "  slimswagger slim -s openapi.yaml -w deprecated.txt --invert\n")
		cliutil.Writef(out, "  cat openapi.yaml | slimswagger slim -s - -w ops.txt -o ./out/\n")
		cliutil.Writef(out, "\nOutput:\n")
		cliutil.Writef(out, "  .yaml and .yml outputs are written as YAML, anything else as JSON.\n")
		cliutil.Writef(out, "  Use --insecure to skip TLS certificate verification for self-signed certs.\n")
		cliutil.Writef(out, "  An output ending in a path separator is a directory; %s is written into it.\n", cliutil.DefaultOutputName)
		cliutil.Writef(out, "\nExit Codes:\n")
		cliutil.Writef(out, "  0    Slimmed document written (or ids listed)\n")
		cliutil.Writef(out, "  1    Invalid arguments, unreadable input, or write failure\n")
	}

	return fs, flags
}

// HandleSlim executes the slim command with the provided arguments.
func HandleSlim(args []string) error {
	return runSlim(context.Background(), args, os.Stdout, os.Stderr)
}

func runSlim(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupSlimFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := resolveSource(fs, &flags.Source); err != nil {
		return err
	}

	logger, closeLog := NewLogger(stderr, LogOptions{File: flags.LogFile, Verbose: flags.Verbose, Quiet: flags.Quiet})
	defer closeLog()
	libLogger := libraryLogger(logger)

	parsed, err := loadSource(ctx, flags.Source, flags.Insecure, libLogger)
	if err != nil {
		return err
	}

	if flags.List || flags.ListAll || flags.Operations == "" {
		writeIDList(stdout, parsed.Document, flags.Tags, flags.ListAll)
		return nil
	}

	operations, err := selection.ReadWithOptions(
		selection.WithFilePath(flags.Operations),
		selection.WithContext(ctx),
		selection.WithInsecureSkipVerify(flags.Insecure),
	)
	if err != nil {
		return fmt.Errorf("reading operations list: %w", err)
	}

	var models []string
	if flags.Models != "" {
		models, err = selection.ReadWithOptions(
			selection.WithFilePath(flags.Models),
			selection.WithContext(ctx),
			selection.WithInsecureSkipVerify(flags.Insecure),
		)
		if err != nil {
			if !errors.Is(err, oaserrors.ErrEmptySelection) {
				return fmt.Errorf("reading models list: %w", err)
			}
			logger.Warn("models list is empty, ignoring", "source", flags.Models)
		}
	}

	outputPath := cliutil.ResolveOutputPath(flags.Source, flags.Output)
	if flags.YAML && flags.Output == "" {
		outputPath = strings.TrimSuffix(outputPath, ".json") + ".yaml"
	}
	if err := cliutil.ValidateOutputPath(outputPath, flags.Source, flags.Operations, flags.Models); err != nil {
		return err
	}

	result, err := slimmer.SlimWithOptions(
		slimmer.WithParsed(parsed),
		slimmer.WithOperations(operations...),
		slimmer.WithModels(models...),
		slimmer.WithInvert(flags.Invert),
		slimmer.WithLogger(libLogger),
	)
	if err != nil {
		return fmt.Errorf("slimming %s: %w", FormatSpecPath(flags.Source), err)
	}

	for _, id := range result.UnknownOperations {
		logger.Warn("operationId not found in source", "operationId", id)
	}

	data, err := MarshalDocument(result.Document, flags.YAML || cliutil.IsYAMLPath(outputPath))
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	if err := cliutil.WriteOutput(outputPath, data); err != nil {
		return err
	}

	if !flags.Quiet {
		cliutil.Writef(stdout, "%s\n", result.Stats.Report(outputPath))
	}
	return nil
}

// resolveSource accepts the source either from -s or as the single
// positional argument.
func resolveSource(fs *pflag.FlagSet, source *string) error {
	switch {
	case *source == "" && fs.NArg() == 1:
		*source = fs.Arg(0)
	case fs.NArg() > 0 && (*source != "" || fs.NArg() > 1):
		fs.Usage()
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if *source == "" {
		fs.Usage()
		return fmt.Errorf("%s command requires a source document (-s)", fs.Name())
	}
	return nil
}

// writeIDList prints operationIds one per line, followed by the schema ids
// after a blank line when withSchemas is set.
func writeIDList(w io.Writer, doc *node.Node, qualifyByTag, withSchemas bool) {
	for _, id := range slimmer.ListOperationIDs(doc, qualifyByTag) {
		cliutil.Writef(w, "%s\n", id)
	}
	if !withSchemas {
		return
	}
	cliutil.Writef(w, "\n")
	for _, id := range slimmer.ListSchemaIDs(doc) {
		cliutil.Writef(w, "%s\n", id)
	}
}

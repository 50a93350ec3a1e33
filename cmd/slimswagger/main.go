package main

import (
	"fmt"
	"os"
	"strings"

	slimswagger "github.com/mikejonesguy/SlimSwagger"
	"github.com/mikejonesguy/SlimSwagger/cmd/slimswagger/commands"
)

// knownCommands lists the subcommands for typo suggestions.
var knownCommands = []string{"slim", "list", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "--version":
		fmt.Printf("slimswagger v%s\n", slimswagger.Version())
	case "help", "-h", "--help":
		printUsage()
	case "slim":
		exitOnError(commands.HandleSlim(os.Args[2:]))
	case "list":
		exitOnError(commands.HandleList(os.Args[2:]))
	case "mcp":
		exitOnError(commands.HandleMCP(os.Args[2:]))
	default:
		// Flags first means the classic single-command form:
		// slimswagger -s swagger.json -w ops.txt -o slim.json
		if strings.HasPrefix(command, "-") {
			exitOnError(commands.HandleSlim(os.Args[1:]))
			return
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when none
// is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, cmd := range knownCommands {
		if d := levenshtein(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`slimswagger - reduce an OpenAPI/Swagger document to selected operations

Usage:
  slimswagger <command> [options]
  slimswagger -s <source> -w <operations.txt> [-m <models.txt>] [-o <output>] [--invert]

Commands:
  slim        Slim a document to the listed operations and the schemas they reference
  list        List the operationIds (and schema ids) of a document
  mcp         Serve the slim and list tools over MCP on stdio
  version     Show version information
  help        Show this help message

Examples:
  slimswagger -s ./swagger.json --list
  slimswagger -s https://petstore.swagger.io/v2/swagger.json -w ./ops.txt -o ./slim.json
  slimswagger slim -s openapi.yaml -w ops.txt -m models.txt -o slim.yaml
  slimswagger list -f table openapi.yaml

Run 'slimswagger <command> --help' for more information on a command.`)
}

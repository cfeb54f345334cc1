// Command scout is the research pipeline CLI.
//
// Usage:
//
//	scout                   Show help
//	scout serve             Serve the MCP tool surface on stdio
//	scout run <query>       Run one research task and print the results
//	scout version           Print the version
package main

import (
	"fmt"
	"os"
)

const version = "1.0.0"

const usage = `scout: research & OSINT pipeline

Usage:
  scout <command> [flags]

Commands:
  serve       Serve the MCP tool surface on stdio
  run         Run one research task and print the results
  version     Print the version

Run 'scout <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "serve":
		runServe()
	case "run":
		runResearch()
	case "version":
		fmt.Println("scout " + version)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "scout: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

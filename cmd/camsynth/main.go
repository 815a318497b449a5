// camsynth is a CLI for analyzing, validating and smoothing camera paths.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "analyze":
		err = cmdAnalyze(args)
	case "validate":
		err = cmdValidate(args)
	case "process", "run":
		err = cmdProcess(args)
	case "batch":
		err = cmdBatch(args)
	case "plot":
		err = cmdPlot(args)
	case "frame":
		err = cmdFrame(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func printUsage() {
	fmt.Println(`camsynth - camera path synthesis

Usage:
  camsynth <command> [options]

Commands:
  analyze <request.yaml>               Show camera constraints for the object
  validate <request.yaml>              Validate the commands without processing
  process [-o result.yaml] <request>   Smooth and sample the path
  batch [-out dir] <request>...        Process many requests in parallel
  plot [-out dir] <request.yaml>       Render top and side previews to PNG
  frame [-n 4] <request> <out.yaml>    Write an orbit tour around the object
  config [-save path]                  Print or save the effective config

Common options:
  -config <file>      Config file (default ./config.yaml or user config dir)
  -debug              Debug logging
  -sample-rate <hz>   Path samples per second
  -workers <n>        Parallel workers for batch

Examples:
  camsynth analyze scene.yaml
  camsynth process -o result.yaml scene.yaml
  camsynth batch -workers 8 -out results requests/*.yaml
  camsynth plot -out plots scene.yaml`)
}

/*

A simple CLI app to parse a network demo and print summary information
about it as JSON, in the manner of screp's CLI.

*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gorep/qdemo/parser"
	"github.com/gorep/qdemo/plugin"
	"github.com/gorep/qdemo/protocol"
	"github.com/gorep/qdemo/qdemo"
)

const (
	appName    = "qdemoinfo"
	appVersion = "v0.1.0"
)

const (
	ExitCodeMissingArguments    = 1
	ExitCodeUnknownExtension    = 2
	ExitCodeFailedToReadFile    = 3
	ExitCodeFailedToParseDemo   = 4
	ExitCodeFailedToCreateOutfile = 5
)

var (
	version  = flag.Bool("version", false, "print version info and exit")
	cmds     = flag.Bool("cmds", false, "print server command log")
	frags    = flag.Bool("frags", false, "print obituary (frag) events")
	chat     = flag.Bool("chat", true, "print chat events")
	outFile  = flag.String("outfile", "", "optional output file name")
	indent   = flag.Bool("indent", true, "use indentation when formatting output")
	protoArg = flag.String("proto", "", "override protocol version (dm3, dm48, dm66, dm68, dm73, dm90); default is derived from the file extension")
)

func main() {
	flag.Parse()

	if *version {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(ExitCodeMissingArguments)
	}

	fileName := args[0]

	ver, ok := resolveVersion(fileName)
	if !ok {
		fmt.Printf("Could not determine protocol version for %q; use -proto\n", fileName)
		os.Exit(ExitCodeUnknownExtension)
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		fmt.Printf("Failed to read demo: %v\n", err)
		os.Exit(ExitCodeFailedToReadFile)
	}

	summary := &summaryPlugin{}
	ctx := qdemo.NewContext()
	ctx.MessageFunc = func(level parser.MessageLevel, msg string) {
		if level == parser.LevelError || level == parser.LevelWarning {
			fmt.Fprintf(os.Stderr, "%s: %s\n", level, msg)
		}
	}

	input := qdemo.Input{FileName: fileName, Data: data, Version: ver}
	codes := ctx.ParseDemos([]qdemo.Input{input}, []plugin.Plugin{summary})
	if codes[0] != qdemo.ErrorCodeNone {
		fmt.Printf("Failed to parse demo: %v\n", codes[0])
		os.Exit(ExitCodeFailedToParseDemo)
	}

	if !*cmds {
		summary.Commands = nil
	}
	if !*chat {
		summary.ChatLines = nil
	}
	if !*frags {
		summary.Frags = nil
	}

	destination := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fmt.Printf("Failed to create output file: %v\n", err)
			os.Exit(ExitCodeFailedToCreateOutfile)
		}
		defer f.Close()
		destination = f
	}

	enc := json.NewEncoder(destination)
	if *indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(summary); err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
	}
}

// resolveVersion honors -proto if given, else derives the version from the
// file's extension via protocol.ExtensionVersion.
func resolveVersion(fileName string) (*protocol.Version, bool) {
	if *protoArg != "" {
		for _, v := range protocol.Versions {
			if strings.EqualFold(v.Name, *protoArg) {
				return v, true
			}
		}
		return nil, false
	}
	return protocol.ExtensionVersion(filepath.Ext(fileName))
}

func printVersion() {
	fmt.Println(appName, "version:", appVersion)
	fmt.Println("Platform:", runtime.GOOS, runtime.GOARCH)
	fmt.Println("Built with:", runtime.Version())
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Printf("\t%s [FLAGS] demofile\n", os.Args[0])
	fmt.Println("\tRun with '-h' to see a list of available flags.")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	remap "github.com/remapd/remap"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		checkCmd(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "remap: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  remap check -schema <schema.yaml> -input <data.json|data.yaml> [-many] [-unknown error|strip]

check loads the input document against the schema description and reports
every field error; exit status 1 means the input did not load.`)
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	schemaPath := fs.String("schema", "", "path to the YAML schema description")
	inputPath := fs.String("input", "", "path to the input document (.json or .yaml)")
	many := fs.Bool("many", false, "treat the input as a list of objects")
	unknown := fs.String("unknown", "strip", "unknown-field policy: strip or error")
	_ = fs.Parse(args)

	if *schemaPath == "" || *inputPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	specBytes, err := os.ReadFile(*schemaPath)
	if err != nil {
		fatalf("read schema: %v", err)
	}
	schema, err := remap.CompileYAML(specBytes)
	if err != nil {
		fatalf("compile schema: %v", err)
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		fatalf("read input: %v", err)
	}
	var src remap.Source
	switch strings.ToLower(filepath.Ext(*inputPath)) {
	case ".yaml", ".yml":
		src = remap.YAMLBytes(data)
	default:
		src = remap.JSONBytes(data)
	}

	opt := remap.Opt{Many: *many}
	switch *unknown {
	case "error":
		opt.Unknown = remap.UnknownError
	case "strip":
		opt.Unknown = remap.UnknownStrip
	default:
		fatalf("invalid -unknown value %q", *unknown)
	}

	_, err = remap.LoadFrom(context.Background(), schema, src, opt)
	if err == nil {
		fmt.Println("ok")
		return
	}
	if tree, ok := remap.AsTree(err); ok {
		report(tree.Flatten())
		os.Exit(1)
	}
	if idx, ok := remap.AsIndexed(err); ok {
		report(idx.Flatten())
		os.Exit(1)
	}
	fatalf("%v", err)
}

func report(ff []remap.FieldError) {
	for _, fe := range ff {
		fmt.Fprintf(os.Stderr, "%s: %s\n", fe.Path, fe.Reason)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "remap: "+format+"\n", args...)
	os.Exit(1)
}

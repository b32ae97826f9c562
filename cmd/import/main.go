// Command import converts a map document between JSON, YAML and
// MessagePack.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"textmapper/core"
	"textmapper/importer"
)

func main() {
	var (
		inputFile = flag.String("i", "", "Input file path")
		format    = flag.String("f", "", "Input format (json, yaml, messagepack) - detected from the extension or content if not specified")
		to        = flag.String("to", "json", "Output format: json, yaml, msgpack")
		output    = flag.String("o", "", "Output file path (default: stdout)")
	)

	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required (-i)\n")
		flag.Usage()
		os.Exit(1)
	}

	content, err := os.ReadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	registry := importer.NewImporterRegistry()
	var doc *core.Document
	if *format != "" {
		doc, err = registry.ImportWithFormat(content, *format)
	} else {
		doc, err = registry.ImportFile(*inputFile, content)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing document: %v\n", err)
		os.Exit(1)
	}

	data, err := encode(doc, *to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding document: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully converted document to %s\n", *output)
		return
	}
	os.Stdout.Write(data)
}

func encode(doc *core.Document, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(doc)
	case "msgpack", "messagepack":
		return msgpack.Marshal(doc)
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

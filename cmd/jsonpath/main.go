// Package main implements a command-line utility that extracts data from a
// JSON (or, with --yaml, YAML) body piped into it, per RFC 9535.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/urfave/cli/v2"

	"github.com/padparadscha/jsonpath"
	"github.com/padparadscha/jsonpath/jsonval"
)

func main() {
	app := &cli.App{
		Name:      "jsonpath",
		Usage:     "extract data from JSON or YAML according to RFC 9535",
		UsageText: "jsonpath [--yaml] [--paths] [--strict] QUERY",
		Version:   gitrev(),
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yaml", Usage: "read stdin as YAML instead of JSON"},
			&cli.BoolFlag{Name: "paths", Usage: "print each match's normalized path alongside its value"},
			&cli.BoolFlag{Name: "strict", Usage: "reject non-standard extensions (#, ~, ~?)"},
		},
		Action: run,
		Args:   true,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func gitrev() string {
	version := "(git revision unavailable)"
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, kv := range bi.Settings {
			if kv.Key == "vcs.revision" {
				version = kv.Value
			}
		}
	}
	return version
}

func run(ctx *cli.Context) error {
	query := ctx.Args().First()
	if query == "" {
		cli.ShowAppHelpAndExit(ctx, 1)
	}

	engine := jsonpath.New(jsonpath.WithStrict(ctx.Bool("strict")))

	path, err := engine.Compile(query)
	if err != nil {
		return err
	}

	root, err := readInput(os.Stdin, ctx.Bool("yaml"))
	if err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}

	var result jsonval.Value
	if ctx.Bool("paths") {
		located := path.SelectLocated(root)
		arr := make(jsonval.Array, len(located))
		for i, l := range located {
			obj := jsonval.NewObject(2)
			obj.Set("path", jsonval.String(l.Path.String()))
			obj.Set("value", l.Value)
			arr[i] = obj
		}
		result = arr
	} else {
		values := path.Select(root)
		arr := make(jsonval.Array, len(values))
		copy(arr, values)
		result = arr
	}

	out, err := jsonval.Encode(result)
	if err != nil {
		return fmt.Errorf("could not marshal results: %w", err)
	}

	fmt.Printf("%s\n", out) //nolint:forbidigo
	return nil
}

func readInput(r io.Reader, yamlInput bool) (jsonval.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read stdin: %w", err)
	}
	if yamlInput {
		return jsonval.DecodeYAML(data)
	}
	return jsonval.Decode(data)
}

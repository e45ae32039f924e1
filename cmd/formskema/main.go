package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/internal/config"
	"github.com/reoring/formskema/internal/logging"
	"github.com/reoring/formskema/internal/signup"
	js "github.com/reoring/formskema/jsonschema"
)

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "validate":
		return validateCmd(args[1:], stdin, stdout, stderr)
	case "schema":
		return schemaCmd(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "formskema CLI\n\nUsage:\n  formskema validate [-format json|yaml] [-fail-fast] [-max-depth N] [-max-bytes N] [-env FILE] [FILE|-]\n  formskema schema [-check]\n\nNotes:\n  - validate checks a sign-up submission and prints the normalized value, or the errors by field path.\n  - Settings are read from FORMSKEMA_* environment variables and .env; flags override them.")
}

func validateCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		format   string
		envFile  string
		failFast bool
		maxDepth int
		maxBytes int64
	)
	fs.StringVar(&format, "format", "", "input format: json or yaml (default: from file extension, else json)")
	fs.StringVar(&envFile, "env", "", "dotenv file to read settings from (default .env)")
	fs.BoolVar(&failFast, "fail-fast", false, "stop at the first failing field")
	fs.IntVar(&maxDepth, "max-depth", -1, "maximum nesting depth (0 disables)")
	fs.Int64Var(&maxBytes, "max-bytes", -1, "maximum input size in bytes (0 disables)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	var dotenv []string
	if envFile != "" {
		dotenv = append(dotenv, envFile)
	}
	cfg, err := config.Load(dotenv...)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitUsage
	}
	logger, closeLog, err := logging.Setup(cfg.Logging())
	if err != nil {
		fmt.Fprintf(stderr, "logging: %v\n", err)
		return exitUsage
	}
	defer func() { _ = closeLog() }()

	opt := cfg.ParseOpt()
	if failFast {
		opt.FailFast = true
	}
	if maxDepth >= 0 {
		opt.MaxDepth = maxDepth
	}
	if maxBytes >= 0 {
		opt.MaxBytes = maxBytes
	}
	opt.OnWarn = func(it formskema.Issue) {
		logger.Warn("input warning", "code", it.Code, "path", it.Path, "message", it.Message)
	}

	name := fs.Arg(0)
	data, err := readInput(name, stdin, opt.MaxBytes)
	if err != nil {
		fmt.Fprintf(stderr, "read input: %v\n", err)
		return exitUsage
	}
	src, err := sourceFor(format, name, data)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	schema := signup.Typed(signup.NewSchema())
	start := time.Now()
	res := formskema.ValidateFrom(context.Background(), schema, src, opt)
	logger.Info("validated",
		"input", displayName(name),
		"ok", res.IsOk(),
		"failing_paths", res.Errors().Len(),
		"elapsed", time.Since(start),
	)

	if v, ok := res.Value(); ok {
		if err := writeJSON(stdout, v); err != nil {
			fmt.Fprintf(stderr, "write output: %v\n", err)
			return exitUsage
		}
		return exitOK
	}
	errs := res.Errors()
	for _, p := range errs.Paths() {
		for _, it := range errs.Issues(p) {
			logger.Debug("issue", "path", p, "code", it.Code, "kind", it.Kind().String(), "message", it.Message)
		}
	}
	if err := writeJSON(stdout, map[string]any{"errors": errs}); err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return exitUsage
	}
	return exitInvalid
}

func schemaCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var check bool
	fs.BoolVar(&check, "check", false, "compile the exported schema with a JSON Schema validator")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	s, err := signup.NewSchema().JSONSchema()
	if err != nil {
		fmt.Fprintf(stderr, "export: %v\n", err)
		return exitInvalid
	}
	s.Dialect = js.Draft
	s.Title = "sign-up form"
	if check {
		if _, err := js.Compile(s); err != nil {
			fmt.Fprintf(stderr, "check: %v\n", err)
			return exitInvalid
		}
		slog.Debug("schema compiled")
	}
	if err := writeJSON(stdout, s); err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return exitUsage
	}
	return exitOK
}

// readInput reads at most max+1 bytes when max > 0, leaving the size check to
// the source.
func readInput(name string, stdin io.Reader, max int64) ([]byte, error) {
	r := stdin
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer f.Close()
		r = f
	}
	if max > 0 {
		r = io.LimitReader(r, max+1)
	}
	return io.ReadAll(r)
}

func sourceFor(format, name string, data []byte) (formskema.Source, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}
	switch strings.ToLower(format) {
	case "json":
		return formskema.JSONBytes(data), nil
	case "yaml", "yml":
		return formskema.YAMLBytes(data), nil
	default:
		return nil, errors.New("unknown format " + format + " (want json or yaml)")
	}
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "stdin"
	}
	return name
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

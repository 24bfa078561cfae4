package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/pkg/sass"
)

// Exit codes (spec §6.2).
const (
	ExitOK          = 0
	ExitUsage       = 64
	ExitCompileFail = 65
	ExitIOFail      = 66
)

// Version is the CLI's reported version, set at build time via
// -ldflags "-X github.com/go-sass/sass/internal/cli.Version=...".
var Version = "dev"

type flags struct {
	stdin          bool
	indented       bool
	loadPaths      []string
	style          string
	charset        bool
	errorCSS       bool
	update         bool
	watch          bool
	sourceMap      bool
	sourceMapURLs  string
	embedSources   bool
	embedSourceMap bool
	stopOnError    bool
	interactive    bool
	color          bool
	unicode        bool
	quiet          bool
	trace          bool
}

// NewRootCommand builds the sass CLI's root cobra.Command (spec §6.2).
// The returned *int holds the process exit code once Execute has run; the
// caller passes it to os.Exit. cobra's own error return is reserved for
// usage errors.
func NewRootCommand() (*cobra.Command, *int) {
	f := &flags{charset: true, errorCSS: true, color: true, unicode: true, style: "expanded"}
	exitCode := ExitOK

	cmd := &cobra.Command{
		Use:     "sass [options] <input>[:<output>]...",
		Short:   "Compile Sass (SCSS or the indented syntax) to CSS",
		Version: Version,
		RunE: func(_ *cobra.Command, args []string) error {
			code, err := run(args, f)
			exitCode = code
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.Flags().BoolVar(&f.stdin, "stdin", false, "read the source from standard input")
	cmd.Flags().BoolVar(&f.indented, "indented", false, "force the indented syntax")
	cmd.Flags().StringArrayVarP(&f.loadPaths, "load-path", "I", nil, "additional import search path (repeatable)")
	cmd.Flags().StringVar(&f.style, "style", "expanded", "output style: expanded|compressed")
	cmd.Flags().BoolVar(&f.charset, "charset", true, "emit @charset/BOM for non-ASCII output")
	cmd.Flags().BoolVar(&f.errorCSS, "error-css", true, "write errors as a CSS comment on failure")
	cmd.Flags().BoolVar(&f.update, "update", false, "skip compilation if the destination is newer than its sources")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "recompile on change (out of scope; accepted for compatibility)")
	cmd.Flags().BoolVar(&f.sourceMap, "source-map", false, "generate a source map")
	cmd.Flags().StringVar(&f.sourceMapURLs, "source-map-urls", "relative", "source map URL style: relative|absolute")
	cmd.Flags().BoolVar(&f.embedSources, "embed-sources", false, "embed source contents in the source map")
	cmd.Flags().BoolVar(&f.embedSourceMap, "embed-source-map", false, "embed the source map as a data: URL comment")
	cmd.Flags().BoolVar(&f.stopOnError, "stop-on-error", false, "stop compiling further inputs after the first failure")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "REPL (out of scope)")
	cmd.Flags().BoolVarP(&f.color, "color", "c", true, "colorize terminal output")
	cmd.Flags().BoolVar(&f.unicode, "unicode", true, "allow non-ASCII characters in terminal output")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "suppress warnings")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "print a full Sass stack trace on error")

	return cmd, &exitCode
}

type target struct {
	input      string
	output     string
	useStdin   bool
	writeStdout bool
}

func parseTargets(args []string, stdin bool) ([]target, error) {
	if stdin {
		if len(args) > 1 {
			return nil, fmt.Errorf("--stdin allows at most one positional argument (the output)")
		}
		t := target{useStdin: true, writeStdout: true}
		if len(args) == 1 {
			t.output = args[0]
			t.writeStdout = false
		}
		return []target{t}, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no input given (pass a file, a dir:dir pair, or --stdin)")
	}
	targets := make([]target, 0, len(args))
	for _, arg := range args {
		in, out, hasOut := strings.Cut(arg, ":")
		if !hasOut {
			targets = append(targets, target{input: in, writeStdout: true})
			continue
		}
		if isDir(in) {
			expanded, err := expandDirPair(in, out)
			if err != nil {
				return nil, err
			}
			targets = append(targets, expanded...)
			continue
		}
		targets = append(targets, target{input: in, output: out})
	}
	return targets, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func expandDirPair(inDir, outDir string) ([]target, error) {
	var targets []target
	err := filepath.WalkDir(inDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		ext := filepath.Ext(path)
		if ext != ".scss" && ext != ".sass" {
			return nil
		}
		if strings.HasPrefix(filepath.Base(path), "_") {
			return nil // partials are never compiled on their own
		}
		rel, err := filepath.Rel(inDir, path)
		if err != nil {
			return err
		}
		out := filepath.Join(outDir, strings.TrimSuffix(rel, ext)+".css")
		targets = append(targets, target{input: path, output: out})
		return nil
	})
	return targets, err
}

func run(args []string, f *flags) (int, error) {
	var style sass.Style
	switch f.style {
	case "expanded":
		style = sass.Expanded
	case "compressed":
		style = sass.Compressed
	default:
		return ExitUsage, fmt.Errorf("invalid --style %q (want expanded or compressed)", f.style)
	}
	if f.interactive {
		return ExitUsage, fmt.Errorf("--interactive is not supported by this build")
	}

	targets, err := parseTargets(args, f.stdin)
	if err != nil {
		return ExitUsage, err
	}

	worst := ExitOK
	for _, t := range targets {
		code, err := runTarget(t, f, style)
		if code > worst {
			worst = code
		}
		if err != nil && !f.quiet {
			fmt.Fprintln(os.Stderr, err)
		}
		if code != ExitOK && f.stopOnError {
			break
		}
	}
	return worst, nil
}

func runTarget(t target, f *flags, style sass.Style) (int, error) {
	if f.update && t.output != "" && !t.useStdin && !isStale(t.input, t.output) {
		return ExitOK, nil
	}

	opts := sass.Options{
		LoadPaths:        f.loadPaths,
		Style:            style,
		SourceMapEnabled: f.sourceMap,
		EmbedSources:     f.embedSources,
		Charset:          f.charset,
		Logger:           &cliLogger{quiet: f.quiet},
	}
	if f.indented {
		opts.Syntax = sass.SyntaxIndented
	}

	var (
		result *sass.CompileResult
		srcErr error
		source string
		url    string
	)
	if t.useStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return ExitIOFail, fmt.Errorf("sass: reading stdin: %w", err)
		}
		source, url = string(data), "stdin"
		result, srcErr = sass.CompileString(source, url, opts)
	} else {
		data, err := os.ReadFile(t.input)
		if err != nil {
			return ExitIOFail, fmt.Errorf("sass: %w", err)
		}
		source, url = string(data), t.input
		result, srcErr = sass.CompileFile(t.input, opts)
	}

	if srcErr != nil {
		return handleCompileError(t, srcErr, source, url, f)
	}

	css := result.CSS
	if f.sourceMap && result.SourceMap != "" {
		css = appendSourceMapComment(css, t, result.SourceMap, f)
	}
	if err := writeOutput(t, css); err != nil {
		return ExitIOFail, err
	}
	return ExitOK, nil
}

func handleCompileError(t target, srcErr error, source, url string, f *flags) (int, error) {
	var sassErr *sass.Error
	if !errors.As(srcErr, &sassErr) {
		return ExitIOFail, srcErr
	}

	src := &logger.Source{KeyPath: url, PrettyPath: url, Contents: source}
	report := reportError(src, sassErr, f.color)

	if f.errorCSS && t.output != "" {
		_ = writeOutput(t, errorCSS(sassErr))
	}
	return ExitCompileFail, errors.New(strings.TrimRight(report, "\n"))
}

func appendSourceMapComment(css string, t target, mapJSON string, f *flags) string {
	if f.embedSourceMap {
		encoded := "data:application/json;charset=utf-8;base64," + base64Encode(mapJSON)
		return css + "\n/*# sourceMappingURL=" + encoded + " */\n"
	}
	mapPath := t.output + ".map"
	if t.output == "" {
		mapPath = "stdout.css.map"
	}
	ref := filepath.Base(mapPath)
	if f.sourceMapURLs == "absolute" {
		if abs, err := filepath.Abs(mapPath); err == nil {
			ref = abs
		}
	}
	if t.output != "" {
		_ = os.WriteFile(mapPath, []byte(mapJSON), 0o644)
	}
	return css + "\n/*# sourceMappingURL=" + ref + " */\n"
}

func writeOutput(t target, content string) error {
	if t.writeStdout || t.output == "" {
		_, err := io.WriteString(os.Stdout, content)
		return err
	}
	if dir := filepath.Dir(t.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("sass: %w", err)
		}
	}
	if err := os.WriteFile(t.output, []byte(content), 0o644); err != nil {
		return fmt.Errorf("sass: %w", err)
	}
	return nil
}

func isStale(input, output string) bool {
	in, err := os.Stat(input)
	if err != nil {
		return true
	}
	out, err := os.Stat(output)
	if err != nil {
		return true
	}
	return in.ModTime().After(out.ModTime())
}

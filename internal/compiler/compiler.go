// Package compiler shells out to a LaTeX engine to produce a PDF. It
// never parses or typesets anything itself: it builds the command line,
// bounds it with a context deadline, and turns the outcome plus the
// engine's .log file into a structured result.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"latexmcp/internal/config"
	"latexmcp/internal/texfile"
)

// DefaultTimeout bounds a compilation when the request does not.
const DefaultTimeout = 30 * time.Second

// Request describes one compilation.
type Request struct {
	TexPath   string
	OutputDir string        // empty: same directory as TexPath
	Engine    string        // empty: pdflatex
	Timeout   time.Duration // zero: DefaultTimeout
}

// Result is the outcome of one compilation. Runtime failures (non-zero
// exit, timeout, missing binary) are reported here, not as errors.
type Result struct {
	Success      bool
	OutputPath   string // produced PDF, when Success
	ErrorMessage string
	Log          string     // raw .log content, when readable
	LogErrors    []LogError // "!"-prefixed errors extracted from the log
	TimedOut     bool
	Duration     time.Duration
}

// Compile runs a LaTeX engine over req.TexPath. The returned error
// covers request validation only; anything that happens after the
// process starts lands in the Result.
func Compile(ctx context.Context, req Request) (Result, error) {
	if err := texfile.Validate(req.TexPath, texfile.SourceExtensions); err != nil {
		return Result{}, err
	}

	engine := req.Engine
	if engine == "" {
		engine = config.SupportedEngines[0]
	}
	if !config.IsSupportedEngine(engine) {
		return Result{}, fmt.Errorf("unsupported engine %q (supported: %v)",
			engine, config.SupportedEngines)
	}

	outputDir := texfile.ResolveOutputDir(req.TexPath, req.OutputDir)
	if err := texfile.EnsureDir(outputDir); err != nil {
		return Result{}, err
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stem := texfile.Stem(req.TexPath)
	pdfPath := filepath.Join(outputDir, stem+".pdf")

	cmd := exec.CommandContext(cctx, engine,
		"-interaction=nonstopmode",
		"-output-directory", outputDir,
		req.TexPath,
	)
	cmd.Dir = outputDir

	start := time.Now()
	output, runErr := cmd.CombinedOutput()
	res := Result{Duration: time.Since(start)}

	// The engine writes its real diagnostics to <stem>.log; read it
	// regardless of the exit status.
	res.Log = readLog(filepath.Join(outputDir, stem+".log"))
	res.LogErrors = ParseLog(res.Log)

	if errors.Is(cctx.Err(), context.DeadlineExceeded) {
		res.TimedOut = true
		res.ErrorMessage = fmt.Sprintf("%s timed out after %s", engine, timeout)
		return res, nil
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ErrorMessage = fmt.Sprintf("%s failed with exit code %d", engine, exitErr.ExitCode())
		} else {
			res.ErrorMessage = fmt.Sprintf("failed to run %s: %v", engine, runErr)
		}
		if len(res.LogErrors) == 0 && len(output) > 0 {
			res.ErrorMessage += "\noutput: " + truncate(string(output), 2000)
		}
		return res, nil
	}

	if _, err := os.Stat(pdfPath); err != nil {
		res.ErrorMessage = fmt.Sprintf("%s exited cleanly but produced no PDF at %s", engine, pdfPath)
		return res, nil
	}

	res.Success = true
	res.OutputPath = pdfPath
	return res, nil
}

func readLog(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	// Engine logs are frequently not valid UTF-8.
	text, err := texfile.DecodeText(data)
	if err != nil {
		return ""
	}
	return text
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"

	"github.com/edslab/mineraliz/internal/classify"
	"github.com/edslab/mineraliz/internal/flat"
	"github.com/edslab/mineraliz/internal/rulefile"
	"github.com/edslab/mineraliz/internal/table"
	"github.com/edslab/mineraliz/internal/ui/layout"
	"github.com/edslab/mineraliz/internal/ui/report"
)

// stdio names standard input or output on the command line.
const stdio = "-"

// readFrame parses the CSV at path, or stdin when path is empty or "-".
func readFrame(stdin io.Reader, path string) (*table.Frame, error) {
	if path == "" || path == stdio {
		return table.ReadCSV(stdin, table.Options{})
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	frame, err := table.ReadCSV(f, table.Options{Delimiter: table.DelimiterFor(path)})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return frame, nil
}

// sourceName is the input name recorded with a run.
func sourceName(path string) string {
	if path == "" || path == stdio {
		return "stdin"
	}
	return path
}

// openOutput returns stdout for "" or "-", otherwise a created file.
func openOutput(stdout io.Writer, path string) (io.WriteCloser, error) {
	if path == "" || path == stdio {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// loadRules parses a rule file into a flat engine.
func loadRules(path string, cfg classify.Config) (*flat.Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}
	s, err := rulefile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return flat.New(s, flat.WithWorkers(cfg.Workers)), nil
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return 0
	}
	width, _, err := term.GetSize(f.Fd())
	if err != nil {
		return 0
	}
	return width
}

// render writes styled output to w, stripping styles unless w is a terminal.
func render(w io.Writer, styled func(width int) string) {
	width := terminalWidth(w)
	out := styled(layout.ClampWidth(width))
	if width == 0 {
		out = report.Plain(out)
	}
	fmt.Fprint(w, out)
}

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/unisafe/uread/lib-uread"
)

type UreadCommand struct {
	InStream  io.Reader
	OutStream io.Writer
	ErrStream io.Writer
}

var defaultUreadCommand = &UreadCommand{
	InStream:  os.Stdin,
	OutStream: os.Stdout,
	ErrStream: os.Stderr,
}

const Help = `Uread -- Read text files of unknown or mixed encoding as clean UTF-8

Usage: uread [OPTIONS...] [FILE...]

Reads each FILE (or stdin when no FILE is given, or when FILE is -),
repairs legacy and mixed encodings line by line, and writes UTF-8 text.

Options:
  -o, --output FILE       Output file. (default stdout)
  -t, --to-ascii MODE     Typographic folding: none, smart, or all.
                          (default smart)

      --escape-ext EXT    File extensions that get quote escaping.
                          (default .csv)
      --escape-char CHAR  Escape prefix for folded double quotes. (default ")
      --no-escape         Disable quote escaping entirely.

  -c, --csv               Re-emit the input through a CSV writer.
  -j, --json              Emit lines as a JSON array.

  -v, --verbose           Report the amount of converted text on stderr.
  -h, --help              Show this help message and exit.
`

func (c UreadCommand) Run(args []string) int {
	flags := pflag.NewFlagSet("uread", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)

	outputPath := flags.StringP("output", "o", "", "Output file")
	modeName := flags.StringP("to-ascii", "t", "smart", "Typographic folding mode")

	escapeExts := flags.StringSlice("escape-ext", []string{".csv"}, "Extensions that get quote escaping")
	escapeChar := flags.String("escape-char", `"`, "Escape prefix for folded double quotes")
	noEscape := flags.Bool("no-escape", false, "Disable quote escaping")

	toCsv := flags.BoolP("csv", "c", false, "Re-emit as CSV")
	toJson := flags.BoolP("json", "j", false, "Emit lines as a JSON array")

	verbose := flags.BoolP("verbose", "v", false, "Report converted amounts")
	help := flags.BoolP("help", "h", false, "Show this message and exit")

	if err := flags.Parse(args[1:]); err != nil {
		fmt.Fprintln(c.ErrStream, err)
		fmt.Fprintf(c.ErrStream, "\nPlease see `%s -h` for more information.\n", args[0])
		return 2
	}

	if *help {
		fmt.Fprint(c.OutStream, Help)
		return 0
	}

	mode, err := uread.ParseMode(*modeName)
	if err != nil {
		fmt.Fprintln(c.ErrStream, err)
		fmt.Fprintf(c.ErrStream, "\nPlease see `%s -h` for more information.\n", args[0])
		return 2
	}

	if *toCsv && *toJson {
		fmt.Fprintln(c.ErrStream, "error: flags for output format can not use multiple in the same time.")
		return 2
	}

	opts := []uread.Option{uread.WithMode(mode)}
	if *noEscape {
		opts = append(opts, uread.WithoutEscape())
	} else {
		opts = append(opts, uread.WithEscapeExtensions(*escapeExts...), uread.WithEscapeChar(*escapeChar))
	}

	paths := flags.Args()
	if len(paths) == 0 {
		if f, ok := c.InStream.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			fmt.Fprint(c.ErrStream, Help)
			return 2
		}
		paths = []string{"-"}
	}

	var streams []*uread.Stream
	defer func() {
		for _, s := range streams {
			s.Close()
		}
	}()
	for _, path := range paths {
		if path == "" || path == "-" {
			streams = append(streams, uread.NewStream(io.NopCloser(c.InStream), "stdin", opts...))
		} else {
			s, err := uread.Open(path, opts...)
			if err != nil {
				fmt.Fprintf(c.ErrStream, "error: failed to open input file: %s\n", err)
				return 1
			}
			streams = append(streams, s)
		}
	}

	output := c.OutStream
	if *outputPath != "" && *outputPath != "-" {
		f, err := os.Create(*outputPath)
		if err != nil {
			fmt.Fprintf(c.ErrStream, "error: failed to open output file: %s\n", err)
			return 1
		}
		defer f.Close()
		output = f
	}

	switch {
	case *toJson:
		err = c.toJSON(streams, output)
	case *toCsv:
		err = c.toCSV(streams, output)
	default:
		err = c.toText(streams, output, *verbose)
	}
	if err != nil {
		fmt.Fprintf(c.ErrStream, "error: %s\n", err)
		return 1
	}
	return 0
}

func (c UreadCommand) toText(streams []*uread.Stream, output io.Writer, verbose bool) error {
	for _, s := range streams {
		n, err := io.Copy(output, s)
		if err != nil {
			return fmt.Errorf("failed to convert %s: %s", s.Name(), err)
		}
		if verbose {
			fmt.Fprintf(c.ErrStream, "%s: converted %s\n", s.Name(), humanize.Bytes(uint64(n)))
		}
	}
	return nil
}

func (c UreadCommand) toCSV(streams []*uread.Stream, output io.Writer) error {
	w := csv.NewWriter(output)

	for _, s := range streams {
		r := csv.NewReader(s)
		r.FieldsPerRecord = -1

		for {
			record, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to parse %s: %s", s.Name(), err)
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("failed to write output: %s", err)
			}
		}
	}

	w.Flush()
	return w.Error()
}

func (c UreadCommand) toJSON(streams []*uread.Stream, output io.Writer) error {
	if _, err := output.Write([]byte("[\n  ")); err != nil {
		return fmt.Errorf("failed to write output: %s", err)
	}

	first := true

	for _, s := range streams {
		for s.Scan() {
			if first {
				first = false
			} else {
				if _, err := output.Write([]byte(",\n  ")); err != nil {
					return fmt.Errorf("failed to write output: %s", err)
				}
			}

			if j, err := json.Marshal(s.Text()); err != nil {
				return fmt.Errorf("failed to encode line: %s", err)
			} else if _, err := output.Write(j); err != nil {
				return fmt.Errorf("failed to write output: %s", err)
			}
		}
		if err := s.Err(); err != nil {
			return fmt.Errorf("failed to convert %s: %s", s.Name(), err)
		}
	}

	if _, err := output.Write([]byte("\n]\n")); err != nil {
		return fmt.Errorf("failed to write output: %s", err)
	}

	return nil
}

func main() {
	os.Exit(defaultUreadCommand.Run(os.Args))
}

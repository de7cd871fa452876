// Command fuzzyphrase builds and queries fuzzy phrase indexes from the
// command line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/steosofficial/fuzzyphrase"
	"github.com/steosofficial/fuzzyphrase/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "build":
		err = runBuild(os.Args[2:])
	case "query":
		err = runQuery(os.Args[2:])
	case "contains":
		err = runContains(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	case "-h", "--help", "help":
		printHelp()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fuzzyphrase: %s\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Fprint(os.Stderr, `fuzzyphrase - fuzzy, prefix-tolerant phrase index

Usage:
  fuzzyphrase build -dir <index dir> -phrases <file> [-config <fuzzyphrase.toml>]
  fuzzyphrase query -dir <index dir> -prefix <tokens...>
  fuzzyphrase contains -dir <index dir> <tokens...>
  fuzzyphrase inspect -dir <index dir>
`)
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// runBuild reads one phrase per line (whitespace-separated tokens) from
// -phrases and writes a complete index directory.
func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	dir := fs.String("dir", "", "output index directory (must exist)")
	phrasesPath := fs.String("phrases", "", "path to a newline-delimited phrase list")
	configPath := fs.String("config", "", "path to fuzzyphrase.toml (optional)")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" || *phrasesPath == "" {
		return fmt.Errorf("build requires -dir and -phrases")
	}

	cfg := fuzzyphrase.DefaultBuildConfig()
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if !f.IsZero() {
			if f.MaxEditDistance != 0 {
				cfg.MaxEditDistance = f.MaxEditDistance
			}
			if len(f.FuzzyEnabledScripts) != 0 {
				cfg.FuzzyEnabledScripts = f.FuzzyEnabledScripts
			}
		}
	}

	pf, err := os.Open(*phrasesPath)
	if err != nil {
		return err
	}
	defer pf.Close()

	log := newLogger(*debug)
	b := fuzzyphrase.New(*dir, cfg)
	b.SetLogger(log)

	scanner := bufio.NewScanner(pf)
	n := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := b.Insert(strings.Fields(line)); err != nil {
			return err
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	log.Info("read phrase list", "phrases", n)

	return b.Finish()
}

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	dir := fs.String("dir", "", "index directory")
	prefix := fs.Bool("prefix", false, "treat the final token as a completable prefix")
	maxWordDist := fs.Int("max-word-dist", 1, "max per-word edit distance")
	maxPhraseDist := fs.Int("max-phrase-dist", 2, "max summed phrase edit distance")
	if err := fs.Parse(args); err != nil {
		return err
	}
	tokens := fs.Args()
	if *dir == "" || len(tokens) == 0 {
		return fmt.Errorf("query requires -dir and one or more tokens")
	}

	set, err := fuzzyphrase.Open(*dir)
	if err != nil {
		return err
	}
	defer set.Close()

	var matches []fuzzyphrase.Match
	if *prefix {
		matches, err = set.FuzzyMatchPrefix(tokens, *maxWordDist, *maxPhraseDist)
	} else {
		matches, err = set.FuzzyMatch(tokens, *maxWordDist, *maxPhraseDist)
	}
	if err != nil {
		return err
	}
	printMatches(os.Stdout, matches)
	return nil
}

func runContains(args []string) error {
	fs := flag.NewFlagSet("contains", flag.ExitOnError)
	dir := fs.String("dir", "", "index directory")
	prefix := fs.Bool("prefix", false, "treat the final token as a completable prefix")
	if err := fs.Parse(args); err != nil {
		return err
	}
	tokens := fs.Args()
	if *dir == "" || len(tokens) == 0 {
		return fmt.Errorf("contains requires -dir and one or more tokens")
	}

	set, err := fuzzyphrase.Open(*dir)
	if err != nil {
		return err
	}
	defer set.Close()

	var ok bool
	if *prefix {
		ok, err = set.ContainsPrefix(tokens)
	} else {
		ok, err = set.Contains(tokens)
	}
	if err != nil {
		return err
	}
	fmt.Println(ok)
	return nil
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	dir := fs.String("dir", "", "index directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" {
		return fmt.Errorf("inspect requires -dir")
	}

	set, err := fuzzyphrase.Open(*dir)
	if err != nil {
		return err
	}
	defer set.Close()

	fmt.Printf("max_edit_distance: %d\n", set.MaxEditDistance())
	return nil
}

func printMatches(w io.Writer, matches []fuzzyphrase.Match) {
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%d\n", strings.Join(m.Words, " "), m.EditDistance)
	}
}

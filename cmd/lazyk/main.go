// Command lazyk runs Lazy K programs: SKI combinator-calculus terms
// that read Church-encoded stdin and write Church-encoded stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/jyane/lazyk/lazyk"
)

var (
	inline      = flag.String("e", "", "run SRC directly instead of reading a file")
	limit       = flag.Int("limit", 0, "maximum number of output bytes (0 = unlimited)")
	configPath  = flag.String("config", "", "path to a YAML config file (see lazyk.Config)")
	dumpPath    = flag.String("dump", "", "write the compiled graph to this file instead of running it (.gz suffix gzips it)")
	dumpStyle   = flag.String("dump-style", "comb", "pretty-print style for -dump: comb, unlambda, jot, iota")
	showVersion = flag.Bool("version", false, "print the interpreter version and exit")
)

const version = "lazyk 1.0"

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] <FILE>\n       %s [flags] -e <SRC>\n\n", os.Args[0], os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	defer glog.Flush()

	if *showVersion {
		fmt.Println(version)
		return
	}

	cfg := lazyk.DefaultConfig()
	if *configPath != "" {
		loaded, err := lazyk.LoadConfig(*configPath)
		if err != nil {
			glog.Exitf("lazyk: %v", err)
		}
		cfg = loaded
	}
	if *limit > 0 {
		l := *limit
		cfg.DefaultOutputLimit = &l
	}

	source, err := readSource()
	if err != nil {
		glog.Exitf("lazyk: %v", err)
	}

	program, err := lazyk.CompileWithConfig(source, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lazyk: %v\n", err)
		os.Exit(2)
	}

	if *dumpPath != "" {
		if err := dumpGraph(program); err != nil {
			glog.Exitf("lazyk: %v", err)
		}
		return
	}

	if err := program.RunConsole(); err != nil {
		if exit, ok := err.(*lazyk.ExitError); ok {
			os.Exit(exit.Code)
		}
		fmt.Fprintf(os.Stderr, "lazyk: %v\n", err)
		os.Exit(1)
	}
}

func readSource() (string, error) {
	if *inline != "" {
		return *inline, nil
	}
	args := flag.Args()
	if len(args) != 1 {
		usage()
		os.Exit(2)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

func dumpGraph(p *lazyk.Program) error {
	style, err := parseStyle(*dumpStyle)
	if err != nil {
		return err
	}
	f, err := os.Create(*dumpPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", *dumpPath, err)
	}
	defer f.Close()
	gz := len(*dumpPath) > 3 && (*dumpPath)[len(*dumpPath)-3:] == ".gz"
	return lazyk.DumpGraph(p, f, style, gz)
}

func parseStyle(s string) (lazyk.Style, error) {
	switch s {
	case "comb", "":
		return lazyk.StyleCombCalculus, nil
	case "unlambda":
		return lazyk.StyleUnlambda, nil
	case "jot":
		return lazyk.StyleJot, nil
	case "iota":
		return lazyk.StyleIota, nil
	default:
		return 0, fmt.Errorf("unknown -dump-style %q", s)
	}
}

// Command wtrie indexes the lines of a text file in a wavelet trie and
// answers rank, select and access queries on it.
//
//	wtrie -input words.txt -query abra -index 100
//	wtrie -input words.txt -prefix -query ab
//	wtrie -input words.txt -access 7
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	wavelettrie "github.com/AlexWan0/go-wavelettrie"
	"github.com/AlexWan0/go-wavelettrie/bitvec"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	input    string
	query    string
	prefix   bool
	index    int64
	access   int64
	freeze   bool
	logLevel string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("wtrie", flag.ContinueOnError)
	fs.StringVar(&o.input, "input", "-", "file with one entry per line, - for stdin")
	fs.StringVar(&o.query, "query", "", "entry to rank and select")
	fs.BoolVar(&o.prefix, "prefix", false, "treat -query as a prefix")
	fs.Int64Var(&o.index, "index", -1, "rank among the first index entries (default all)")
	fs.Int64Var(&o.access, "access", -1, "print the entry at this position")
	fs.BoolVar(&o.freeze, "freeze", false, "query a frozen, compressed copy of the trie")
	fs.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	enc := zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), lvl)), nil
}

func readTrie(r io.Reader, log *zap.Logger) (*wavelettrie.Trie, error) {
	b := wavelettrie.NewBuilder(wavelettrie.WithLogger(log))
	sc := bufio.NewScanner(r)
	lines := 0
	for sc.Scan() {
		b.PushBack(wavelettrie.FromText(sc.Text()))
		lines++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	log.Info("read input", zap.Int("lines", lines))
	return b.Build()
}

func run(o options, stdin io.Reader, stdout io.Writer, log *zap.Logger) error {
	in := stdin
	if o.input != "-" {
		f, err := os.Open(o.input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	tr, err := readTrie(in, log)
	if err != nil {
		return fmt.Errorf("building trie: %w", err)
	}

	var idx wavelettrie.Index = tr
	if o.freeze {
		st := tr.Freeze()
		log.Info("froze trie", zap.Int("bytes", st.AllocSize()))
		idx = st
	}

	if o.access >= 0 {
		v, ok := idx.Access(uint64(o.access))
		if !ok {
			return fmt.Errorf("no entry at %d, trie holds %d", o.access, idx.Len())
		}
		s, _ := wavelettrie.TextOf(v)
		fmt.Fprintf(stdout, "%d\t%s\n", o.access, s)
	}

	if o.query == "" {
		return nil
	}
	var seq *bitvec.BitVector
	if o.prefix {
		seq = wavelettrie.TextPrefix(o.query)
	} else {
		seq = wavelettrie.FromText(o.query)
	}
	index := idx.Len()
	if o.index >= 0 && uint64(o.index) < index {
		index = uint64(o.index)
	}
	n, ok := idx.Rank(seq, index)
	if !ok {
		n = 0
	}
	fmt.Fprintf(stdout, "rank\t%d\n", n)
	for k := uint64(1); k <= n; k++ {
		pos, _ := idx.Select(seq, k)
		fmt.Fprintf(stdout, "select\t%d\t%d\n", k, pos)
	}
	return nil
}

// wtrie returns the process exit code. The logger is synced on every path.
func wtrie(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := parseFlags(args)
	if err != nil {
		return 2
	}
	log, err := newLogger(o.logLevel, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer log.Sync()

	if err := run(o, stdin, stdout, log); err != nil {
		log.Error("wtrie failed", zap.Error(err))
		return 1
	}
	return 0
}

func main() {
	os.Exit(wtrie(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

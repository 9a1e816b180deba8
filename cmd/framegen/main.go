// cmd/framegen turns declarative UI descriptions written in CUE into
// Objective-C code that builds the described windows and menus.
//
// Usage:
//
//	framegen [-o dir] [-name Func] [-db path] file.cue|dir ...
//
// Each argument is a description file or a directory holding a CUE package.
// For every description, <Name>.h and <Name>.m are written to -o, or printed
// to stdout when -o is not given. Deferred assignments that never found
// their value are reported as warnings. With -db, every run is recorded in
// a SQLite database.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/matthewbaird/framegen/internal/generate"
	"github.com/matthewbaird/framegen/internal/store"
	"github.com/matthewbaird/framegen/internal/uidef"

	_ "modernc.org/sqlite"
)

type options struct {
	outDir   string
	funcName string
	dbPath   string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("framegen: ")

	var opts options
	flag.StringVar(&opts.outDir, "o", "", "output directory (default: stdout)")
	flag.StringVar(&opts.funcName, "name", "", "function name suffix, overriding the description name")
	flag.StringVar(&opts.dbPath, "db", "", "record runs in this SQLite database")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if opts.funcName != "" && flag.NArg() > 1 {
		log.Fatal("-name needs exactly one description")
	}
	if err := run(context.Background(), opts, flag.Args(), os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, opts options, args []string, stdout io.Writer) error {
	var runs store.Store
	if opts.dbPath != "" {
		db, err := sql.Open("sqlite", opts.dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(1)
		s := store.NewSQLiteStore(db)
		if err := s.CreateTable(ctx); err != nil {
			return fmt.Errorf("creating runs table: %w", err)
		}
		runs = s
	}

	failed := 0
	for _, arg := range args {
		out, err := generateOne(ctx, runs, arg, opts.funcName)
		if err != nil {
			log.Printf("%s: %v", arg, err)
			failed++
			continue
		}
		for _, p := range out.Pending {
			log.Printf("%s: warning: unresolved assignment %s", arg, p)
		}
		if err := write(opts.outDir, out, stdout); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d descriptions failed", failed, len(args))
	}
	return nil
}

func generateOne(ctx context.Context, runs store.Store, arg, funcName string) (*generate.Output, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		src, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		if runs != nil {
			out, _, err := generate.Record(ctx, runs, filepath.Base(arg), src, funcName)
			return out, err
		}
		return generate.Source(filepath.Base(arg), src, funcName)
	}

	doc, err := uidef.LoadInstance(arg)
	if err != nil {
		err = &generate.Error{Stage: generate.StageCompile, Err: err}
	}
	var out *generate.Output
	if err == nil {
		out, err = generate.Document(doc, filepath.Base(arg), funcName)
	}
	if runs != nil {
		if _, saveErr := generate.SaveRun(ctx, runs, filepath.Base(arg), arg, out, err); saveErr != nil && err == nil {
			return nil, saveErr
		}
	}
	return out, err
}

func write(outDir string, out *generate.Output, stdout io.Writer) error {
	if outDir == "" {
		_, err := fmt.Fprintf(stdout, "%s\n%s", out.Header, out.Implementation)
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	files := []struct{ name, content string }{
		{out.Name + ".h", out.Header},
		{out.Name + ".m", out.Implementation},
	}
	for _, f := range files {
		path := filepath.Join(outDir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return err
		}
		log.Printf("wrote %s", path)
	}
	return nil
}

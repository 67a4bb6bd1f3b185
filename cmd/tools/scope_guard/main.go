package main

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// scope_guard scans the sqlc query files and fails when a read, update or
// delete on a business-owned table has no business_id filter.
// Exit code 0 = ok, 1 = violation, 2 = other error.
func main() {
	root := "db/queries"
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	violations, err := scan(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scope_guard error: %v\n", err)
		os.Exit(2)
	}
	if len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "VIOLATION: %s\n", v)
		}
		os.Exit(1)
	}
	fmt.Println("scope_guard: OK")
}

var (
	reName     = regexp.MustCompile(`^--\s*name:\s*(\w+)`)
	reScoped   = regexp.MustCompile(`(?i)\b(from|join|update|delete\s+from)\s+(orders|giftcards)\b`)
	reInsert   = regexp.MustCompile(`(?i)^\s*insert\b`)
	reBusiness = regexp.MustCompile(`(?i)business_id\s*=\s*(\$\d+|sqlc\.arg\(\w+\))`)
)

func scan(dir string) ([]string, error) {
	var violations []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".sql" {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() {
			_ = f.Close()
		}()
		names, err := checkQueries(f)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, name := range names {
			violations = append(violations, path+": "+name)
		}
		return nil
	})
	return violations, err
}

type statement struct {
	name string
	body strings.Builder
}

// checkQueries returns the names of unscoped queries in r.
func checkQueries(r io.Reader) ([]string, error) {
	var (
		stmts []*statement
		cur   *statement
	)
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if m := reName.FindStringSubmatch(line); m != nil {
			cur = &statement{name: m[1]}
			stmts = append(stmts, cur)
			continue
		}
		if cur != nil {
			cur.body.WriteString(line)
			cur.body.WriteByte('\n')
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	var bad []string
	for _, st := range stmts {
		body := st.body.String()
		if reInsert.MatchString(body) || !reScoped.MatchString(body) {
			continue
		}
		if !reBusiness.MatchString(body) {
			bad = append(bad, st.name)
		}
	}
	return bad, nil
}

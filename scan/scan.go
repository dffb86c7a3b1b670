/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package scan extracts candidate utility class names from content sources.
package scan

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	ucfs "bennypowers.dev/utilicss/fs"
)

// candidatePattern matches runs of characters that can form a class name.
// Braces end a candidate so template placeholders ("p-4{}") are split off.
var candidatePattern = regexp.MustCompile("[^<>{}\"'`\\s]+")

// trailing punctuation commonly glued to class names in prose and code
const trailing = ".,;:)"

// Set is a set of candidate identifiers.
type Set map[string]struct{}

// Add inserts id.
func (s Set) Add(id string) { s[id] = struct{}{} }

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of identifiers.
func (s Set) Len() int { return len(s) }

// Sorted returns the identifiers in lexical order.
func (s Set) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Scanner reads content files and collects utility candidates.
type Scanner struct {
	fs      ucfs.Reader
	grammar *regexp.Regexp
	log     *zap.Logger
	// Concurrency bounds the number of files read at once.
	Concurrency int
}

// NewScanner creates a scanner accepting identifiers built on the given
// utility prefixes. A nil logger discards output.
func NewScanner(filesystem ucfs.Reader, prefixes []string, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{
		fs:          filesystem,
		grammar:     Grammar(prefixes),
		log:         log.Named("scan"),
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

// Grammar compiles the utility identifier grammar: zero or more "variant:"
// segments, then one of the prefixes, a dash, and a non-empty rest.
func Grammar(prefixes []string) *regexp.Regexp {
	sorted := append([]string(nil), prefixes...)
	// longest first so "max-w" is tried before "m"
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	quoted := make([]string, len(sorted))
	for i, p := range sorted {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`^(?:[a-z0-9-]+:)*(?:` + strings.Join(quoted, "|") + `)-\S+$`)
}

// Extract returns the candidate identifiers found in content, in order of
// first appearance and without duplicates.
func (s *Scanner) Extract(content []byte) []string {
	return Extract(s.grammar, content)
}

// Extract returns the identifiers in content that match grammar.
func Extract(grammar *regexp.Regexp, content []byte) []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(c string) {
		if c == "" || seen[c] || !grammar.MatchString(c) {
			return
		}
		seen[c] = true
		ids = append(ids, c)
	}
	for _, m := range candidatePattern.FindAll(content, -1) {
		c := string(m)
		add(c)
		add(strings.TrimRight(c, trailing))
	}
	return ids
}

// Scan reads every file and returns the union of their candidates.
// A read failure aborts the scan.
func (s *Scanner) Scan(ctx context.Context, files []string) (Set, error) {
	set := make(Set)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Concurrency, 1))
	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := s.fs.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading content %s: %w", file, err)
			}
			ids := s.Extract(data)
			s.log.Debug("scanned", zap.String("file", file), zap.Int("candidates", len(ids)))

			mu.Lock()
			defer mu.Unlock()
			for _, id := range ids {
				set.Add(id)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}

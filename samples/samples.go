// Package samples holds the built-in benchmark targets of the lightbench
// command.
package samples

import (
	"crypto/sha256"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"github.com/violenttestpen/lightbench/bench"
)

// sink keeps results reachable so the compiler cannot drop the work.
var sink interface{}

var factories = map[string]func() bench.Target{
	"strings":     func() bench.Target { return newStringsTarget(64) },
	"collections": func() bench.Target { return newCollectionsTarget(256) },
	"hashing":     func() bench.Target { return newHashingTarget(1024) },
}

// Names lists the built-in targets alphabetically.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup constructs the built-in target called name.
func Lookup(name string) (bench.Target, bool) {
	f, ok := factories[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

type stringsTarget struct {
	parts []string
}

func newStringsTarget(n int) *stringsTarget {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = strconv.Itoa(i)
	}
	return &stringsTarget{parts: parts}
}

func (t *stringsTarget) Operations() []bench.Operation {
	return bench.NewRegistry().
		Add("concat", t.concat).
		Add("builder", t.builder).
		Add("join", t.join).
		Operations()
}

func (t *stringsTarget) concat() {
	s := ""
	for _, p := range t.parts {
		s += p
	}
	sink = s
}

func (t *stringsTarget) builder() {
	var b strings.Builder
	for _, p := range t.parts {
		b.WriteString(p)
	}
	sink = b.String()
}

func (t *stringsTarget) join() {
	sink = strings.Join(t.parts, "")
}

type collectionsTarget struct {
	n int
}

func newCollectionsTarget(n int) *collectionsTarget {
	return &collectionsTarget{n: n}
}

func (t *collectionsTarget) Operations() []bench.Operation {
	return bench.NewRegistry().
		Add("slice-append", t.sliceAppend).
		Add("slice-prealloc", t.slicePrealloc).
		Add("map-insert", t.mapInsert).
		Operations()
}

func (t *collectionsTarget) sliceAppend() {
	var s []int
	for i := 0; i < t.n; i++ {
		s = append(s, i)
	}
	sink = s
}

func (t *collectionsTarget) slicePrealloc() {
	s := make([]int, 0, t.n)
	for i := 0; i < t.n; i++ {
		s = append(s, i)
	}
	sink = s
}

func (t *collectionsTarget) mapInsert() {
	m := make(map[int]int)
	for i := 0; i < t.n; i++ {
		m[i] = i
	}
	sink = m
}

type hashingTarget struct {
	data []byte
}

func newHashingTarget(n int) *hashingTarget {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return &hashingTarget{data: data}
}

func (t *hashingTarget) Operations() []bench.Operation {
	return bench.NewRegistry().
		Add("sha256", func() { sink = sha256.Sum256(t.data) }).
		AddE("fnv64a", t.fnv).
		Operations()
}

func (t *hashingTarget) fnv() error {
	h := fnv.New64a()
	if _, err := h.Write(t.data); err != nil {
		return err
	}
	sink = h.Sum64()
	return nil
}

// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package workload

import (
	"fmt"
	"io"
	mrand "math/rand"
	"time"
)

// Config controls smoke-workload generation parameters. Real benchmark
// runs consume substitution parameters produced by the external data
// generator; the built-in generator exists for end-to-end smoke tests
// against a loaded database.
type Config struct {
	Operations int
	Persons    int64
	Seed       int64
}

// Summary contains statistics about the generated workload.
type Summary struct {
	TotalOperations int
	PerKind         map[string]int
}

// Generator produces deterministic operation streams from a Config.
type Generator struct {
	cfg Config
	rng *mrand.Rand
}

// Simulation window matching the dataset the external generator emits.
var (
	simStart = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	simEnd   = time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
)

var firstNames = []string{
	"Jan", "Chen", "Maria", "Ahmad", "Ivan", "Jose", "Anna", "Wei",
	"Mohammad", "Carlos", "Yang", "Otto", "Priya", "Ali", "Emma",
}

var countries = []string{
	"India", "China", "Germany", "France", "Pakistan", "Brazil",
	"Argentina", "Japan", "Spain", "Poland",
}

var tagNames = []string{
	"Napoleon", "Elvis_Presley", "Berlin_Wall", "Che_Guevara",
	"Augustine_of_Hippo", "Freddie_Mercury", "Genghis_Khan",
}

var tagClassNames = []string{
	"MusicalArtist", "Politician", "Monarch", "Writer", "Country",
}

// Relative frequencies follow the interactive mix: cheap queries run
// more often than the path queries.
var complexWeights = map[Kind]int{
	KindComplex1:  4,
	KindComplex2:  4,
	KindComplex3:  2,
	KindComplex4:  4,
	KindComplex5:  3,
	KindComplex6:  2,
	KindComplex7:  4,
	KindComplex8:  5,
	KindComplex9:  2,
	KindComplex10: 3,
	KindComplex11: 4,
	KindComplex12: 3,
	KindComplex13: 5,
	KindComplex14: 1,
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// Generate writes a JSONL workload to w and returns a Summary.
func (g *Generator) Generate(w io.Writer) (Summary, error) {
	summary := Summary{PerKind: make(map[string]int)}

	ops := make([]Operation, 0, g.cfg.Operations)
	for i := 0; i < g.cfg.Operations; i++ {
		op := g.next()
		ops = append(ops, op)
		summary.PerKind[op.Kind().String()]++
		summary.TotalOperations++
	}

	if err := Write(w, ops); err != nil {
		return summary, fmt.Errorf("write workload: %w", err)
	}

	return summary, nil
}

func (g *Generator) next() Operation {
	switch g.pickKind() {
	case KindComplex1:
		return &Complex1{PersonID: g.personID(), FirstName: g.pick(firstNames), Limit: 20}
	case KindComplex2:
		return &Complex2{PersonID: g.personID(), MaxDate: g.date(), Limit: 20}
	case KindComplex3:
		x := g.pick(countries)
		y := g.pick(countries)
		for y == x {
			y = g.pick(countries)
		}
		return &Complex3{
			PersonID:     g.personID(),
			CountryX:     x,
			CountryY:     y,
			StartDate:    g.date(),
			DurationDays: 28 + g.rng.Intn(64),
			Limit:        20,
		}
	case KindComplex4:
		return &Complex4{PersonID: g.personID(), StartDate: g.date(), DurationDays: 1 + g.rng.Intn(36), Limit: 10}
	case KindComplex5:
		return &Complex5{PersonID: g.personID(), MinDate: g.date(), Limit: 20}
	case KindComplex6:
		return &Complex6{PersonID: g.personID(), TagName: g.pick(tagNames), Limit: 10}
	case KindComplex7:
		return &Complex7{PersonID: g.personID(), Limit: 20}
	case KindComplex8:
		return &Complex8{PersonID: g.personID(), Limit: 20}
	case KindComplex9:
		return &Complex9{PersonID: g.personID(), MaxDate: g.date(), Limit: 20}
	case KindComplex10:
		return &Complex10{PersonID: g.personID(), Month: 1 + g.rng.Intn(12), Limit: 10}
	case KindComplex11:
		return &Complex11{
			PersonID:     g.personID(),
			CountryName:  g.pick(countries),
			WorkFromYear: 2000 + g.rng.Intn(13),
			Limit:        10,
		}
	case KindComplex12:
		return &Complex12{PersonID: g.personID(), TagClassName: g.pick(tagClassNames), Limit: 20}
	case KindComplex13:
		return &Complex13{Person1ID: g.personID(), Person2ID: g.personID()}
	default:
		return &Complex14{Person1ID: g.personID(), Person2ID: g.personID()}
	}
}

func (g *Generator) pickKind() Kind {
	total := 0
	for _, w := range complexWeights {
		total += w
	}

	n := g.rng.Intn(total)
	for _, k := range ComplexKinds() {
		n -= complexWeights[k]
		if n < 0 {
			return k
		}
	}

	return KindComplex14
}

func (g *Generator) personID() int64 {
	return 1 + g.rng.Int63n(g.cfg.Persons)
}

func (g *Generator) date() int64 {
	return simStart + g.rng.Int63n(simEnd-simStart)
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

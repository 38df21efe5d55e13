package contracts

import (
	"errors"
	"sort"
	"time"

	"github.com/corvalle/certilab/internal/entities"
)

// ErrNoRecords indicates the identity number has no employment history.
// Distinct from an aggregation whose records all failed alias resolution,
// which yields empty Groups and a populated Unresolved bucket.
var ErrNoRecords = errors.New("no employment records for identity number")

// Resolver maps a raw company name to its canonical entity.
type Resolver interface {
	Resolve(name string) (entities.Entity, error)
}

// Aggregate partitions one employee's records by resolved legal entity and
// derives per-group certificate facts against the given evaluation date.
// Group order follows first appearance in the input; records within a group
// are sorted by start date ascending with input order breaking ties.
func Aggregate(records []Record, resolver Resolver, evalDate time.Time) (Aggregation, error) {
	if len(records) == 0 {
		return Aggregation{}, ErrNoRecords
	}

	var agg Aggregation
	index := make(map[string]int)

	for _, rec := range records {
		entity, err := resolver.Resolve(rec.Company)
		if err != nil {
			agg.Unresolved = append(agg.Unresolved, rec)
			continue
		}

		i, ok := index[entity.NIT]
		if !ok {
			i = len(agg.Groups)
			index[entity.NIT] = i
			agg.Groups = append(agg.Groups, Group{Entity: entity})
		}
		agg.Groups[i].Records = append(agg.Groups[i].Records, rec)
	}

	for i := range agg.Groups {
		deriveFacts(&agg.Groups[i], evalDate)
	}

	return agg, nil
}

func deriveFacts(g *Group, evalDate time.Time) {
	sort.SliceStable(g.Records, func(i, j int) bool {
		return g.Records[i].Start.Before(g.Records[j].Start)
	})

	last := g.Records[len(g.Records)-1]

	g.EarliestStart = g.Records[0].Start
	g.Active = last.End == nil || !last.End.Before(evalDate)
	g.LatestTitle = latestTitle(g.Records)

	if last.End != nil {
		g.LatestEnd = latestEnd(g.Records)
	}

	for i := len(g.Records) - 1; i >= 0; i-- {
		if g.Records[i].Salary != nil {
			g.Salary = g.Records[i].Salary
			break
		}
	}
}

// latestTitle picks the title of the chronologically last record. Among
// records sharing the latest start date, an open-ended or later end date
// wins.
func latestTitle(records []Record) string {
	chosen := records[len(records)-1]
	latestStart := chosen.Start

	for _, rec := range records {
		if !rec.Start.Equal(latestStart) {
			continue
		}
		if endsAfter(rec.End, chosen.End) {
			chosen = rec
		}
	}

	return chosen.Title
}

// endsAfter reports whether end a outlasts end b, treating nil as open-ended.
func endsAfter(a, b *time.Time) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	default:
		return a.After(*b)
	}
}

func latestEnd(records []Record) *time.Time {
	var latest *time.Time
	for _, rec := range records {
		if rec.End == nil {
			continue
		}
		if latest == nil || rec.End.After(*latest) {
			end := *rec.End
			latest = &end
		}
	}
	return latest
}

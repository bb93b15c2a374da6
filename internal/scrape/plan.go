package scrape

import "github.com/ppiankov/crosscheck/internal/model"

// Planned is one (source, query) unit before it runs
type Planned struct {
	Source model.Source
	Query  model.SearchQuery
}

// Plan assigns each source perSource consecutive queries, offset by the
// source's position so different sources cover different intents. Units are
// interleaved by round: every source's first query precedes any second query,
// so the operation cap trims depth before breadth.
func Plan(queries []model.SearchQuery, sources []model.Source, perSource, maxOps int) []Planned {
	if len(queries) == 0 || len(sources) == 0 {
		return nil
	}
	if perSource <= 0 {
		perSource = 1
	}
	perSource = min(perSource, len(queries))

	var units []Planned
	for round := 0; round < perSource; round++ {
		for i, src := range sources {
			if maxOps > 0 && len(units) >= maxOps {
				return units
			}
			units = append(units, Planned{
				Source: src,
				Query:  queries[(i*perSource+round)%len(queries)],
			})
		}
	}
	return units
}

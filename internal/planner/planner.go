// Package planner groups extracted questions into bounded batches for
// the external answer-generation step. Batch boundaries bound the blast
// radius of one failed generation call: only that batch's questions stay
// unanswered.
package planner

import "rfpdesk/internal/model"

// Options bounds batch sizes.
type Options struct {
	// Ceiling is the largest category that fits in a single batch.
	Ceiling int
	// Floor is the chunk size used when a category exceeds the ceiling.
	Floor int
}

// DefaultOptions returns the standard batch bounds.
func DefaultOptions() Options {
	return Options{Ceiling: 25, Floor: 20}
}

// Plan groups questions by sheet then by category, in first-seen order,
// preserving row order throughout. Categories up to the ceiling become
// one batch; larger ones split into consecutive floor-sized sub-batches.
func Plan(questions []model.Question, opts Options) []model.Batch {
	if opts.Ceiling <= 0 {
		opts.Ceiling = DefaultOptions().Ceiling
	}
	if opts.Floor <= 0 {
		opts.Floor = DefaultOptions().Floor
	}

	type groupKey struct {
		sheet    string
		category string
	}
	var order []groupKey
	groups := make(map[groupKey][]model.Question)
	for _, q := range questions {
		k := groupKey{sheet: q.Sheet, category: q.Category}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], q)
	}

	var batches []model.Batch
	for _, k := range order {
		qs := groups[k]
		if len(qs) <= opts.Ceiling {
			batches = append(batches, model.Batch{
				Sheet:     k.sheet,
				Category:  k.category,
				Index:     1,
				Questions: qs,
			})
			continue
		}

		index := 1
		for start := 0; start < len(qs); start += opts.Floor {
			end := start + opts.Floor
			if end > len(qs) {
				end = len(qs)
			}
			batches = append(batches, model.Batch{
				Sheet:     k.sheet,
				Category:  k.category,
				Index:     index,
				Questions: qs[start:end],
			})
			index++
		}
	}

	return batches
}

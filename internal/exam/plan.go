package exam

import (
	"fmt"
	"math"
	"strings"
)

// Scale rescales a section list to targetTotal questions while preserving
// proportions. Every section keeps at least one question, and the result's
// counts sum to targetTotal exactly for any targetTotal >= len(sections).
//
// Rounding drift is corrected one unit at a time, cycling through sections in
// order so earlier sections absorb surplus or deficit first. The loop stops
// when a full cycle makes no progress, which is only possible when every
// count is already at the floor of 1 (targetTotal < len(sections)).
func Scale(sections []Section, targetTotal int) []Section {
	out := make([]Section, len(sections))
	copy(out, sections)

	sum := 0
	for _, s := range sections {
		sum += s.Count
	}
	if sum == targetTotal || sum == 0 {
		return out
	}

	ratio := float64(targetTotal) / float64(sum)
	for i := range out {
		scaled := int(math.Round(float64(out[i].Count) * ratio))
		if scaled < 1 {
			scaled = 1
		}
		out[i].Count = scaled
	}

	drift := targetTotal
	for _, s := range out {
		drift -= s.Count
	}

	for drift != 0 {
		progressed := false
		for i := range out {
			if drift == 0 {
				break
			}
			if drift > 0 {
				out[i].Count++
				drift--
				progressed = true
			} else if out[i].Count > 1 {
				out[i].Count--
				drift++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	return out
}

// Flatten expands a section plan into a queue of section-name tokens, one
// per requested question, sections in plan order.
func Flatten(plan []Section) []string {
	total := 0
	for _, s := range plan {
		total += s.Count
	}

	queue := make([]string, 0, total)
	for _, s := range plan {
		for i := 0; i < s.Count; i++ {
			queue = append(queue, s.Name)
		}
	}
	return queue
}

// Batch is one bounded unit of question-generation work: a contiguous slice
// of the section queue, tallied per section in queue order.
type Batch struct {
	Size     int
	Sections []Section
}

// Distribution renders the batch's per-section counts as a compact
// "name: count, ..." string for prompt embedding.
func (b Batch) Distribution() string {
	parts := make([]string, len(b.Sections))
	for i, s := range b.Sections {
		parts[i] = fmt.Sprintf("%s: %d", s.Name, s.Count)
	}
	return strings.Join(parts, ", ")
}

// Partition splits the section queue into batches of at most maxBatchSize
// tokens, consuming from the front. The batches exhaust the queue exactly.
func Partition(queue []string, maxBatchSize int) []Batch {
	if maxBatchSize < 1 {
		maxBatchSize = 1
	}

	var batches []Batch
	for len(queue) > 0 {
		size := maxBatchSize
		if len(queue) < size {
			size = len(queue)
		}

		chunk := queue[:size]
		queue = queue[size:]

		batches = append(batches, Batch{Size: size, Sections: tally(chunk)})
	}
	return batches
}

func tally(tokens []string) []Section {
	index := make(map[string]int, len(tokens))
	var counts []Section
	for _, name := range tokens {
		if i, ok := index[name]; ok {
			counts[i].Count++
			continue
		}
		index[name] = len(counts)
		counts = append(counts, Section{Name: name, Count: 1})
	}
	return counts
}

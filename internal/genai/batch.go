package genai

import (
	"context"
	"log/slog"
	"sync"
)

const batchWorkers = 5

// ConceptResult pairs a generated logo with the concept prompt it came from.
type ConceptResult struct {
	Concept string `json:"concept"`
	Image   string `json:"image"`
}

// GenerateBatch fans concept prompts out over a bounded worker pool and
// collects results in input order. Failed concepts are dropped rather than
// failing the batch.
func GenerateBatch(ctx context.Context, gen ImageGenerator, concepts []string) []ConceptResult {
	if len(concepts) == 0 {
		return nil
	}

	type slot struct {
		result ConceptResult
		ok     bool
	}

	slots := make([]slot, len(concepts))
	sem := make(chan struct{}, batchWorkers)
	var wg sync.WaitGroup

	for i, concept := range concepts {
		wg.Add(1)
		go func(i int, concept string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			image, err := gen.Generate(ctx, concept)
			if err != nil {
				slog.WarnContext(ctx, "concept generation dropped",
					"concept", concept, "error", err)
				return
			}
			slots[i] = slot{result: ConceptResult{Concept: concept, Image: image}, ok: true}
		}(i, concept)
	}
	wg.Wait()

	results := make([]ConceptResult, 0, len(concepts))
	for _, s := range slots {
		if s.ok {
			results = append(results, s.result)
		}
	}
	return results
}

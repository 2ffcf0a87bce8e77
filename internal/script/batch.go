package script

import (
	"context"
	"sync"

	"github.com/san-kum/asciiart/internal/session"
)

// Result is the outcome of one script of a batch.
type Result struct {
	Script  *Script
	Session *session.Session
	Err     error
}

// RunAll runs every script concurrently, each on its own session. Results
// are in input order; a failing script does not stop the others.
func RunAll(ctx context.Context, scripts []*Script, opts session.Options) []Result {
	results := make([]Result, len(scripts))

	var wg sync.WaitGroup
	for i, s := range scripts {
		wg.Add(1)
		go func(idx int, s *Script) {
			defer wg.Done()

			results[idx].Script = s
			sess, err := NewSession(s, opts)
			if err != nil {
				results[idx].Err = err
				return
			}
			results[idx].Session = sess
			results[idx].Err = Run(ctx, s, sess)
		}(i, s)
	}

	wg.Wait()
	return results
}

// SPDX-License-Identifier: GPL-2.0-or-later

// Package work runs independent jobs on a bounded set of goroutines.
package work

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers returns the number of goroutines to use for n jobs when asked for
// want. Zero or less means one per cpu.
func Workers(want, n int) int {
	if want <= 0 {
		want = runtime.NumCPU()
	}
	if want > n {
		want = n
	}
	return max(want, 1)
}

// Each calls fn(i) for every i in [0,n) on up to workers goroutines and waits
// for all of them. fn must only write state owned by job i. Once ctx is done
// no new jobs are started and the context error is returned.
func Each(ctx context.Context, n, workers int, fn func(i int)) error {
	g := new(errgroup.Group)
	g.SetLimit(Workers(workers, n))
	var err error
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	if werr := g.Wait(); werr != nil {
		return werr
	}
	if n <= 0 {
		return ctx.Err()
	}
	return err
}

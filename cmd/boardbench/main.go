package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/board-api/config"
	"github.com/d60-Lab/board-api/internal/repository"
	"github.com/d60-Lab/board-api/internal/service"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// pct 最近秩法取分位数
func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

// run 用 conc 个 worker 执行 n 次 op，返回总耗时与每次耗时
func run(n, conc int, op func(i int)) (time.Duration, []time.Duration) {
	if conc > n {
		conc = n
	}
	feed := make(chan int, n)
	for i := 0; i < n; i++ {
		feed <- i
	}
	close(feed)

	recCh := make(chan time.Duration, n)
	done := make(chan struct{}, conc)
	t0 := time.Now()
	for w := 0; w < conc; w++ {
		go func() {
			for i := range feed {
				st := time.Now()
				op(i)
				recCh <- time.Since(st)
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < conc; w++ {
		<-done
	}
	total := time.Since(t0)
	close(recCh)
	recs := make([]time.Duration, 0, n)
	for d := range recCh {
		recs = append(recs, d)
	}
	return total, recs
}

func report(name string, n int, total time.Duration, recs []time.Duration) {
	fmt.Printf("%-10s total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
		name, total, total/time.Duration(n), pct(recs, 0.50), pct(recs, 0.95), pct(recs, 0.99))
}

func main() {
	cfg := must(config.Load())
	ctx := context.Background()
	store := must(repository.Open(ctx, cfg))
	defer func() { _ = store.Close() }()

	users := service.NewUserService(store)
	posts := service.NewPostService(store)

	N := envInt("N", 10000)
	CONC := envInt("CONC", 8)
	PAGE := envInt("PAGE", 10)
	runID := uuid.NewString()[:8]

	var failed int64
	errs := make(chan struct{}, 4*N)
	fail := func(err error) {
		if err != nil {
			errs <- struct{}{}
		}
	}

	regDur, regRecs := run(N, CONC, func(i int) {
		name := fmt.Sprintf("u%s_%d", runID, i)
		_, err := users.Register(ctx, service.RegisterInput{Username: name, Email: name + "@example.com", Password: "password"})
		fail(err)
	})

	createDur, createRecs := run(N, CONC, func(i int) {
		_, err := posts.CreatePost(ctx, service.CreatePostInput{
			Title:   fmt.Sprintf("bench %s #%d", runID, i),
			Content: "benchmark content",
			Author:  fmt.Sprintf("u%s_%d", runID, i),
		})
		fail(err)
	})

	pages := N/PAGE + 1
	listDur, listRecs := run(N, CONC, func(i int) {
		_, err := posts.ListPosts(ctx, i%pages+1, PAGE)
		fail(err)
	})

	// 详情读会累加 views，落在同一把锁上
	readDur, readRecs := run(N, CONC, func(i int) {
		_, err := posts.GetPost(ctx, int64(i%N)+3)
		fail(err)
	})
	close(errs)
	for range errs {
		failed++
	}

	fmt.Printf("N=%d, CONC=%d, PAGE=%d, store=%s, run=%s\n", N, CONC, PAGE, cfg.Store.Driver, runID)
	report("register", N, regDur, regRecs)
	report("create", N, createDur, createRecs)
	report("list", N, listDur, listRecs)
	report("read", N, readDur, readRecs)
	fmt.Printf("errors: %d\n", failed)
}

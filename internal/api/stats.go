package api

import (
	"context"
	"sync"
	"time"

	"country-api/internal/logger"
	"country-api/internal/store"
)

type lookupResult string

const (
	resultMatch      lookupResult = "match"
	resultNoMatch    lookupResult = "no_match"
	resultOutOfRange lookupResult = "out_of_range"
	resultBadRequest lookupResult = "bad_request"
)

// StatsSink：统计落库目标（*store.Store 实现）
type StatsSink interface {
	AddStats(ctx context.Context, d store.StatsDelta) error
}

// 文档注释：查询计数器
// 背景：逐请求写库代价过高，先在内存累积，按周期批量刷写；同时保留进程启动以来的累计值供 /stats 使用。
// 约束：刷写失败时把本批计数并回待刷写区，下个周期重试。
type Stats struct {
	mu      sync.Mutex
	pending store.StatsDelta
	total   store.StatsDelta
	since   time.Time
}

func NewStats() *Stats {
	return &Stats{since: time.Now()}
}

func (s *Stats) Record(r lookupResult, iso string) {
	if r == resultBadRequest {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range []*store.StatsDelta{&s.pending, &s.total} {
		d.Queries++
		switch r {
		case resultMatch:
			d.Matches++
			if d.ByISO == nil {
				d.ByISO = make(map[string]int64)
			}
			d.ByISO[iso]++
		case resultNoMatch:
			d.NoMatch++
		case resultOutOfRange:
			d.OutOfRange++
		}
	}
}

// Snapshot：进程启动以来的累计值
func (s *Stats) Snapshot() (store.StatsDelta, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.total
	out.ByISO = make(map[string]int64, len(s.total.ByISO))
	for k, v := range s.total.ByISO {
		out.ByISO[k] = v
	}
	return out, s.since
}

// Flush：把待刷写计数交给 sink
func (s *Stats) Flush(ctx context.Context, sink StatsSink) error {
	s.mu.Lock()
	d := s.pending
	s.pending = store.StatsDelta{}
	s.mu.Unlock()
	if d.Empty() {
		return nil
	}
	if err := sink.AddStats(ctx, d); err != nil {
		s.mu.Lock()
		s.pending.Queries += d.Queries
		s.pending.Matches += d.Matches
		s.pending.NoMatch += d.NoMatch
		s.pending.OutOfRange += d.OutOfRange
		if s.pending.ByISO == nil {
			s.pending.ByISO = make(map[string]int64, len(d.ByISO))
		}
		for k, v := range d.ByISO {
			s.pending.ByISO[k] += v
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// Run：按周期刷写直到 ctx 结束；结束前做最后一次刷写
func (s *Stats) Run(ctx context.Context, sink StatsSink, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			fctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Flush(fctx, sink); err != nil {
				logger.L().Error("stats_flush_error", "err", err)
			}
			cancel()
			return
		case <-t.C:
			if err := s.Flush(ctx, sink); err != nil {
				logger.L().Warn("stats_flush_error", "err", err)
			}
		}
	}
}

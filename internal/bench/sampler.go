package bench

import (
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// memSampler polls a process's resident set size at a fixed interval and
// retains the maximum observed. Each worker has exactly one sampler and one
// result slot: the sampling goroutine is the sole writer of peak, and Stop
// joins it before reading, so no locking is needed.
type memSampler struct {
	proc     *process.Process
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
	peak     uint64
}

func newMemSampler(pid int32, interval time.Duration) *memSampler {
	s := &memSampler{
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	// A vanished pid just yields a zero peak.
	if proc, err := process.NewProcess(pid); err == nil {
		s.proc = proc
	}
	go s.loop()
	return s
}

func (s *memSampler) loop() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.sample()
	for {
		select {
		case <-s.stop:
			s.sample()
			return
		case <-ticker.C:
			s.sample()
		}
	}
}

func (s *memSampler) sample() {
	if s.proc == nil {
		return
	}
	info, err := s.proc.MemoryInfo()
	if err != nil {
		// The process already exited; keep whatever we saw.
		return
	}
	if info.RSS > s.peak {
		s.peak = info.RSS
	}
}

// Stop terminates sampling and returns the peak resident memory in bytes.
func (s *memSampler) Stop() uint64 {
	close(s.stop)
	<-s.done
	return s.peak
}

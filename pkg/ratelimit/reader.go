package ratelimit

import (
	"io"
	"sync"
	"time"
)

// minBucket keeps small limits from degrading into tiny reads
const minBucket = 64 * 1024

// Limiter is a token bucket shared by every copy of one run, so the limit
// applies to the total transfer rate.
type Limiter struct {
	bytesPerSecond int64
	bucketSize     int64

	mu         sync.Mutex
	tokens     int64
	lastUpdate time.Time
}

// NewLimiter returns a limiter for bytesPerSecond, or nil (no limiting) when
// the rate is not positive.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	bucketSize := bytesPerSecond
	if bucketSize < minBucket {
		bucketSize = minBucket
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		bucketSize:     bucketSize,
		tokens:         bucketSize,
		lastUpdate:     time.Now(),
	}
}

// Rate returns the configured limit in bytes per second; 0 for a nil limiter
func (l *Limiter) Rate() int64 {
	if l == nil {
		return 0
	}
	return l.bytesPerSecond
}

// Reader wraps an io.Reader with bandwidth limiting
type Reader struct {
	reader  io.Reader
	limiter *Limiter
}

// NewReader wraps reader; a nil limiter returns reader unchanged
func NewReader(reader io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return reader
	}
	return &Reader{reader: reader, limiter: limiter}
}

// Read waits for enough tokens before reading at most one bucket of data
func (r *Reader) Read(p []byte) (int, error) {
	if int64(len(p)) > r.limiter.bucketSize {
		p = p[:r.limiter.bucketSize]
	}

	r.limiter.wait(int64(len(p)))

	n, err := r.reader.Read(p)
	r.limiter.consume(int64(n))
	return n, err
}

// wait blocks until needed tokens are available
func (l *Limiter) wait(needed int64) {
	for {
		l.mu.Lock()
		l.refill(time.Now())
		if l.tokens >= needed {
			l.mu.Unlock()
			return
		}
		deficit := needed - l.tokens
		l.mu.Unlock()

		delay := time.Duration(float64(deficit) / float64(l.bytesPerSecond) * float64(time.Second))
		if delay < time.Millisecond {
			delay = time.Millisecond
		}
		time.Sleep(delay)
	}
}

// refill adds tokens for the time elapsed since the last update; caller holds mu
func (l *Limiter) refill(now time.Time) {
	add := int64(now.Sub(l.lastUpdate).Seconds() * float64(l.bytesPerSecond))
	if add <= 0 {
		return
	}
	l.tokens += add
	if l.tokens > l.bucketSize {
		l.tokens = l.bucketSize
	}
	l.lastUpdate = now
}

func (l *Limiter) consume(n int64) {
	if n <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens -= n
	if l.tokens < 0 {
		l.tokens = 0
	}
}

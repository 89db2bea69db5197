package ratelimit

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
)

func TestNewLimiter(t *testing.T) {
	tests := []struct {
		name       string
		rate       int64
		wantNil    bool
		wantBucket int64
	}{
		{"Zero", 0, true, 0},
		{"Negative", -100, true, 0},
		{"SmallRateUsesMinimumBucket", 1000, false, minBucket},
		{"LargeRateBucketsOneSecond", 100 << 20, false, 100 << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewLimiter(tt.rate)
			if (limiter == nil) != tt.wantNil {
				t.Fatalf("NewLimiter(%d) nil = %v, want %v", tt.rate, limiter == nil, tt.wantNil)
			}
			if limiter != nil && limiter.bucketSize != tt.wantBucket {
				t.Errorf("bucketSize = %d, want %d", limiter.bucketSize, tt.wantBucket)
			}
			if limiter.Rate() != max(tt.rate, 0) {
				t.Errorf("Rate() = %d, want %d", limiter.Rate(), tt.rate)
			}
		})
	}
}

func TestNewReaderPassthrough(t *testing.T) {
	src := strings.NewReader("data")
	if NewReader(src, nil) != io.Reader(src) {
		t.Error("NewReader() with nil limiter should return the original reader")
	}
}

func TestReaderCopiesEverything(t *testing.T) {
	data := bytes.Repeat([]byte("shelfsync"), 20000)
	limiter := NewLimiter(100 << 20)

	var out bytes.Buffer
	n, err := io.Copy(&out, NewReader(bytes.NewReader(data), limiter))
	if err != nil {
		t.Fatalf("io.Copy() error = %v", err)
	}
	if n != int64(len(data)) || !bytes.Equal(out.Bytes(), data) {
		t.Errorf("copied %d bytes, want %d identical bytes", n, len(data))
	}
}

func TestReaderLimitsRate(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	// the bucket starts full (64KB), so 64KB extra at 64KB/s needs ~1s
	limiter := NewLimiter(minBucket)
	data := make([]byte, 2*minBucket)

	start := time.Now()
	if _, err := io.Copy(io.Discard, NewReader(bytes.NewReader(data), limiter)); err != nil {
		t.Fatalf("io.Copy() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 700*time.Millisecond {
		t.Errorf("transfer took %s, expected throttling to about 1s", elapsed)
	}
}

func TestParseBandwidth(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"1024", 1024, false},
		{"512K", 512 << 10, false},
		{"10M", 10 << 20, false},
		{"10mb", 10 << 20, false},
		{"1G", 1 << 30, false},
		{"1.5M", 3 << 19, false},
		{"2MB/s", 2 << 20, false},
		{"fast", 0, true},
		{"-1M", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBandwidth(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBandwidth(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBandwidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

package xio

import (
	"io"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// NewMeasuredReader wraps a reader and tracks how many bytes are read from it.
func NewMeasuredReader(r io.Reader) *MeasuredReader {
	return &MeasuredReader{wrap: r, rate: newRateCounter()}
}

// MeasuredReader counts the bytes read through it.
type MeasuredReader struct {
	wrap io.Reader
	rate *rateCounter
}

// BytesPer tells the rate per period at which bytes were read since last
// measurement.
func (m *MeasuredReader) BytesPer(period time.Duration) float64 {
	return m.rate.Rate(period)
}

// Total number of bytes that have been read.
func (m *MeasuredReader) Total() int64 {
	return m.rate.Total()
}

func (m *MeasuredReader) Read(b []byte) (n int, err error) {
	n, err = m.wrap.Read(b)
	m.rate.Add(n)
	return n, err
}

// NewMeasuredWriter wraps a writer and tracks how many bytes are written to it.
func NewMeasuredWriter(w io.Writer) *MeasuredWriter {
	return &MeasuredWriter{wrap: w, rate: newRateCounter()}
}

// MeasuredWriter counts the bytes written through it.
type MeasuredWriter struct {
	wrap io.Writer
	rate *rateCounter
}

// BytesPer tells the rate per period at which bytes were written since last
// measurement.
func (m *MeasuredWriter) BytesPer(period time.Duration) float64 {
	return m.rate.Rate(period)
}

// Total number of bytes that have been written.
func (m *MeasuredWriter) Total() int64 {
	return m.rate.Total()
}

func (m *MeasuredWriter) Write(b []byte) (n int, err error) {
	n, err = m.wrap.Write(b)
	m.rate.Add(n)
	return n, err
}

func newRateCounter() *rateCounter {
	return newCounter(clock.New())
}

func newCounter(clk clock.Clock) *rateCounter {
	return &rateCounter{clock: clk}
}

// rateCounter tracks a byte count and the throughput since the last
// measurement.
type rateCounter struct {
	sync.RWMutex
	clock clock.Clock

	count     int64
	lastCount int64
	lastCheck time.Time
}

func (c *rateCounter) Add(n int) {
	c.Lock()
	defer c.Unlock()

	c.count += int64(n)
	if c.lastCheck.IsZero() {
		c.lastCheck = c.clock.Now()
	}
}

func (c *rateCounter) Total() int64 {
	c.RLock()
	defer c.RUnlock()
	return c.count
}

// Rate returns the throughput per period since the previous call and
// starts a new measurement window.
func (c *rateCounter) Rate(period time.Duration) float64 {
	c.Lock()
	defer c.Unlock()

	now := c.clock.Now()
	between := now.Sub(c.lastCheck)
	changed := c.count - c.lastCount
	rate := float64(changed*int64(period)) / float64(between)

	c.lastCount = c.count
	c.lastCheck = now
	return rate
}

package simulation

import "time"

// Clock supplies the absolute time that drives the orbits.
type Clock interface {
	// NowMillis returns milliseconds since an arbitrary, fixed epoch.
	NowMillis() float64
}

// WallClock reads the host clock; its epoch is the Unix epoch.
type WallClock struct{}

func (WallClock) NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}

// FixedClock always returns the same instant.
type FixedClock float64

func (c FixedClock) NowMillis() float64 {
	return float64(c)
}

// SPDX-License-Identifier: GPL-2.0-or-later

package qtime

import (
	"time"
)

var (
	startTime = time.Now()
)

func QTime() time.Duration {
	return time.Now().Sub(startTime)
}

// Source reports seconds since some fixed start.
type Source interface {
	Seconds() float64
}

type wall struct{}

func (wall) Seconds() float64 {
	return QTime().Seconds()
}

// Wall is the process clock.
var Wall Source = wall{}

// Manual is a clock that only moves when told to. Replays use it so
// every run sees the same times.
type Manual struct {
	now time.Duration
}

func (m *Manual) Advance(d time.Duration) {
	m.now += d
}

func (m *Manual) Seconds() float64 {
	return m.now.Seconds()
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package history

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "cogentcore.org/xyzedit/history"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type counters struct {
	entries metric.Int64Counter
	flushes metric.Int64Counter
}

func newCounters() (counters, error) {
	m := meter()
	entries, err := m.Int64Counter("xyzedit.history.entries",
		metric.WithDescription("History entries forwarded to the document store"))
	if err != nil {
		return counters{}, fmt.Errorf("creating entries counter: %w", err)
	}
	flushes, err := m.Int64Counter("xyzedit.history.flushes",
		metric.WithDescription("Coalesced per-frame transform flushes"))
	if err != nil {
		return counters{}, fmt.Errorf("creating flushes counter: %w", err)
	}
	return counters{entries: entries, flushes: flushes}, nil
}

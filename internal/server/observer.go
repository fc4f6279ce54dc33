package server

import (
	"github.com/nainya/gazette/internal/logger"
	"github.com/nainya/gazette/internal/metrics"
	"github.com/nainya/gazette/pkg/source"
)

// SourceObserver reports upstream loads to logs and metrics
type SourceObserver struct {
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewSourceObserver creates an observer; either argument may be nil
func NewSourceObserver(log *logger.Logger, m *metrics.Metrics) *SourceObserver {
	if log == nil {
		log = logger.Nop()
	}
	return &SourceObserver{log: log, metrics: m}
}

// ObserveLoad implements source.Observer
func (o *SourceObserver) ObserveLoad(res source.Result) {
	o.log.LogFetch(string(res.Origin), res.Duration, len(res.Documents), res.Dropped, res.Err)
	if o.metrics != nil {
		o.metrics.RecordSourceLoad(string(res.Origin), res.Duration, len(res.Documents), res.Dropped)
	}
}

// ObserveDrop implements source.Observer
func (o *SourceObserver) ObserveDrop(index int, err error) {
	o.log.LogDrop(index, err)
}

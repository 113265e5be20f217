package journal

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "journaldb"
	metricsSubsystem = "journal"
)

// journalMetrics holds the counters of a journal.
type journalMetrics struct {
	reads          prometheus.Counter
	cacheHits      prometheus.Counter
	backingLookups prometheus.Counter
	writes         prometheus.Counter
	deletes        prometheus.Counter
	restores       prometheus.Counter
	preservedReads prometheus.Counter
	commits        prometheus.Counter
	committedKeys  prometheus.Counter
}

// newJournalMetrics creates the counters and registers them to reg if not nil.
// Journals registered to the same registerer share counters.
func newJournalMetrics(reg prometheus.Registerer) (*journalMetrics, error) {
	m := &journalMetrics{
		reads:          newCounter("reads_total", "Number of reads."),
		cacheHits:      newCounter("cache_hits_total", "Number of reads served by pending changes."),
		backingLookups: newCounter("backing_lookups_total", "Number of reads served by the backing store."),
		writes:         newCounter("writes_total", "Number of writes."),
		deletes:        newCounter("deletes_total", "Number of deletes."),
		restores:       newCounter("restores_total", "Number of restores."),
		preservedReads: newCounter("preserved_reads_total", "Number of cache reads kept across restores."),
		commits:        newCounter("commits_total", "Number of non-empty commits."),
		committedKeys:  newCounter("committed_keys_total", "Number of keys resolved by commits."),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []*prometheus.Counter{
		&m.reads, &m.cacheHits, &m.backingLookups, &m.writes, &m.deletes,
		&m.restores, &m.preservedReads, &m.commits, &m.committedKeys,
	} {
		err := reg.Register(*c)
		if err != nil {
			are := prometheus.AlreadyRegisteredError{}
			if !errors.As(err, &are) {
				return nil, err
			}
			existing, ok := are.ExistingCollector.(prometheus.Counter)
			if !ok {
				return nil, err
			}
			*c = existing
		}
	}
	return m, nil
}

func newCounter(name string, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      name,
		Help:      help,
	})
}

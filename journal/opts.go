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

import "github.com/prometheus/client_golang/prometheus"

// Opts is the options for journal.
type Opts struct {
	// Initial capacity of the change log
	InitialCapacity int

	// Keep lone cache reads when restoring
	PreserveCacheReads bool

	// Registerer for the journal metrics, nil to skip registration
	Registerer prometheus.Registerer
}

package backing

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
	"time"
)

func (s *backingStoreImpl) gcRoutine() {
	defer func() {
		s.exitLoop <- true
	}()

	if s.bds == nil || s.opts.GCPeriod <= 0 {
		// Nothing to collect, wait for shutdown.
		<-s.routineCtx.Done()
		return
	}

	after := time.NewTicker(s.opts.GCPeriod)
	defer after.Stop()
	for {
		select {
		case <-s.routineCtx.Done():
			log.Infof("Exit GC routine")
			return
		case <-after.C:
			log.Infof("Start GC round")
			start := time.Now()
			err := s.bds.CollectGarbage(s.routineCtx)
			if err != nil {
				log.Warnf("GC - Fail to collect garbage: %v", err.Error())
				continue
			}
			log.Infof("GC round finished in %v", time.Since(start))
		}
		if s.routineCtx.Err() != nil {
			log.Warnf("Exit GC routine due to context cancelled: %v", s.routineCtx.Err().Error())
			return
		}
	}
}

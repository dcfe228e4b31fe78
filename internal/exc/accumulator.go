// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import "sync"

// Reporter is used to accumulate and report errors while problems are parsed.
// This is modeled after the protocompile interface of the same name. A parse
// reports its failure here and stops; with several problems in flight the
// final set is shown to the user once all of them have finished.
type Reporter interface {
	// Report adds the given record to the set. If this method returns an error
	// then the given error is considered fatal.
	Report(Exception) Exception
	// Reported returns the set of accumulated exceptions.
	Reported() []Exception
}

// NewReporter returns a concurrent-safe implementation of Reporter. Codes
// listed in nonFatal are recorded without being returned as fatal.
func NewReporter(nonFatal []string) Reporter {
	nf := make(map[string]bool, len(defaultNonFatal))
	for k := range defaultNonFatal {
		nf[k] = true
	}
	for _, k := range nonFatal {
		nf[k] = true
	}
	return &reporterLock{
		Reporter: &reporter{
			nonFatal: nf,
		},
		lock: &sync.Mutex{},
	}
}

type reporter struct {
	reported []Exception
	nonFatal map[string]bool
}

func (r *reporter) Report(e Exception) Exception {
	r.reported = append(r.reported, e)
	if r.nonFatal[e.Code()] {
		return nil
	}
	return e
}

func (r *reporter) Reported() []Exception {
	out := make([]Exception, len(r.reported))
	copy(out, r.reported)
	return out
}

type reporterLock struct {
	Reporter
	lock sync.Locker
}

func (r *reporterLock) Report(e Exception) Exception {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.Reporter.Report(e)
}

func (r *reporterLock) Reported() []Exception {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.Reporter.Reported()
}

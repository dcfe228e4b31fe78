// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Options is the store that vampire(option, name, value) directives write
// to. It is safe for concurrent use since several problems may be parsed at
// once.
type Options struct {
	lock   sync.Mutex
	values map[string]string
}

// NewOptions returns a store seeded with the given values.
func NewOptions(seed map[string]string) *Options {
	o := &Options{values: make(map[string]string, len(seed))}
	for k, v := range seed {
		o.values[k] = v
	}
	return o
}

func (o *Options) Set(name string, value string) error {
	if err := checkOptionName(name); err != nil {
		return err
	}
	if value == "" {
		return fmt.Errorf("option %s needs a value", name)
	}
	o.lock.Lock()
	defer o.lock.Unlock()
	if prev, ok := o.values[name]; ok && prev != value {
		log.Debugf("option %s changed from %s to %s", name, prev, value)
	}
	o.values[name] = value
	return nil
}

func (o *Options) Get(name string) (string, bool) {
	o.lock.Lock()
	defer o.lock.Unlock()
	v, ok := o.values[name]
	return v, ok
}

// Names lists the options that have a value, sorted.
func (o *Options) Names() []string {
	o.lock.Lock()
	defer o.lock.Unlock()
	out := make([]string, 0, len(o.values))
	for k := range o.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// checkOptionName accepts the lower case identifiers option names are
// written as.
func checkOptionName(name string) error {
	if name == "" {
		return fmt.Errorf("empty option name")
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return fmt.Errorf("invalid option name %q", name)
		}
	}
	return nil
}

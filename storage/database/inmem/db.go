// Package inmemdb provides in-memory repositories for local development and
// tests.
package inmemdb

import (
	"sync"

	"github.com/apexdrive/console/core/analytics"
	"github.com/apexdrive/console/core/event"
)

type (
	eventTable struct {
		mutex sync.RWMutex
		table map[string]*event.RawEvent
	}

	allocationTable struct {
		mutex sync.RWMutex
		table map[string]*event.Allocation
	}

	reportTable struct {
		mutex sync.RWMutex
		table map[string]*analytics.Report // keyed by event id
	}

	DB struct {
		event      *eventTable
		allocation *allocationTable
		report     *reportTable
	}
)

func Open() (*DB, error) {
	db := &DB{
		event:      &eventTable{table: make(map[string]*event.RawEvent)},
		allocation: &allocationTable{table: make(map[string]*event.Allocation)},
		report:     &reportTable{table: make(map[string]*analytics.Report)},
	}
	return db, nil
}

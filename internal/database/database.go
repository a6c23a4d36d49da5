// Package database holds the in-memory store of near-Earth objects and close
// approaches, links the two collections, and runs queries over the linked
// records.
//
// The store is built once from the loaded collections and is read-only for
// the remainder of the process. Linking is the only mutation: each approach
// gets its object pointer and each object gets its ordered approach list.
package database

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/neoscout/neoscout/internal/filters"
	"github.com/neoscout/neoscout/internal/logger"
	"github.com/neoscout/neoscout/internal/models"
)

// Error codes for store construction.
const (
	ErrCodeLinkUnresolved       = "LINK_UNRESOLVED"
	ErrCodeDuplicateDesignation = "DUPLICATE_DESIGNATION"
)

// LinkError reports a data integrity violation found while wiring approaches
// to their objects. It is fatal: a dangling reference would corrupt every
// downstream serialization.
type LinkError struct {
	// Code is one of the ErrCode constants above.
	Code string
	// Designation is the offending primary designation.
	Designation string
	// Index is the 0-based position of the offending record in its collection.
	Index int
}

func (e *LinkError) Error() string {
	switch e.Code {
	case ErrCodeDuplicateDesignation:
		return fmt.Sprintf("%s: object %d reuses designation %q", e.Code, e.Index, e.Designation)
	default:
		return fmt.Sprintf("%s: approach %d references unknown designation %q", e.Code, e.Index, e.Designation)
	}
}

// NEODatabase indexes near-Earth objects by designation and by name and owns
// the full set of linked close approaches.
type NEODatabase struct {
	neos       []*models.NearEarthObject
	approaches []*models.CloseApproach

	byDesignation map[string]*models.NearEarthObject
	byName        map[string]*models.NearEarthObject
}

// New builds the store from the loaded collections and performs the one-time
// link step: every approach's designation is resolved against the object
// index, the approach receives its object pointer, and the object's approach
// list grows in input order.
//
// Returns a LinkError when a designation is duplicated across objects or an
// approach references an object that was never loaded.
func New(neos []*models.NearEarthObject, approaches []*models.CloseApproach) (*NEODatabase, error) {
	db := &NEODatabase{
		neos:          neos,
		approaches:    approaches,
		byDesignation: make(map[string]*models.NearEarthObject, len(neos)),
		byName:        make(map[string]*models.NearEarthObject, len(neos)),
	}

	for i, neo := range neos {
		if _, exists := db.byDesignation[neo.Designation]; exists {
			return nil, &LinkError{Code: ErrCodeDuplicateDesignation, Designation: neo.Designation, Index: i}
		}
		db.byDesignation[neo.Designation] = neo
		if neo.Name != "" {
			db.byName[neo.Name] = neo
		}
	}

	for i, ca := range approaches {
		neo, ok := db.byDesignation[ca.Designation]
		if !ok {
			return nil, &LinkError{Code: ErrCodeLinkUnresolved, Designation: ca.Designation, Index: i}
		}
		ca.NEO = neo
		neo.Approaches = append(neo.Approaches, ca)
	}

	logger.Debug("database linked",
		slog.Int("neos", len(neos)),
		slog.Int("approaches", len(approaches)),
	)
	return db, nil
}

// GetByDesignation returns the NEO with the given primary designation, or nil
// when no such object exists.
func (db *NEODatabase) GetByDesignation(designation string) *models.NearEarthObject {
	return db.byDesignation[designation]
}

// GetByName returns the NEO with the given IAU name, or nil when no such
// object exists. Unnamed objects are not indexed by name.
func (db *NEODatabase) GetByName(name string) *models.NearEarthObject {
	if name == "" {
		return nil
	}
	return db.byName[name]
}

// NEOs returns all loaded objects in input order.
func (db *NEODatabase) NEOs() []*models.NearEarthObject {
	return db.neos
}

// Approaches returns all loaded approaches in input order.
func (db *NEODatabase) Approaches() []*models.CloseApproach {
	return db.approaches
}

// Query returns a lazy sequence of the approaches satisfying every predicate
// (logical AND, short-circuiting on the first failure). An empty predicate
// slice matches every approach. Records are produced in input order and only
// as far as the consumer iterates, so the sequence composes directly with
// filters.Limit.
func (db *NEODatabase) Query(preds []filters.Predicate) iter.Seq[*models.CloseApproach] {
	return func(yield func(*models.CloseApproach) bool) {
		for _, ca := range db.approaches {
			if !matchesAll(ca, preds) {
				continue
			}
			if !yield(ca) {
				return
			}
		}
	}
}

func matchesAll(ca *models.CloseApproach, preds []filters.Predicate) bool {
	for _, p := range preds {
		if !p.Matches(ca) {
			return false
		}
	}
	return true
}

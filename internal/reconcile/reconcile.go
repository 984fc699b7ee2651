// Package reconcile turns validated records into player inserts and updates
// against the players already stored for a roster.
package reconcile

import (
	"github.com/google/uuid"

	"rosterscan/internal/domain"
	"rosterscan/internal/validator"
)

// Result lists the players to insert and the existing players that changed.
type Result struct {
	Inserted []domain.Player
	Updated  []domain.Player
}

// Reconcile matches each record to an existing player by identity key.
// Matches are updated in place of the stored copy and reported in Updated
// only when a field actually changed; unmatched records become new players.
// existing is not modified.
func Reconcile(valid []validator.Record, existing []domain.Player, rosterID uuid.UUID) Result {
	index := make(map[string]int, len(existing))
	players := make([]domain.Player, len(existing))
	for i := range existing {
		players[i] = existing[i]
		players[i].Attributes = existing[i].Attributes.Clone()
		index[players[i].IdentityKey()] = i
	}

	var res Result
	changed := map[int]bool{}
	inserted := map[string]int{}
	for _, rec := range valid {
		key := rec.IdentityKey()
		if i, ok := index[key]; ok {
			if apply(&players[i], rec) {
				changed[i] = true
			}
			continue
		}
		// Repeated records within one batch fold into the pending insert.
		if j, ok := inserted[key]; ok {
			apply(&res.Inserted[j], rec)
			continue
		}
		inserted[key] = len(res.Inserted)
		res.Inserted = append(res.Inserted, newPlayer(rec, rosterID))
	}

	for i := range players {
		if changed[i] {
			res.Updated = append(res.Updated, players[i])
		}
	}
	return res
}

func newPlayer(rec validator.Record, rosterID uuid.UUID) domain.Player {
	return domain.Player{
		ID:         uuid.New(),
		RosterID:   rosterID,
		FirstName:  rec.FirstName(),
		LastName:   rec.LastName(),
		Suffix:     rec.Suffix(),
		Position:   rec.Position(),
		Jersey:     rec.Jersey(),
		Overall:    rec.Overall(),
		Attributes: rec.Attributes(),
	}
}

// apply merges rec into p and reports whether p changed.
func apply(p *domain.Player, rec validator.Record) bool {
	changed := false
	if p.Attributes == nil {
		p.Attributes = domain.Attributes{}
	}
	for k, v := range rec.Attributes() {
		if old, ok := p.Attributes[k]; !ok || old != v {
			p.Attributes[k] = v
			changed = true
		}
	}
	if rec.HasJersey() && p.Jersey != rec.Jersey() {
		p.Jersey = rec.Jersey()
		changed = true
	}
	if p.Overall != rec.Overall() {
		p.Overall = rec.Overall()
		changed = true
	}
	if p.Suffix == "" && rec.Suffix() != "" {
		p.Suffix = rec.Suffix()
		changed = true
	}
	if p.FirstName == "" && rec.FirstName() != "" {
		p.FirstName = rec.FirstName()
		changed = true
	}
	return changed
}

package reconcile_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterscan/internal/domain"
	"rosterscan/internal/reconcile"
	"rosterscan/internal/validator"
)

func records(t *testing.T, candidates ...domain.RawCandidate) []validator.Record {
	t.Helper()
	res := validator.Validate(candidates)
	require.True(t, res.OK(), "fixture candidates must be valid: %+v", res.Errors)
	return res.Valid
}

func candidate(first, last, pos string, jersey, overall int, hasJersey bool) domain.RawCandidate {
	c := domain.RawCandidate{FirstName: first, LastName: last, Position: pos, Jersey: jersey, HasJersey: hasJersey}
	c.SetOverall(overall)
	return c
}

func TestReconcile_InsertsUnmatched(t *testing.T) {
	rosterID := uuid.New()
	recs := records(t, candidate("John", "Smith", "QB", 12, 85, true))

	res := reconcile.Reconcile(recs, nil, rosterID)

	require.Len(t, res.Inserted, 1)
	assert.Empty(t, res.Updated)
	p := res.Inserted[0]
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, rosterID, p.RosterID)
	assert.Equal(t, "Smith", p.LastName)
	assert.Equal(t, 12, p.Jersey)
	assert.Equal(t, 85, p.Overall)
	assert.Equal(t, domain.Attributes{"OVR": 85}, p.Attributes)
}

func TestReconcile_UpdatesMatch(t *testing.T) {
	rosterID := uuid.New()
	existing := []domain.Player{{
		ID: uuid.New(), RosterID: rosterID,
		FirstName: "John", LastName: "Smith", Position: "QB",
		Jersey: 12, Overall: 80,
		Attributes: domain.Attributes{"OVR": 80, "THP": 90},
	}}
	in := candidate("john", "SMITH", "QB", 0, 84, false)
	in.Attributes["SPD"] = 70
	in.Suffix = "Jr."

	res := reconcile.Reconcile(records(t, in), existing, rosterID)

	assert.Empty(t, res.Inserted)
	require.Len(t, res.Updated, 1)
	p := res.Updated[0]
	assert.Equal(t, existing[0].ID, p.ID)
	assert.Equal(t, 12, p.Jersey, "jersey kept when the record has none")
	assert.Equal(t, 84, p.Overall)
	assert.Equal(t, "Jr.", p.Suffix)
	assert.Equal(t, domain.Attributes{"OVR": 84, "THP": 90, "SPD": 70}, p.Attributes)
	assert.Equal(t, domain.Attributes{"OVR": 80, "THP": 90}, existing[0].Attributes, "existing is not modified")
}

func TestReconcile_UpdatesJerseyWhenPresent(t *testing.T) {
	existing := []domain.Player{{ID: uuid.New(), FirstName: "John", LastName: "Smith", Position: "QB", Jersey: 12, Overall: 85,
		Attributes: domain.Attributes{"OVR": 85}}}

	res := reconcile.Reconcile(records(t, candidate("John", "Smith", "QB", 7, 85, true)), existing, uuid.New())

	require.Len(t, res.Updated, 1)
	assert.Equal(t, 7, res.Updated[0].Jersey)
}

func TestReconcile_Idempotent(t *testing.T) {
	rosterID := uuid.New()
	existing := []domain.Player{{ID: uuid.New(), RosterID: rosterID, FirstName: "John", LastName: "Smith", Position: "QB",
		Jersey: 12, Overall: 80, Attributes: domain.Attributes{"OVR": 80}}}
	recs := records(t,
		candidate("John", "Smith", "QB", 12, 85, true),
		candidate("Tim", "Ray", "WR", 14, 80, true),
	)

	first := reconcile.Reconcile(recs, existing, rosterID)
	require.Len(t, first.Updated, 1)
	require.Len(t, first.Inserted, 1)

	stored := append(first.Updated, first.Inserted...)
	second := reconcile.Reconcile(recs, stored, rosterID)

	assert.Empty(t, second.Inserted)
	assert.Empty(t, second.Updated)
}

func TestReconcile_DuplicateRecordsInsertOnce(t *testing.T) {
	a := candidate("John", "Smith", "QB", 12, 85, true)
	b := candidate("John", "Smith", "QB", 12, 86, true)
	b.Attributes["SPD"] = 70

	res := reconcile.Reconcile(records(t, a, b), nil, uuid.New())

	require.Len(t, res.Inserted, 1)
	assert.Equal(t, 86, res.Inserted[0].Overall)
	assert.Equal(t, 70, res.Inserted[0].Attributes["SPD"])
}

func TestReconcile_DifferentPositionIsDifferentPlayer(t *testing.T) {
	existing := []domain.Player{{ID: uuid.New(), FirstName: "John", LastName: "Smith", Position: "QB", Overall: 85,
		Attributes: domain.Attributes{"OVR": 85}}}

	res := reconcile.Reconcile(records(t, candidate("John", "Smith", "WR", 12, 85, true)), existing, uuid.New())

	assert.Len(t, res.Inserted, 1)
	assert.Empty(t, res.Updated)
}

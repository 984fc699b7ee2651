package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Attributes maps a short attribute code (e.g. "SPD") to its rating.
// It is stored as JSONB.
type Attributes map[string]int

// Value implements driver.Valuer.
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *Attributes) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = Attributes{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("domain.Attributes: unsupported scan type %T", src)
	}
	out := Attributes{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("domain.Attributes: %w", err)
	}
	*a = out
	return nil
}

// Clone returns an independent copy of the map.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// StringList is a list of strings stored as a JSONB array.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("domain.StringList: unsupported scan type %T", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("domain.StringList: %w", err)
	}
	*l = out
	return nil
}

// Player is a persisted roster record.
type Player struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	RosterID   uuid.UUID  `db:"roster_id" json:"roster_id"`
	FirstName  string     `db:"first_name" json:"first_name"`
	LastName   string     `db:"last_name" json:"last_name"`
	Suffix     string     `db:"suffix" json:"suffix"`
	Position   string     `db:"position" json:"position"`
	Jersey     int        `db:"jersey" json:"jersey"`
	Overall    int        `db:"overall" json:"overall"`
	Attributes Attributes `db:"attributes" json:"attributes"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// IdentityKey returns the deduplication key of the stored player.
func (p *Player) IdentityKey() string {
	return IdentityKey(p.FirstName, p.LastName, p.Position)
}

// UploadJob is one roster screenshot upload and its processing outcome.
type UploadJob struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	RosterID         uuid.UUID       `db:"roster_id" json:"roster_id"`
	Backend          OCRBackend      `db:"backend" json:"backend"`
	ImageKeys        StringList      `db:"image_keys" json:"image_keys"`
	Status           JobStatus       `db:"status" json:"status"`
	Error            string          `db:"error" json:"error,omitempty"`
	InsertedCount    int             `db:"inserted_count" json:"inserted_count"`
	UpdatedCount     int             `db:"updated_count" json:"updated_count"`
	Candidates       json.RawMessage `db:"candidates" json:"candidates,omitempty"`
	ValidationErrors json.RawMessage `db:"validation_errors" json:"validation_errors,omitempty"`
	Attempts         int             `db:"attempts" json:"attempts"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
	CompletedAt      *time.Time      `db:"completed_at" json:"completed_at,omitempty"`
}

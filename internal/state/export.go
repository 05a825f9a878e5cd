package state

import (
	"encoding/json"
	"errors"
	"time"

	"levelup/internal/model"
)

// AppName is the fixed literal stamped into exports and checked on import,
// so a backup from some other app can't be restored over this one.
const AppName = "solo-levelup"

const exportVersion = 1

var (
	ErrWrongApp = errors.New("import: document does not belong to this app")
	ErrNoData   = errors.New("import: document has no data")
)

type ExportDoc struct {
	Version    int         `json:"version"`
	ExportedAt time.Time   `json:"exported_at"`
	AppName    string      `json:"app_name"`
	Data       model.State `json:"data"` // full state; settings ride inside
}

func Export(s *model.State, now time.Time) ExportDoc {
	return ExportDoc{
		Version:    exportVersion,
		ExportedAt: now.UTC(),
		AppName:    AppName,
		Data:       *s.Clone(),
	}
}

func ExportJSON(s *model.State, now time.Time) ([]byte, error) {
	return json.MarshalIndent(Export(s, now), "", "  ")
}

type importEnvelope struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	AppName    string          `json:"app_name"`
	Data       json.RawMessage `json:"data"`
}

// Import parses an exported document and returns the contained state,
// migrated and validated. Nothing is applied anywhere: the caller decides
// what to do with the result, so a rejected import can never half-mutate
// the live document.
func Import(b []byte, now time.Time) (*model.State, error) {
	var env importEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, errors.New("import: not a valid export document")
	}
	if env.AppName != AppName {
		return nil, ErrWrongApp
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, ErrNoData
	}

	var s model.State
	if err := json.Unmarshal(env.Data, &s); err != nil {
		return nil, errors.New("import: malformed data payload")
	}
	if err := Migrate(&s, now); err != nil {
		return nil, err
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	s.Normalize()
	return &s, nil
}

package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// CurrentVersion is the envelope version written by Save.
const CurrentVersion = 1

var (
	errEmptyPayload       = errors.New("empty payload")
	errUnsupportedVersion = errors.New("unsupported slot version")
)

type envelope struct {
	Version int             `json:"version"`
	Seq     int64           `json:"seq"`
	Data    json.RawMessage `json:"data"`
}

type migration func(envelope) (envelope, error)

// migrations[v] upgrades an envelope from version v to v+1.
var migrations = map[int]migration{
	0: func(env envelope) (envelope, error) {
		// Bare arrays carried no sequence; the collection derives it from ids.
		env.Version = 1
		env.Seq = 0
		return env, nil
	},
}

func decodeEnvelope(payload []byte) (envelope, bool, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return envelope{}, false, errEmptyPayload
	}

	var env envelope
	if trimmed[0] == '[' {
		env = envelope{Version: 0, Data: json.RawMessage(trimmed)}
	} else {
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return envelope{}, false, err
		}
		if env.Version < 1 || env.Version > CurrentVersion {
			return envelope{}, false, fmt.Errorf("%w: %d", errUnsupportedVersion, env.Version)
		}
		if len(env.Data) == 0 {
			return envelope{}, false, errEmptyPayload
		}
	}

	migrated := false
	for env.Version < CurrentVersion {
		step, ok := migrations[env.Version]
		if !ok {
			return envelope{}, false, fmt.Errorf("%w: no migration from %d", errUnsupportedVersion, env.Version)
		}
		next, err := step(env)
		if err != nil {
			return envelope{}, false, fmt.Errorf("migrate from %d: %w", env.Version, err)
		}
		env = next
		migrated = true
	}

	return env, migrated, nil
}

func encodeEnvelope(data []byte, seq int64) ([]byte, error) {
	return json.Marshal(envelope{Version: CurrentVersion, Seq: seq, Data: data})
}

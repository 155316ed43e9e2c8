package repository

import (
	"database/sql"
	"encoding/json"
)

// encodeJSON stores list/map columns as JSON text; nil becomes SQL NULL.
func encodeJSON(v any) (any, error) {
	switch t := v.(type) {
	case []string:
		if t == nil {
			return nil, nil
		}
	case map[string]string:
		if t == nil {
			return nil, nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// decodeList tolerates NULL and malformed text; both decode to an empty list.
func decodeList(s sql.NullString) []string {
	out := []string{}
	if !s.Valid || s.String == "" {
		return out
	}
	if err := json.Unmarshal([]byte(s.String), &out); err != nil {
		return []string{}
	}
	return out
}

func decodeMap(s sql.NullString) map[string]string {
	if !s.Valid || s.String == "" {
		return nil
	}
	out := map[string]string{}
	if err := json.Unmarshal([]byte(s.String), &out); err != nil {
		return nil
	}
	return out
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

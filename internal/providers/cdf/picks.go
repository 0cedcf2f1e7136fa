package cdf

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

type rawPick struct {
	Element    *float64 `json:"element"`
	Multiplier *float64 `json:"multiplier"`
}

// decodePicks parses a picks_json column. Some rows were written with Python
// repr rather than JSON, so a literal form is accepted as a fallback.
func decodePicks(raw string) ([]rawPick, error) {
	if strings.TrimSpace(raw) == "" {
		raw = "[]"
	}
	var picks []rawPick
	if err := json.Unmarshal([]byte(raw), &picks); err == nil {
		return picks, nil
	}

	converted, err := pythonLiteralToJSON(raw)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(converted), &picks); err != nil {
		return nil, err
	}
	return picks, nil
}

func mapPickRow(cols map[string]any) ([]league.Pick, error) {
	raw, ok := cols["picks_json"].(string)
	if !ok {
		if cols["picks_json"] != nil {
			return nil, errors.New("picks_json is not a string")
		}
		raw = "[]"
	}
	decoded, err := decodePicks(raw)
	if err != nil {
		return nil, err
	}

	entry, _ := toFloat(cols["entry_id"])
	gameweek := integer(cols, "gameweek")
	out := make([]league.Pick, 0, len(decoded))
	for _, p := range decoded {
		pick := league.Pick{
			ManagerEntryID: int64(entry),
			Gameweek:       gameweek,
			Multiplier:     1,
		}
		if p.Element != nil {
			pick.PlayerID = int(*p.Element)
		}
		if p.Multiplier != nil {
			pick.Multiplier = int(*p.Multiplier)
		}
		out = append(out, pick)
	}
	return out, nil
}

var errBadLiteral = errors.New("malformed python literal")

// pythonLiteralToJSON rewrites a Python list/dict literal into JSON: quotes are
// normalized, True/False/None become JSON keywords and tuples become arrays.
func pythonLiteralToJSON(src string) (string, error) {
	var b strings.Builder
	b.Grow(len(src))

	for i := 0; i < len(src); {
		ch := src[i]
		switch {
		case ch == '\'' || ch == '"':
			end, lit, err := readPyString(src, i)
			if err != nil {
				return "", err
			}
			encoded, _ := json.Marshal(lit)
			b.Write(encoded)
			i = end
		case ch == '(':
			b.WriteByte('[')
			i++
		case ch == ')':
			b.WriteByte(']')
			i++
		case ch >= '0' && ch <= '9':
			j := i
			for j < len(src) && strings.IndexByte("0123456789.eE+-", src[j]) >= 0 {
				j++
			}
			b.WriteString(src[i:j])
			i = j
		case isIdentStart(ch):
			j := i
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			switch src[i:j] {
			case "True":
				b.WriteString("true")
			case "False":
				b.WriteString("false")
			case "None":
				b.WriteString("null")
			default:
				return "", errBadLiteral
			}
			i = j
		default:
			b.WriteByte(ch)
			i++
		}
	}
	return b.String(), nil
}

func readPyString(src string, start int) (int, string, error) {
	quote := src[start]
	var lit strings.Builder
	for i := start + 1; i < len(src); i++ {
		c := src[i]
		if c == '\\' && i+1 < len(src) {
			i++
			switch src[i] {
			case 'n':
				lit.WriteByte('\n')
			case 't':
				lit.WriteByte('\t')
			default:
				lit.WriteByte(src[i])
			}
			continue
		}
		if c == quote {
			return i + 1, lit.String(), nil
		}
		lit.WriteByte(c)
	}
	return 0, "", errBadLiteral
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

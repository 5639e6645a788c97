package category

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type RefKind int

const (
	RefNone RefKind = iota
	RefByID
	RefEmbedded
	RefByName
)

// Ref is the category reference an item carries at the API boundary. The wire
// value may be a number, an object or a name; it is decoded once into one of
// the variants below and never re-inspected downstream.
type Ref struct {
	kind     RefKind
	id       int
	hasID    bool
	embedded Category
	name     string
}

var None = Ref{}

func ByID(id int) Ref {
	return Ref{kind: RefByID, id: id, hasID: true}
}

func Embedded(c Category) Ref {
	return Ref{kind: RefEmbedded, id: c.ID, hasID: true, embedded: c}
}

// embeddedWithoutID is an object that named a category but carried no id.
func embeddedWithoutID(c Category) Ref {
	return Ref{kind: RefEmbedded, embedded: c}
}

func ByName(name string) Ref {
	name = strings.TrimSpace(name)
	if name == "" {
		return None
	}
	return Ref{kind: RefByName, name: name}
}

func (r Ref) Kind() RefKind { return r.kind }

// ID returns the referenced id for ByID and Embedded refs that carry one.
func (r Ref) ID() (int, bool) {
	if r.kind == RefByID || r.kind == RefEmbedded {
		return r.id, r.hasID
	}
	return 0, false
}

// Name returns the free-text name of a ByName ref.
func (r Ref) Name() (string, bool) {
	if r.kind == RefByName {
		return r.name, true
	}
	return "", false
}

// Category returns the embedded category object of an Embedded ref.
func (r Ref) Category() (Category, bool) {
	if r.kind == RefEmbedded {
		return r.embedded, true
	}
	return Category{}, false
}

func (r Ref) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case RefByID:
		return json.Marshal(r.id)
	case RefEmbedded:
		return json.Marshal(r.embedded)
	case RefByName:
		return json.Marshal(r.name)
	default:
		return []byte("null"), nil
	}
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	*r = RefFromJSON(data)
	return nil
}

// RefFromJSON decodes a raw category field. It never fails: shapes it does
// not understand become None.
func RefFromJSON(raw json.RawMessage) Ref {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return None
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return None
		}
		return ByName(s)
	case '{':
		var obj struct {
			ID          json.RawMessage `json:"id"`
			Nome        string          `json:"nome"`
			Name        string          `json:"name"`
			Descricao   string          `json:"descricao"`
			Description string          `json:"description"`
			Ordem       int             `json:"ordem"`
			Ativa       *bool           `json:"ativa"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return None
		}
		c := Category{
			Name:        firstNonEmpty(obj.Nome, obj.Name),
			Description: firstNonEmpty(obj.Descricao, obj.Description),
			Order:       obj.Ordem,
			Active:      obj.Ativa == nil || *obj.Ativa,
		}
		id, ok := ParseID(obj.ID)
		if !ok {
			return embeddedWithoutID(c)
		}
		c.ID = id
		return Embedded(c)
	default:
		if id, ok := ParseID(raw); ok {
			return ByID(id)
		}
		return None
	}
}

// ParseID coerces a JSON number or numeric string into an id. Fractional,
// empty, out of range and non-numeric values are rejected.
func ParseID(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(text)
	}
	if text == "" {
		return 0, false
	}

	if i, err := strconv.Atoi(text); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < math.MinInt || f >= -math.MinInt {
		return 0, false
	}
	return int(f), true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

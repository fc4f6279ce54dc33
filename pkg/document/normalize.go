// ABOUTME: Normalization of loosely-typed source records onto Document
// ABOUTME: Ordered alias lists per field, typed defaults and stable ids

package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field names a target attribute of Document
type Field string

const (
	FieldID          Field = "id"
	FieldType        Field = "type"
	FieldNumber      Field = "number"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldDate        Field = "date"
	FieldURL         Field = "url"
)

// Aliases lists the accepted source keys per field. First present key wins.
var Aliases = map[Field][]string{
	FieldID:          {"id", "_id"},
	FieldType:        {"type", "tipo"},
	FieldNumber:      {"number", "numero", "num"},
	FieldTitle:       {"title", "titulo", "nome"},
	FieldDescription: {"description", "descricao", "desc"},
	FieldDate:        {"date", "data", "created_at"},
	FieldURL:         {"url", "arquivo", "link"},
}

// idNamespace scopes the name-based UUIDs derived for records without an id
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("gazette:document"))

// NormalizeOptions controls defaulting behavior
type NormalizeOptions struct {
	// Now supplies the default date. Defaults to time.Now.
	Now func() time.Time

	// Strict rejects records missing every alias of number or date
	Strict bool
}

// Resolve returns the first present, non-empty alias value for field
func Resolve(raw map[string]any, field Field) (string, bool) {
	for _, key := range Aliases[field] {
		v, ok := raw[key]
		if !ok {
			continue
		}
		if s, ok := scalarString(v); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// Normalize maps one decoded source element onto a Document
func Normalize(elem any, opts NormalizeOptions) (Document, error) {
	raw, ok := elem.(map[string]any)
	if !ok {
		return Document{}, ErrNotObject
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	number, hasNumber := Resolve(raw, FieldNumber)
	date, hasDate := Resolve(raw, FieldDate)
	if opts.Strict {
		if !hasNumber {
			return Document{}, fmt.Errorf("%w: %s", ErrMissingField, FieldNumber)
		}
		if !hasDate {
			return Document{}, fmt.Errorf("%w: %s", ErrMissingField, FieldDate)
		}
	}
	if hasDate {
		date = datePrefix(date)
	} else {
		date = now().Format(DateLayout)
	}

	typ, _ := Resolve(raw, FieldType)
	title, _ := Resolve(raw, FieldTitle)
	description, _ := Resolve(raw, FieldDescription)
	url, _ := Resolve(raw, FieldURL)

	id, hasID := Resolve(raw, FieldID)
	if !hasID {
		id = StableID(number, date)
	}

	return Document{
		ID:          id,
		Type:        ParseType(typ),
		Number:      number,
		Title:       title,
		Description: description,
		Date:        date,
		URL:         url,
	}, nil
}

// StableID derives a deterministic identifier from number and date
func StableID(number, date string) string {
	return uuid.NewSHA1(idNamespace, []byte(number+"|"+date)).String()
}

// datePrefix trims timestamps such as created_at down to YYYY-MM-DD
func datePrefix(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		if _, ok := ParseDate(s[:len(DateLayout)]); ok {
			return s[:len(DateLayout)]
		}
	}
	return s
}

func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		if val == "0" {
			return "", false
		}
		return val.String(), true
	case float64:
		if val == 0 {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		if !val {
			return "", false
		}
		return "true", true
	default:
		return "", false
	}
}

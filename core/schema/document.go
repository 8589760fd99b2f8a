package schema

import "fmt"

// IDField is the key holding a document's identity.
const IDField = "id"

// Document is a loosely typed record as it is stored and queried.
type Document map[string]any

// RecordID returns the document's id, or an empty string when it has none.
func (d Document) RecordID() string {
	switch id := d[IDField].(type) {
	case nil:
		return ""
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

// Field returns the value stored under name. A key holding nil reports false.
func (d Document) Field(name string) (any, bool) {
	v, ok := d[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

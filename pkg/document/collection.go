// ABOUTME: Read-only, ordered document collection held for one page load
// ABOUTME: Lookup by id and per-type counts over the whole collection

package document

import "fmt"

// Collection is an immutable, ordered set of documents
type Collection struct {
	docs []Document
	byID map[string]int
}

// NewCollection copies docs into a collection. Later duplicates of an id
// stay listed but Get returns the first.
func NewCollection(docs []Document) *Collection {
	c := &Collection{
		docs: make([]Document, len(docs)),
		byID: make(map[string]int, len(docs)),
	}
	copy(c.docs, docs)
	for i, d := range c.docs {
		if _, dup := c.byID[d.ID]; !dup {
			c.byID[d.ID] = i
		}
	}
	return c
}

// Len returns the number of documents
func (c *Collection) Len() int {
	return len(c.docs)
}

// All returns a copy of the documents in source order
func (c *Collection) All() []Document {
	out := make([]Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Get retrieves a document by id
func (c *Collection) Get(id string) (Document, error) {
	i, ok := c.byID[id]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.docs[i], nil
}

// CountByType counts documents per type; every type is present in the map
func (c *Collection) CountByType() map[Type]int {
	counts := make(map[Type]int, len(Types))
	for _, t := range Types {
		counts[t] = 0
	}
	for _, d := range c.docs {
		counts[d.Type]++
	}
	return counts
}

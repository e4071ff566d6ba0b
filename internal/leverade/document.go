package leverade

import "encoding/json"

// flexID decodes a resource id that the API serves either as a JSON string
// or as a bare number, normalizing to a string.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// Document is the JSON:API envelope every Leverade response uses.
type Document struct {
	Data     json.RawMessage `json:"data"`
	Included []Resource      `json:"included"`
	Meta     json.RawMessage `json:"meta"`
}

// Resource is one JSON:API resource object. Attributes stay raw so each
// endpoint can decode only the fields it consumes.
type Resource struct {
	ID            flexID                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    json.RawMessage         `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships"`
	Meta          json.RawMessage         `json:"meta"`
}

// Relationship is a JSON:API relationship; Data holds either a single
// resource reference or an array of them.
type Relationship struct {
	Data json.RawMessage `json:"data"`
}

// ResourceRef is a (type, id) pointer to a resource.
type ResourceRef struct {
	ID   flexID `json:"id"`
	Type string `json:"type"`
}

// One decodes a to-one relationship, or nil when absent/null.
func (r Relationship) One() *ResourceRef {
	if len(r.Data) == 0 {
		return nil
	}
	var ref ResourceRef
	if err := json.Unmarshal(r.Data, &ref); err != nil || ref.ID == "" {
		return nil
	}
	return &ref
}

// Many decodes a to-many relationship, or nil when absent/null.
func (r Relationship) Many() []ResourceRef {
	if len(r.Data) == 0 {
		return nil
	}
	var refs []ResourceRef
	if err := json.Unmarshal(r.Data, &refs); err != nil {
		return nil
	}
	return refs
}

// relOne looks up a to-one relationship by name on a resource.
func (res *Resource) relOne(name string) *ResourceRef {
	rel, ok := res.Relationships[name]
	if !ok {
		return nil
	}
	return rel.One()
}

// Index is a (type, id) lookup over a document's included resources,
// built once per response.
type Index struct {
	byKey  map[string]*Resource
	byType map[string][]*Resource
}

func newIndex(included []Resource) *Index {
	ix := &Index{
		byKey:  make(map[string]*Resource, len(included)),
		byType: make(map[string][]*Resource),
	}
	for i := range included {
		res := &included[i]
		ix.byKey[res.Type+"/"+string(res.ID)] = res
		ix.byType[res.Type] = append(ix.byType[res.Type], res)
	}
	return ix
}

// Get returns the resource with the given type and id, or nil.
func (ix *Index) Get(typ, id string) *Resource {
	return ix.byKey[typ+"/"+id]
}

// OfType returns all included resources of a type in document order.
func (ix *Index) OfType(typ string) []*Resource {
	return ix.byType[typ]
}

package linkage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node is a single entity in an account's linkage graph: an account number
// or a synthetic entity id, plus whatever display attributes the analysis
// pipeline attached (label, type, amount aggregates). Only ID is interpreted
// here; everything else rides along untouched.
type Node struct {
	ID    string
	Attrs map[string]interface{}
}

// Link is a weighted edge between two node identifiers. Links carry a
// semantic direction in their attributes, but traversal treats them as
// undirected. Parallel links between the same pair are legal and represent
// distinct transactions.
type Link struct {
	Source string
	Target string
	Attrs  map[string]interface{}
}

// Graph is the full linkage graph loaded from one account's analysis
// artifact. It is read-only for the duration of a request.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// decodeObject unmarshals a JSON object keeping numbers as json.Number so
// 16-digit account identifiers survive a round trip.
func decodeObject(data []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// stringField pulls a string-valued field out of a decoded object. Numeric
// values are accepted and rendered verbatim.
func stringField(raw map[string]interface{}, key string) (string, bool) {
	v, ok := raw[key]
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	default:
		return "", false
	}
}

// UnmarshalJSON decodes a node object, splitting the identifier from the
// open attribute bag
func (n *Node) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}

	id, ok := stringField(raw, "id")
	if !ok {
		return fmt.Errorf("node record has no usable id field")
	}
	delete(raw, "id")

	n.ID = id
	n.Attrs = raw
	return nil
}

// MarshalJSON re-flattens the node into a single JSON object
func (n Node) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(n.Attrs)+1)
	for k, v := range n.Attrs {
		out[k] = v
	}
	out["id"] = n.ID
	return json.Marshal(out)
}

// UnmarshalJSON decodes a link object, splitting the endpoints from the open
// attribute bag
func (l *Link) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}

	source, okSource := stringField(raw, "source")
	target, okTarget := stringField(raw, "target")
	if !okSource || !okTarget {
		return fmt.Errorf("link record has no usable source/target fields")
	}
	delete(raw, "source")
	delete(raw, "target")

	l.Source = source
	l.Target = target
	l.Attrs = raw
	return nil
}

// MarshalJSON re-flattens the link into a single JSON object
func (l Link) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(l.Attrs)+2)
	for k, v := range l.Attrs {
		out[k] = v
	}
	out["source"] = l.Source
	out["target"] = l.Target
	return json.Marshal(out)
}

// fingerprint returns a canonical byte form of the link used for
// exact-duplicate suppression: same endpoints, same attributes. Map keys are
// sorted by the encoder, so attribute order in the source JSON is irrelevant.
func (l Link) fingerprint() string {
	attrs, err := json.Marshal(l.Attrs)
	if err != nil {
		// Attribute bags come from decoded JSON, so this only fires on
		// values that were never on the wire.
		attrs = []byte(fmt.Sprintf("%v", l.Attrs))
	}
	return l.Source + "\x00" + l.Target + "\x00" + string(attrs)
}

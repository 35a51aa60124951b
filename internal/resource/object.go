package resource

// ResourceObject is the wire representation of one record.
type ResourceObject struct {
	ID            string                        `json:"id"`
	Type          string                        `json:"type"`
	Attributes    map[string]any                `json:"attributes,omitempty"`
	Relationships map[string]RelationshipObject `json:"relationships,omitempty"`
	Links         map[string]string             `json:"links,omitempty"`
}

// RelationshipObject is a member of a resource object's relationships.
type RelationshipObject struct {
	Links map[string]string `json:"links,omitempty"`
	Data  *Identifier       `json:"data,omitempty"`
}

// Identifier is a resource identifier object.
type Identifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

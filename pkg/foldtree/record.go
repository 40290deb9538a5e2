package foldtree

import "encoding/json"

// Record is a flat, tag-linked view of a Node for diagnostics and tooling.
// It carries no compatibility guarantee.
type Record struct {
	Start    int   `json:"start"`
	End      int   `json:"end"`
	Level    int   `json:"level"`
	Parent   *int  `json:"parent"`
	Children []int `json:"children"`
	Tag      int   `json:"tag"`
}

// Record flattens the node, replacing links with tags.
func (n *Node) Record() Record {
	rec := Record{
		Start:    n.Start,
		End:      n.End,
		Level:    n.Level,
		Children: make([]int, 0, len(n.Children)),
		Tag:      n.Tag,
	}
	if n.Parent != nil {
		parentTag := n.Parent.Tag
		rec.Parent = &parentTag
	}
	for _, child := range n.Children {
		rec.Children = append(rec.Children, child.Tag)
	}
	return rec
}

// String renders the node's record as JSON.
func (n *Node) String() string {
	data, err := json.Marshal(n.Record())
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Records flattens the forest into pre-order records.
func (t *Tree) Records() []Record {
	records := make([]Record, 0, t.Len())
	t.Walk(VisitorFunc(func(n *Node) bool {
		records = append(records, n.Record())
		return true
	}))
	return records
}

// String renders the tree's records as indented JSON.
func (t *Tree) String() string {
	data, err := json.MarshalIndent(t.Records(), "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}

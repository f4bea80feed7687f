package scene

// FindByID returns the first node, in paint order, carrying id. Opaque nodes are never
// returned. The id index is built on first use and reused until a structural edit.
func (d *Document) FindByID(id string) (Node, bool) {
	if id == "" {
		return nil, false
	}
	if d.index == nil {
		d.buildIndex()
	}
	n, ok := d.index[id]
	return n, ok
}

// SetText replaces the text of the Text node identified by id. It reports false when the id
// is unknown or names a node that is not a Text.
func (d *Document) SetText(id, text string) bool {
	n, ok := d.FindByID(id)
	if !ok {
		return false
	}
	t, ok := n.(*Text)
	if !ok {
		return false
	}
	t.Replace(text)
	return true
}

// Replace sets the node text and marks it present for encoding.
func (t *Text) Replace(text string) {
	t.Text = text
	t.present |= attrText
}

// AddLayer appends a layer and invalidates the id index.
func (d *Document) AddLayer(l *Layer) {
	d.Layers = append(d.Layers, l)
	d.index = nil
}

// AppendNode appends n to the layer at layerIdx. It reports false for an index out of range
// or an opaque layer.
func (d *Document) AppendNode(layerIdx int, n Node) bool {
	if layerIdx < 0 || layerIdx >= len(d.Layers) || d.Layers[layerIdx].Opaque() {
		return false
	}
	l := d.Layers[layerIdx]
	l.Nodes = append(l.Nodes, n)
	d.index = nil
	return true
}

// RemoveNode deletes the first node carrying id and reports whether one was removed.
func (d *Document) RemoveNode(id string) bool {
	if id == "" {
		return false
	}
	for _, l := range d.Layers {
		for i, n := range l.Nodes {
			if _, opaque := n.(*Opaque); opaque || n.NodeID() != id {
				continue
			}
			l.Nodes = append(l.Nodes[:i], l.Nodes[i+1:]...)
			d.index = nil
			return true
		}
	}
	return false
}

// Invalidate drops the id index. Callers that edit Layers or Nodes directly must call it.
func (d *Document) Invalidate() { d.index = nil }

// Walk visits every Rect and Text node in paint order until fn returns false.
func (d *Document) Walk(fn func(Node) bool) {
	for _, l := range d.Layers {
		for _, n := range l.Nodes {
			if _, opaque := n.(*Opaque); opaque {
				continue
			}
			if !fn(n) {
				return
			}
		}
	}
}

// TextNodes returns the Text nodes in paint order.
func (d *Document) TextNodes() []*Text {
	var out []*Text
	d.Walk(func(n Node) bool {
		if t, ok := n.(*Text); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}

func (d *Document) buildIndex() {
	d.index = make(map[string]Node)
	d.Walk(func(n Node) bool {
		id := n.NodeID()
		if id == "" {
			return true
		}
		// Duplicate ids resolve to the earliest painted node.
		if _, seen := d.index[id]; !seen {
			d.index[id] = n
		}
		return true
	})
}

package orgast

import "fmt"

// StructuralError reports a tree-algebra operation that would corrupt the
// tree. The operation is aborted before any mutation.
type StructuralError struct {
	Op     string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("orgast: %s: %s", e.Op, e.Reason)
}

// Adopt appends children to parent's contents, setting each child's Parent.
// Children already attached elsewhere are detached first.
func Adopt(parent *Node, children ...*Node) {
	for _, child := range children {
		if child == nil {
			continue
		}
		if child.Parent != nil {
			Extract(child)
		}
		child.Parent = parent
		child.Prev = parent.LastChild
		child.Next = nil
		if parent.LastChild != nil {
			parent.LastChild.Next = child
		} else {
			parent.FirstChild = child
		}
		parent.LastChild = child
	}
}

// AdoptSecondary links a detached object sequence to its owner. Objects in
// a secondary string have Parent pointing at the owning node while not
// appearing in its contents.
func AdoptSecondary(owner *Node, objects []*Node) []*Node {
	for i, obj := range objects {
		obj.Parent = owner
		if i > 0 {
			obj.Prev = objects[i-1]
		} else {
			obj.Prev = nil
		}
		if i < len(objects)-1 {
			obj.Next = objects[i+1]
		} else {
			obj.Next = nil
		}
	}
	return objects
}

// Extract removes node from its parent's contents or secondary string,
// clears its Parent, and returns it. Extracting a detached node is a no-op.
func Extract(node *Node) *Node {
	parent := node.Parent
	if parent == nil {
		return node
	}
	if removeFromContents(parent, node) {
		node.Parent = nil
		return node
	}
	// Not in contents: search the parent's secondary strings.
	if removeFromSecondary(parent, node) {
		node.Parent = nil
		return node
	}
	// Parent link was stale; clear it anyway.
	node.Parent = nil
	node.Prev = nil
	node.Next = nil
	return node
}

func removeFromContents(parent, node *Node) bool {
	found := false
	for c := parent.FirstChild; c != nil; c = c.Next {
		if c == node {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if node.Prev != nil {
		node.Prev.Next = node.Next
	} else {
		parent.FirstChild = node.Next
	}
	if node.Next != nil {
		node.Next.Prev = node.Prev
	} else {
		parent.LastChild = node.Prev
	}
	node.Prev = nil
	node.Next = nil
	return true
}

func removeFromSecondary(parent, node *Node) bool {
	remove := func(sec []*Node) ([]*Node, bool) {
		for i, obj := range sec {
			if obj == node {
				out := append(append([]*Node(nil), sec[:i]...), sec[i+1:]...)
				relink(out)
				node.Prev = nil
				node.Next = nil
				return out, true
			}
		}
		return sec, false
	}

	if parent.Headline != nil {
		if out, ok := remove(parent.Headline.Title); ok {
			parent.Headline.Title = out
			return true
		}
	}
	if parent.Item != nil {
		if out, ok := remove(parent.Item.Tag); ok {
			parent.Item.Tag = out
			return true
		}
	}
	if parent.Footnote != nil {
		if out, ok := remove(parent.Footnote.Definition); ok {
			parent.Footnote.Definition = out
			return true
		}
	}
	if parent.Affiliated != nil {
		for key, vs := range parent.Affiliated.Entries {
			for i := range vs {
				if out, ok := remove(vs[i].Parsed); ok {
					vs[i].Parsed = out
					parent.Affiliated.Entries[key] = vs
					return true
				}
				if out, ok := remove(vs[i].ParsedSecondary); ok {
					vs[i].ParsedSecondary = out
					parent.Affiliated.Entries[key] = vs
					return true
				}
			}
		}
	}
	return false
}

func relink(objects []*Node) {
	for i, obj := range objects {
		if i > 0 {
			obj.Prev = objects[i-1]
		} else {
			obj.Prev = nil
		}
		if i < len(objects)-1 {
			obj.Next = objects[i+1]
		} else {
			obj.Next = nil
		}
	}
}

// InsertBefore inserts node into anchor's parent just before anchor.
// The anchor may live in regular contents or in a secondary string.
// Returns a StructuralError when the anchor is detached.
func InsertBefore(node, anchor *Node) error {
	parent := anchor.Parent
	if parent == nil {
		return &StructuralError{Op: "insert-before", Reason: "anchor has no parent"}
	}
	inContents := false
	for c := parent.FirstChild; c != nil; c = c.Next {
		if c == anchor {
			inContents = true
			break
		}
	}
	if !inContents && !parent.InSecondaryString(anchor) {
		return &StructuralError{Op: "insert-before", Reason: "anchor not found in parent"}
	}
	if node.Parent != nil {
		Extract(node)
	}

	// Contents case.
	for c := parent.FirstChild; c != nil; c = c.Next {
		if c == anchor {
			node.Parent = parent
			node.Prev = anchor.Prev
			node.Next = anchor
			if anchor.Prev != nil {
				anchor.Prev.Next = node
			} else {
				parent.FirstChild = node
			}
			anchor.Prev = node
			return nil
		}
	}

	// Secondary-string case, including first-in-string anchors.
	insert := func(sec []*Node) ([]*Node, bool) {
		for i, obj := range sec {
			if obj == anchor {
				out := make([]*Node, 0, len(sec)+1)
				out = append(out, sec[:i]...)
				out = append(out, node)
				out = append(out, sec[i:]...)
				node.Parent = parent
				relink(out)
				return out, true
			}
		}
		return sec, false
	}
	if parent.Headline != nil {
		if out, ok := insert(parent.Headline.Title); ok {
			parent.Headline.Title = out
			return nil
		}
	}
	if parent.Item != nil {
		if out, ok := insert(parent.Item.Tag); ok {
			parent.Item.Tag = out
			return nil
		}
	}
	if parent.Footnote != nil {
		if out, ok := insert(parent.Footnote.Definition); ok {
			parent.Footnote.Definition = out
			return nil
		}
	}
	if parent.Affiliated != nil {
		for key, vs := range parent.Affiliated.Entries {
			for i := range vs {
				if out, ok := insert(vs[i].Parsed); ok {
					vs[i].Parsed = out
					parent.Affiliated.Entries[key] = vs
					return nil
				}
				if out, ok := insert(vs[i].ParsedSecondary); ok {
					vs[i].ParsedSecondary = out
					parent.Affiliated.Entries[key] = vs
					return nil
				}
			}
		}
	}
	return &StructuralError{Op: "insert-before", Reason: "anchor not found in parent"}
}

// Replace rewrites old in place with new's kind, properties and contents.
// The identity of old is preserved so external references remain valid;
// new's children get their parent pointer moved to old.
func Replace(old, new *Node) {
	parent, prev, next := old.Parent, old.Prev, old.Next

	*old = *new

	old.Parent = parent
	old.Prev = prev
	old.Next = next
	for c := old.FirstChild; c != nil; c = c.Next {
		c.Parent = old
	}
	for _, sec := range old.SecondaryStrings() {
		for _, obj := range sec {
			obj.Parent = old
		}
	}
}

// Map calls fn on every node of the tree in pre-order, descending into
// contents and secondary strings. Returning false prunes the descent.
func Map(root *Node, fn func(*Node) bool) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for _, sec := range root.SecondaryStrings() {
		for _, obj := range sec {
			Map(obj, fn)
		}
	}
	for c := root.FirstChild; c != nil; c = c.Next {
		Map(c, fn)
	}
}

// SPDX-License-Identifier: MIT
package markup

// Walk visits n and its descendants in document (pre-) order.
// Returning false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

// Find returns every node under root, root included, matching pred in document order
func Find(root Node, pred func(Node) bool) []Node {
	var found []Node
	Walk(root, func(n Node) bool {
		if pred(n) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// TextContent concatenates all text and raw payloads under n
func TextContent(n Node) string {
	var out []byte
	Walk(n, func(c Node) bool {
		if c.Kind == KindText || c.Kind == KindRaw {
			out = append(out, c.Text...)
		}
		return true
	})
	return string(out)
}

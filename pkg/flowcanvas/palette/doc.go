// Package palette holds the node-type registry the editor uses to draw its
// node palette and to instantiate dropped nodes.
//
// The palette is configuration data. The workflow store never consults it;
// callers build a node with NewNode and hand it to Store.AddNode.
//
//	p := palette.Default()
//	n, err := p.NewNode(flowcanvas.Agent, flowcanvas.Position{X: 120, Y: 80})
//	if err != nil {
//		return err
//	}
//	store.AddNode(n)
//	store.SaveToHistory()
package palette

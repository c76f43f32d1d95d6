// Package conflicts renders the overlap graph of a day as a node-link
// diagram.
//
// Every table becomes a Graphviz cluster and every placed game a node.
// Two games on the same table are joined by an edge when their time ranges
// overlap, which is exactly when the lane allocator had to put them in
// different lanes. Games that only touch (one ends when the next starts)
// are not connected.
//
//	dot := conflicts.ToDOT(day)
//	svg, err := conflicts.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools. [RenderSVG] uses [github.com/goccy/go-graphviz] in-process.
package conflicts

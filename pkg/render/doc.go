// Package render turns built robot models into visual artifacts.
//
// The kinematic tree renders as a Graphviz node-link diagram: one node
// per joint, one edge per parent/child relation, laid out top-down from
// the floating base. [ToDOT] produces the DOT source and [RenderSVG]
// rasterizes it through Graphviz.
package render

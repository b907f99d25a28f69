// Package template defines the template seam used to wrap decorated blocks
// and its pongo2-backed implementation in the gotemplate subpackage.
package template

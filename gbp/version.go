// Package gbp provides common infrastructure shared by all gbp components
package gbp

// Version of gbp, filled in at link time
var Version string

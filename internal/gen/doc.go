// Package gen compiles mapping lists into deployable integration artifacts.
//
// An artifact is a task graph with a fixed topology:
//
//	trigger -> [script tasks] -> field mapping -> REST call -> success
//	                                                       \-> dead-letter publish
//
// Direct mappings become `${source.<path>}` references in the output payload.
// Transformed mappings each get a script task that computes one variable, and
// the payload references that variable instead of the raw path. Scripts are
// rendered by the transform package so the compiled behavior matches previews.
package gen

// Package pipeline defines the operation graph that exposes the mesh
// algorithms as callable nodes with typed parameters. A Pipeline is an
// immutable DAG of source and operation nodes produced by script
// evaluation; validating and evaluating it never mutates it.
package pipeline

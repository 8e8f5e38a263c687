// Package pipeline runs a fixed, ordered list of steps against one context
// value. Each step returns the value handed to the next step; the first error
// stops the run. Nothing is rolled back.
package pipeline

// Package project defines the value threaded through the create pipeline and
// the rules a project key must satisfy.
package project

// Package scaffold implements the create pipeline: it asks for a project key,
// version and theme template, fetches the template repository into a new
// directory named after the key, narrows it to the template's sub path, and
// fills in package.json and the build script.
package scaffold

// Package registry is the process-wide NodeRegistry: name -> constructor,
// with positional/named/default argument extraction and converter-registry
// casting, grounded in the teacher's registry.RegisteredRunner factory
// pattern.
package registry

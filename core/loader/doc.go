// Package loader registers HTTP features with the Fiber application.
//
// Each feature implements the Feature interface and is mounted by Manager.LoadAll
// unless it reports itself as disabled.
package loader

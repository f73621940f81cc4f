// Package matrix defines the closed registries of target architectures and
// benchmark configurations, validates user selections against them, and
// resolves the immutable run Plan: which (architecture, configuration) pairs
// to build, in which order, and where each one's build and install
// directories live.
package matrix

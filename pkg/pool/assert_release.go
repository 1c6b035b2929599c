//go:build !pooldebug

package pool

const debugAssertions = false

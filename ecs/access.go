package ecs

//go:generate go run golang.org/x/tools/cmd/stringer -type=Access -trimprefix=Access

// Access describes how a borrow may touch the data it guards.
type Access uint8

const (
	// AccessShared allows any number of concurrent readers.
	AccessShared Access = iota
	// AccessExclusive allows exactly one writer and no readers.
	AccessExclusive
)

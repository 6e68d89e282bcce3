package model

// CreationPolicy decides what happens when the target file does not exist.
type CreationPolicy int

const (
	// Prompt asks the user before creating the file.
	Prompt CreationPolicy = iota
	// AlwaysCreate treats a missing file as empty.
	AlwaysCreate
	// NeverCreate fails when the file is missing.
	NeverCreate
)

func (p CreationPolicy) String() string {
	switch p {
	case AlwaysCreate:
		return "create"
	case NeverCreate:
		return "no-create"
	default:
		return "prompt"
	}
}

// Outcome holds the result of reconciling one file.
type Outcome struct {
	Path    string
	Changed bool
	// Created is set when the file did not exist before and was written.
	Created bool
	// Original is the snapshot as loaded from disk, before additions.
	Original []string
	// Final is the normalized line set.
	Final []string
	// Delta is len(Final) - len(Original).
	Delta int
}

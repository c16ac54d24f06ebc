package editor

import "errors"

var (
	// ErrNothingSelected is returned by commands that need a selected node.
	ErrNothingSelected = errors.New("no node selected")

	// ErrRootNodeProtected is returned when deleting the root node.
	ErrRootNodeProtected = errors.New("root node cannot be deleted")

	// ErrNodeNotFound is returned when a node id is not in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrSampleInFlight is returned when a sample load is already running.
	ErrSampleInFlight = errors.New("sample load already in progress")
)

// RootDeleteMessage is the alert shown when the root delete is refused.
const RootDeleteMessage = "ルートノードは削除できません。"

package editor

import "errors"

// ErrNoSelection is returned by ApplyEdit when no node is selected. Nothing is written.
var ErrNoSelection = errors.New("no node selected")

var errNoLookup = errors.New("lookup not issued by this controller")

package store

import "errors"

// errNoWrite aborts a storage.Update without persisting. Used when an update
// finds nothing to change.
var errNoWrite = errors.New("store: no matching record")

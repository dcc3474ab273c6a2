package sound

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrLabelNotFound marks a recording whose directory token does not appear
// in a non-empty label set. Match with errors.Is.
var ErrLabelNotFound = errors.New("sound: label not found")

// LabelSet is an ordered list of class names with a name->index map built
// once at construction. Recordings are labeled by the hive name encoded in
// their parent directory.
type LabelSet struct {
	names []string
	index map[string]int
}

// NewLabelSet creates a label set from ordered names. Duplicate names keep
// their first index.
func NewLabelSet(names []string) *LabelSet {
	index := make(map[string]int, len(names))
	for i, name := range names {
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	return &LabelSet{
		names: append([]string(nil), names...),
		index: index,
	}
}

// Len returns the number of label names
func (ls *LabelSet) Len() int {
	if ls == nil {
		return 0
	}
	return len(ls.names)
}

// Names returns a copy of the ordered label names
func (ls *LabelSet) Names() []string {
	if ls == nil {
		return nil
	}
	return append([]string(nil), ls.names...)
}

// Resolve maps a label name to its index. An empty (or nil) label set
// resolves everything to index 0 - the default-class fallback for unlabeled
// experiments, not an "unknown" sentinel. A non-empty set fails with
// ErrLabelNotFound for names it does not contain.
func (ls *LabelSet) Resolve(name string) (int, error) {
	if ls.Len() == 0 {
		return 0, nil
	}
	idx, ok := ls.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q not in %v", ErrLabelNotFound, name, ls.names)
	}
	return idx, nil
}

// LabelToken extracts the label-bearing token from a recording path: the
// parent directory name up to the first underscore. The convention is
// <root>/<hive>_<period>/<recording>.wav, so "data/DEADBEEF94_2020/x.wav"
// yields "DEADBEEF94". Pure string function, deterministic for a given path.
func LabelToken(path string) string {
	parent := filepath.Base(filepath.Dir(path))
	token, _, _ := strings.Cut(parent, "_")
	return token
}

// ResolvePath derives the label index for a recording path
func (ls *LabelSet) ResolvePath(path string) (int, error) {
	return ls.Resolve(LabelToken(path))
}

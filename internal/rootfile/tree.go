package rootfile

import (
	"context"
	"errors"
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

var (
	// ErrNotTree is returned when the named object exists but is not a tree.
	ErrNotTree = errors.New("object is not a tree")
	// ErrNoBranch is returned when the tree has no branch of that name.
	ErrNoBranch = errors.New("no such branch")
	// ErrUnsupportedBranch is returned for branches that are not scalar numbers.
	ErrUnsupportedBranch = errors.New("branch is not a scalar number")
)

// TreeReader streams one numeric branch of an open tree.
type TreeReader interface {
	// Entries returns the number of entries in the tree.
	Entries() int64
	// Each calls fn with the value of branch for every entry, in order.
	Each(ctx context.Context, branch string, fn func(v float64) error) error
	// Close releases the underlying file.
	Close() error
}

// TreeOpener opens a tree by file path and tree name.
type TreeOpener interface {
	OpenTree(path, name string) (TreeReader, error)
}

// GrootTreeOpener opens trees with groot.
type GrootTreeOpener struct{}

// OpenTree opens path and looks up the tree called name.
func (GrootTreeOpener) OpenTree(path, name string) (TreeReader, error) {
	return OpenTree(path, name)
}

// Tree is a tree inside an open ROOT file.
type Tree struct {
	file *riofs.File
	tree rtree.Tree
}

// OpenTree opens path and looks up the tree called name.
func OpenTree(path, name string) (*Tree, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	obj, err := f.Get(name)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to get %s from %s: %w", name, path, err)
	}

	tree, ok := obj.(rtree.Tree)
	if !ok {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s in %s is %s", ErrNotTree, name, path, obj.Class())
	}
	return &Tree{file: f, tree: tree}, nil
}

// Entries returns the number of entries in the tree.
func (t *Tree) Entries() int64 {
	return t.tree.Entries()
}

// Each reads branch for every entry and converts it to float64.
func (t *Tree) Each(ctx context.Context, branch string, fn func(v float64) error) error {
	var rvar *rtree.ReadVar
	for _, rv := range rtree.NewReadVars(t.tree) {
		if rv.Name == branch {
			rvar = &rv
			break
		}
	}
	if rvar == nil {
		return fmt.Errorf("%w: %s", ErrNoBranch, branch)
	}

	value, err := scalarGetter(rvar.Value)
	if err != nil {
		return fmt.Errorf("%s: %w", branch, err)
	}

	r, err := rtree.NewReader(t.tree, []rtree.ReadVar{*rvar})
	if err != nil {
		return fmt.Errorf("failed to create reader for %s: %w", branch, err)
	}
	defer r.Close()

	return r.Read(func(rtree.RCtx) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(value())
	})
}

// Close closes the underlying file.
func (t *Tree) Close() error {
	return t.file.Close()
}

// scalarGetter returns a function reading the current value behind ptr.
func scalarGetter(ptr any) (func() float64, error) {
	switch p := ptr.(type) {
	case *float64:
		return func() float64 { return *p }, nil
	case *float32:
		return func() float64 { return float64(*p) }, nil
	case *int64:
		return func() float64 { return float64(*p) }, nil
	case *int32:
		return func() float64 { return float64(*p) }, nil
	case *int16:
		return func() float64 { return float64(*p) }, nil
	case *int8:
		return func() float64 { return float64(*p) }, nil
	case *uint64:
		return func() float64 { return float64(*p) }, nil
	case *uint32:
		return func() float64 { return float64(*p) }, nil
	case *uint16:
		return func() float64 { return float64(*p) }, nil
	case *uint8:
		return func() float64 { return float64(*p) }, nil
	case *bool:
		return func() float64 {
			if *p {
				return 1
			}
			return 0
		}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedBranch, ptr)
	}
}

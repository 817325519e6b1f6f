package rootfile

import (
	"context"
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/root"

	"github.com/hjangles/llscan/internal/model"
)

// ObjectReader lists the stored objects of one file.
type ObjectReader interface {
	ReadObjects(ctx context.Context, path string) ([]model.StoredObject, error)
}

// GrootReader reads scan-result files with groot.
type GrootReader struct{}

// NewGrootReader creates a reader backed by groot.
func NewGrootReader() *GrootReader {
	return &GrootReader{}
}

// ReadObjects opens path, reads every key in order and closes the file.
// An object's auxiliary items are the functions attached to it; objects
// without such a list get none.
func (r *GrootReader) ReadObjects(ctx context.Context, path string) ([]model.StoredObject, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	keys := f.Keys()
	objects := make([]model.StoredObject, 0, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		obj, err := key.Object()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s from %s: %w", key.Name(), path, err)
		}

		name := key.Name()
		if named, ok := obj.(root.Named); ok && named.Name() != "" {
			name = named.Name()
		}
		objects = append(objects, model.StoredObject{
			Name: name,
			Aux:  attachedItems(obj),
		})
	}
	return objects, nil
}

// attachedItems returns the name and title of every named object attached
// to obj, in list order. Histograms and graphs expose their function list
// through root.ObjectFinder; other objects have no items.
func attachedItems(obj root.Object) []model.AuxItem {
	finder, ok := obj.(root.ObjectFinder)
	if !ok {
		return nil
	}

	keys := finder.Keys()
	items := make([]model.AuxItem, 0, len(keys))
	for _, key := range keys {
		item, err := finder.Get(key)
		if err != nil {
			continue
		}
		named, ok := item.(root.Named)
		if !ok {
			continue
		}
		items = append(items, model.AuxItem{Name: named.Name(), Title: named.Title()})
	}
	return items
}

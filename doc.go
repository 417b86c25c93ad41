// Package gitindex reads version-control index files and checks them
// against a working tree.
//
// The high-level API is [Repository]:
//
//	repo, err := gitindex.Open(afero.NewOsFs(), ".")
//	if err != nil {
//	    return err
//	}
//	snap, err := repo.Index(ctx)
//	if err != nil {
//	    return err
//	}
//	for e := range snap.Index.All() {
//	    fmt.Println(e.Mode, e.ObjectID, e.FilePath)
//	}
//
// Status reports, per entry, whether the working tree file is clean,
// modified, racily clean or deleted:
//
//	results, err := repo.Status(ctx)
//
// The building blocks are available as subpackages: [codec] reads
// arbitrary-width unsigned integers, [schema] decodes records described by
// a field layout, [index] parses the index format, [stale] decides whether
// an entry is out of date, and [source] and [status] connect them to a
// filesystem.
package gitindex

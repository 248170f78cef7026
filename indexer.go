// Copyright (c) 2022 Stephan Lukits. All rights reserved.
//  Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// indexer provides the methodIndexer-type whose only task it is to
// index the method declarations of a source file by their appearance.

package tunit

import (
	"go/ast"
	"go/parser"
	"go/token"
	"sync"
)

var indexer = methodIndexer{}

// methodIndexer provides get(file, typ) which parses a source file's
// method declarations once to index them per receiver type in order of
// their appearance.  get is concurrency save, i.e. while a file is
// parsed no index may be retrieved and vice versa.
type methodIndexer struct {
	// Loaders may run concurrently for targets declared in the same
	// file; the file should be parsed only once.
	mutex sync.Mutex
	//        file-name  type-name  method-name index
	_Indexer map[string]map[string]map[string]int
}

// get returns the indices of given type's methods declared in given
// file.  A type without method declarations in the file gets a nil
// map.
func (i *methodIndexer) get(file, typ string) (map[string]int, error) {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	if idx, ok := i._Indexer[file]; ok {
		return idx[typ], nil
	}
	idx, err := i._Parse(file)
	if err != nil {
		return nil, err
	}
	if i._Indexer == nil {
		i._Indexer = map[string]map[string]map[string]int{}
	}
	i._Indexer[file] = idx
	return idx[typ], nil
}

// _Parse indexes the method declarations of given file.
func (i *methodIndexer) _Parse(file string) (
	map[string]map[string]int, error,
) {
	f, err := parser.ParseFile(
		token.NewFileSet(), file, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	idx := map[string]map[string]int{}
	for _, decl := range f.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
			continue
		}
		typ, ok := i._Receiver(fd.Recv.List[0].Type)
		if !ok {
			continue
		}
		if idx[typ] == nil {
			idx[typ] = map[string]int{}
		}
		idx[typ][fd.Name.Name] = len(idx[typ])
	}
	return idx, nil
}

// _Receiver returns the type name of given receiver field type, i.e.
// T for T, *T, T[P] and *T[P].
func (i *methodIndexer) _Receiver(fldType ast.Expr) (string, bool) {
	if star, ok := fldType.(*ast.StarExpr); ok {
		fldType = star.X
	}
	switch x := fldType.(type) {
	case *ast.IndexExpr:
		fldType = x.X
	case *ast.IndexListExpr:
		fldType = x.X
	}
	ident, ok := fldType.(*ast.Ident)
	if !ok {
		return "", false
	}
	return ident.Name, true
}

// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build reportdocgen

package main

import (
	"errors"
	"flag"
	"fmt"
	"go/ast"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"text/template"

	"golang.org/x/tools/go/packages"
)

var (
	inputDir   = flag.String("input", "internal/renewal", "Input directory containing the report structs")
	outputFile = flag.String("output", "doc/report-schema.md", "Output file for documentation")
	rootStruct = flag.String("root", "Report", "The name of the root struct to start documentation from")
	tag        = flag.String("tag", "yaml", "The struct tag to use for field names")
	title      = flag.String("title", "polinerenew report", "The title of the generated Markdown page")
)

var docTemplate = template.Must(template.New("doc").Parse(`# {{.Title}} Schema

This document describes the schema of the {{.Title}} written by ` + "`--report`" + ` and ` + "`--output yaml`" + `.
{{range .Structs}}
## {{.Name}}

[Link to code]({{.SourceLink}})
{{if .Doc}}
{{.Doc}}
{{end}}
| Field | Type | Description |
| :--- | :--- | :--- |
{{range .Fields}}| ` + "`{{.Name}}`" + ` | {{.Type}} | {{.Description}} |
{{end}}{{end}}`))

type pageData struct {
	Title   string
	Structs []structData
}

type structData struct {
	Name       string
	SourceLink string
	Doc        string
	Fields     []fieldData
}

type fieldData struct {
	Name        string
	Type        string
	Description string
}

// typeDecl is a struct type declared in the input package.
type typeDecl struct {
	st     *ast.StructType
	doc    string
	source string
}

// main generates a Markdown description of the report structs reachable
// from the root struct, using their field tags and doc comments.
func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() (err error) {
	pkg, err := loadPackage(*inputDir)
	if err != nil {
		return fmt.Errorf("loading package: %w", err)
	}
	decls, err := collectStructs(pkg)
	if err != nil {
		return fmt.Errorf("inspecting package syntax: %w", err)
	}
	output, err := os.Create(*outputFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		cerr := output.Close()
		if err == nil {
			err = cerr
		}
	}()
	return generate(output, decls, *rootStruct, *tag, *title)
}

func loadPackage(dir string) (*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedName | packages.NeedFiles | packages.NeedModule,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found in %s", dir)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		errs := make([]error, 0, len(pkg.Errors))
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
		return nil, errors.Join(errs...)
	}
	return pkg, nil
}

// collectStructs returns the struct types declared in pkg by name.
func collectStructs(pkg *packages.Package) (map[string]*typeDecl, error) {
	moduleRoot := "."
	if pkg.Module != nil {
		moduleRoot = pkg.Module.Dir
	}
	decls := map[string]*typeDecl{}
	for _, file := range pkg.Syntax {
		relPath, err := filepath.Rel(moduleRoot, pkg.Fset.File(file.Pos()).Name())
		if err != nil {
			return nil, err
		}
		ast.Inspect(file, func(n ast.Node) bool {
			ts, ok := n.(*ast.TypeSpec)
			if !ok {
				return true
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				return true
			}
			d := &typeDecl{
				st:     st,
				source: fmt.Sprintf("../%s#L%d", filepath.ToSlash(relPath), pkg.Fset.Position(ts.Pos()).Line),
			}
			if ts.Doc != nil {
				d.doc = cleanDoc(ts.Doc.Text())
			}
			decls[ts.Name.Name] = d
			return true
		})
	}
	return decls, nil
}

// generate writes the structs reachable from root, in the order they are
// first referenced.
func generate(w io.Writer, decls map[string]*typeDecl, root, tag, title string) error {
	if decls[root] == nil {
		return fmt.Errorf("root struct %s not found", root)
	}
	page := pageData{Title: title}
	seen := map[string]bool{root: true}
	queue := []string{root}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		d := decls[name]
		sd := structData{Name: name, SourceLink: d.source, Doc: d.doc}
		for _, field := range d.st.Fields.List {
			tagName := fieldName(field, tag)
			if tagName == "" || tagName == "-" {
				continue
			}
			goType := typeName(field.Type)
			elem := strings.TrimLeft(goType, "[]*")
			if decls[elem] != nil && !seen[elem] {
				seen[elem] = true
				queue = append(queue, elem)
			}
			var description string
			if field.Doc != nil {
				description = cleanDoc(field.Doc.Text())
			}
			sd.Fields = append(sd.Fields, fieldData{
				Name:        tagName,
				Type:        formatType(goType, decls),
				Description: description,
			})
		}
		page.Structs = append(page.Structs, sd)
	}
	return docTemplate.Execute(w, page)
}

// fieldName returns the tag name of an exported field, or "" when the field
// is untagged or unexported.
func fieldName(field *ast.Field, tag string) string {
	if field.Tag == nil || len(field.Names) == 0 || !field.Names[0].IsExported() {
		return ""
	}
	val := reflect.StructTag(strings.Trim(field.Tag.Value, "`")).Get(tag)
	return strings.Split(val, ",")[0]
}

func typeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeName(t.X)
	case *ast.ArrayType:
		return "[]" + typeName(t.Elt)
	case *ast.MapType:
		return fmt.Sprintf("map[%s]%s", typeName(t.Key), typeName(t.Value))
	case *ast.SelectorExpr:
		return fmt.Sprintf("%s.%s", typeName(t.X), t.Sel.Name)
	default:
		return fmt.Sprintf("%T", expr)
	}
}

func formatType(name string, decls map[string]*typeDecl) string {
	isSlice := strings.HasPrefix(name, "[]")
	res := strings.TrimPrefix(strings.TrimPrefix(name, "[]"), "*")
	if decls[res] != nil {
		res = fmt.Sprintf("[%s](#%s)", res, strings.ToLower(res))
	}
	if isSlice {
		res = "list of " + res
	}
	return res
}

func cleanDoc(doc string) string {
	return strings.Join(strings.Fields(doc), " ")
}

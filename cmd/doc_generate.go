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

//go:build docgen

package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
)

const (
	polinerenewDesc = `Polinerenew sets a new renewal date on Alma purchase order lines.

Usage:

	polinerenew --new-renewal-date YYYY-MM-DD --api-key KEY [--set-name NAME] [po-line-id ...]
`

	docTemplate = `// Copyright {{.Year}} Google LLC
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

//go:generate go run -tags docgen ../doc_generate.go -cmd .

/*
{{.Description}}
{{.HelpText}}
*/
package main
`
)

var (
	descriptions = map[string]string{
		"polinerenew": polinerenewDesc,
	}

	years = map[string]string{
		"polinerenew": "2026",
	}

	cmdPath = flag.String("cmd", "", "Path to the command to generate docs for (e.g., ../../cmd/polinerenew)")
)

func main() {
	flag.Parse()
	if *cmdPath == "" {
		log.Fatal("must specify -cmd flag")
	}
	if err := run(*cmdPath); err != nil {
		log.Fatal(err)
	}
}

func run(cmdPath string) error {
	pkgPath, err := filepath.Abs(cmdPath)
	if err != nil {
		return fmt.Errorf("could not find path: %v", err)
	}
	name := filepath.Base(pkgPath)
	desc, ok := descriptions[name]
	if !ok {
		return fmt.Errorf("cannot find description for command: %s", pkgPath)
	}
	year, ok := years[name]
	if !ok {
		return fmt.Errorf("cannot find year for command: %s", pkgPath)
	}
	helpText, err := helpText(cmdPath)
	if err != nil {
		return err
	}

	docFile, err := os.Create("doc.go")
	if err != nil {
		return fmt.Errorf("could not create doc.go: %v", err)
	}
	defer docFile.Close()
	tmpl := template.Must(template.New("doc").Parse(docTemplate))
	return tmpl.Execute(docFile, struct {
		Year        string
		Description string
		HelpText    string
	}{
		Year:        year,
		Description: sanitize(desc),
		HelpText:    sanitize(indent(helpText)),
	})
}

// helpText returns the output of running the command with --help.
func helpText(cmdPath string) (string, error) {
	cmd := exec.Command("go", "run", cmdPath, "--help")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil && out.Len() == 0 {
		return "", fmt.Errorf("cmd.Run() for '%s --help' failed with %s", cmdPath, err)
	}
	return out.String(), nil
}

// indent turns the help sections into a godoc layout: headings flush left,
// section bodies as preformatted blocks.
func indent(help string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(help, "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			b.WriteString("\n")
		case strings.HasSuffix(trimmed, ":") && !strings.HasPrefix(line, " "):
			fmt.Fprintf(&b, "\n%s\n\n", trimmed)
		default:
			fmt.Fprintf(&b, "\t%s\n", strings.TrimPrefix(line, "   "))
		}
	}
	return b.String()
}

func sanitize(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}

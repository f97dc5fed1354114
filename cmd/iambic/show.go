package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/naucera/iambic/grammar"
	"github.com/naucera/iambic/spec"
	"github.com/spf13/cobra"
)

var showFlags = struct {
	matchers *matcherFlags
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "show <grammar file path>",
		Short:   "Print a report on the rules of a grammar in a readable format",
		Example: `  iambic show grammar.iambic`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	showFlags.matchers = addMatcherFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ms, err := showFlags.matchers.matchers()
	if err != nil {
		return err
	}
	g, err := readGrammar(args[0], spec.Matchers(ms...))
	if err != nil {
		return err
	}

	err = writeReport(os.Stdout, grammar.Describe(g))
	if err != nil {
		return err
	}

	return nil
}

const reportTemplate = `# Summary

{{ printSummary . }}

# Rules
{{ range $i, $r := .Rules }}
## {{ $i }} {{ $r.Name }}{{ if $r.Nullable }} (nullable){{ end }}{{ if not $r.Reachable }} (unreachable){{ end }}

    {{ $r.Definition }}

{{ printList "references" $r.References }}
{{ printList "referenced by" $r.ReferencedBy }}
{{ printList "matchers" $r.Matchers }}
{{ end }}`

func writeReport(w io.Writer, report *grammar.Report) error {
	fns := template.FuncMap{
		"printSummary": func(report *grammar.Report) string {
			var unreachable []string
			var nullable int
			for _, r := range report.Rules {
				if !r.Reachable {
					unreachable = append(unreachable, r.Name)
				}
				if r.Nullable {
					nullable++
				}
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%v rules, %v nullable, root rule: %v\n", len(report.Rules), nullable, report.Rules[0].Name)
			if len(report.Matchers) > 0 {
				fmt.Fprintf(&b, "matchers: %v\n", strings.Join(report.Matchers, ", "))
			}
			if len(unreachable) == 1 {
				fmt.Fprintf(&b, "1 rule is unreachable from the root rule: %v", unreachable[0])
			} else if len(unreachable) > 1 {
				fmt.Fprintf(&b, "%v rules are unreachable from the root rule: %v", len(unreachable), strings.Join(unreachable, ", "))
			} else {
				fmt.Fprintf(&b, "All rules are reachable")
			}
			return b.String()
		},
		"printList": func(label string, names []string) string {
			if len(names) == 0 {
				return fmt.Sprintf("%v: -", label)
			}
			return fmt.Sprintf("%v: %v", label, strings.Join(names, ", "))
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(reportTemplate)
	if err != nil {
		return err
	}

	err = tmpl.Execute(w, report)
	if err != nil {
		return err
	}

	return nil
}

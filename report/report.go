// Package report renders the structured run summaries: borderless tables for
// humans, JSON for machines. The text layout is not a compatibility contract.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"chat-dblab/bench"
	"chat-dblab/seed"
	"chat-dblab/verify"
)

// WriteJSON emits the machine-readable form of any report.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func statusLabel(s verify.Status) string {
	switch s {
	case verify.Pass:
		return color.Green.Sprint("PASS")
	case verify.Fail:
		return color.Red.Sprint("FAIL")
	default:
		return color.Yellow.Sprint("INCONCLUSIVE")
	}
}

// Seed prints the generation summary.
func Seed(w io.Writer, rep seed.Report) {
	fmt.Fprintf(w, "Population completed (%s strategy)\n\n", rep.Strategy)
	table := newTable(w, []string{"Entity", "Committed"})
	table.Append([]string{"Users", fmt.Sprintf("%d", rep.Users)})
	table.Append([]string{"Chats", fmt.Sprintf("%d", rep.Chats)})
	table.Append([]string{"Memberships", fmt.Sprintf("%d", rep.Memberships)})
	table.Append([]string{"Messages", fmt.Sprintf("%d", rep.Messages)})
	table.Render()
	fmt.Fprintf(w, "\n%d batches in %s (%.0f entities/s)\n",
		rep.Batches, rep.Duration.Round(time.Millisecond), rep.EntitiesPerSecond())
}

// Verify prints every check result, then the aggregate verdict.
func Verify(w io.Writer, rep verify.Report) {
	table := newTable(w, []string{"Check", "Status", "Detail"})
	for _, res := range rep.Results {
		table.Append([]string{res.Check, statusLabel(res.Status), res.Detail})
	}
	table.Render()

	for _, res := range rep.Results {
		if len(res.Offending) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s offenders (sample):\n", res.Check)
		for _, id := range res.Offending {
			fmt.Fprintf(w, "  - %s\n", id)
		}
	}

	fmt.Fprintln(w)
	if rep.Passed {
		fmt.Fprintf(w, "%s: %d checks, %d inconclusive\n",
			color.Green.Sprint("VERIFICATION PASSED"), len(rep.Results), rep.Inconclusive)
	} else {
		fmt.Fprintf(w, "%s: %d of %d checks failed\n",
			color.Red.Sprint("VERIFICATION FAILED"), rep.Failed, len(rep.Results))
	}
}

// Bench prints per-query latency stats and the consolidated status.
func Bench(w io.Writer, rep bench.Report) {
	table := newTable(w, []string{"Query", "Avg", "Min", "Max", "Rows", "Budget", "Verdict"})
	for _, res := range rep.Results {
		verdict := color.Green.Sprint("OK")
		switch {
		case res.Trials == res.FailedTrials:
			verdict = color.Red.Sprint("ERROR")
		case res.Regression:
			verdict = color.Yellow.Sprint("SLOW")
		}
		table.Append([]string{
			res.Name,
			formatLatency(res.Avg),
			formatLatency(res.Min),
			formatLatency(res.Max),
			fmt.Sprintf("%d", res.Rows),
			formatLatency(res.Threshold),
			verdict,
		})
	}
	table.Render()

	fmt.Fprintln(w)
	switch rep.Status {
	case bench.StatusSuccess:
		fmt.Fprintln(w, color.Green.Sprint("BENCHMARK PASSED"))
	case bench.StatusWithWarnings:
		fmt.Fprintf(w, "%s: %d queries over budget\n",
			color.Yellow.Sprint("BENCHMARK PASSED WITH WARNINGS"), rep.Regressions)
	default:
		fmt.Fprintf(w, "%s: %d queries failed every trial\n",
			color.Red.Sprint("BENCHMARK FAILED"), rep.Errors)
	}
}

func formatLatency(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
}

package display

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/crunch/catalog"
	"github.com/teranos/crunch/engine"
	"github.com/teranos/crunch/estimate"
	"github.com/teranos/crunch/sink"
)

func renderTable(w io.Writer, data pterm.TableData) error {
	return pterm.DefaultTable.
		WithHasHeader().
		WithData(data).
		WithWriter(w).
		Render()
}

// RunSummary prints per-length counts, skipped lengths and produced
// artifacts after a run
func RunSummary(w io.Writer, stats *engine.Stats, artifacts []sink.Artifact) error {
	lengths := make([]int, 0, len(stats.PerLength))
	for length := range stats.PerLength {
		lengths = append(lengths, length)
	}
	sort.Ints(lengths)

	if len(lengths) > 0 {
		data := pterm.TableData{{"Length", "Words"}}
		for _, length := range lengths {
			data = append(data, []string{strconv.Itoa(length), Count(stats.PerLength[length])})
		}
		if err := renderTable(w, data); err != nil {
			return err
		}
	}

	for _, warning := range stats.Warnings {
		pterm.Fprintln(w, pterm.Yellow("skipped:"), warning.Error())
	}

	if len(artifacts) > 0 {
		if err := ArtifactTable(w, artifacts); err != nil {
			return err
		}
	}

	pterm.Fprintln(w, fmt.Sprintf("%s %s words in %s",
		pterm.Green("✓"), Count(stats.Words), stats.Duration.Round(time.Millisecond)))
	return nil
}

// ArtifactTable lists written files
func ArtifactTable(w io.Writer, artifacts []sink.Artifact) error {
	data := pterm.TableData{{"Path", "First", "Last", "Words", "Size", "Remote"}}
	for _, a := range artifacts {
		data = append(data, []string{
			a.Path, a.First, a.Last, Count(a.Words), Int64Bytes(a.Bytes), a.Remote,
		})
	}
	return renderTable(w, data)
}

// EstimateTable prints the estimated volume per length and the free space
// of the target filesystem when known
func EstimateTable(w io.Writer, est *estimate.Estimate, disk *estimate.Disk) error {
	data := pterm.TableData{{"Length", "Words", "Size"}}
	for _, l := range est.Lengths {
		if l.Skipped {
			data = append(data, []string{strconv.Itoa(l.Length), "skipped", "-"})
			continue
		}
		data = append(data, []string{strconv.Itoa(l.Length), BigCount(l.Words), Bytes(l.Bytes)})
	}
	data = append(data, []string{"total", BigCount(est.Words), Bytes(est.Bytes)})
	if err := renderTable(w, data); err != nil {
		return err
	}

	if disk != nil {
		pterm.Fprintln(w, fmt.Sprintf("Free space on %s: %s", disk.Path, Int64Bytes(int64(min(disk.Free, uint64(1<<63-1))))))
	}
	return nil
}

// RunsTable lists catalog runs, newest first
func RunsTable(w io.Writer, runs []catalog.Run) error {
	if len(runs) == 0 {
		pterm.Fprintln(w, pterm.Gray("No runs recorded"))
		return nil
	}

	data := pterm.TableData{{"ID", "Mode", "Status", "Words", "Started"}}
	for _, r := range runs {
		data = append(data, []string{
			shortID(r.ID), r.Mode, r.Status, Count(r.Words), r.StartedAt.Local().Format(time.DateTime),
		})
	}
	return renderTable(w, data)
}

// RunDetail prints one catalog run with its artifacts
func RunDetail(w io.Writer, run *catalog.Run) error {
	pterm.Fprintln(w, pterm.LightCyan("Run"), run.ID)
	fmt.Fprintf(w, "  mode:      %s\n", run.Mode)
	fmt.Fprintf(w, "  status:    %s\n", run.Status)
	fmt.Fprintf(w, "  words:     %s\n", Count(run.Words))
	fmt.Fprintf(w, "  started:   %s\n", run.StartedAt.Local().Format(time.DateTime))
	if run.FinishedAt != nil {
		fmt.Fprintf(w, "  duration:  %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	if run.Warnings > 0 {
		fmt.Fprintf(w, "  skipped:   %d lengths\n", run.Warnings)
	}
	if run.Error != "" {
		fmt.Fprintf(w, "  error:     %s\n", pterm.Red(run.Error))
	}
	fmt.Fprintf(w, "  config:    %s\n", run.Config)

	if len(run.Artifacts) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	return ArtifactTable(w, run.Artifacts)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

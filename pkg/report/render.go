package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sysnap-io/sysnap/pkg/collector"
	"github.com/sysnap-io/sysnap/pkg/hostinfo"
)

const (
	reportTitle = "DIAGNOSTIC SNAPSHOT"

	summaryTitle   = "Collection Summary"
	summaryPurpose = "Failures and skipped sources recorded during the run"

	// privacyNotice tells the reader what a report can and cannot
	// contain before they share it.
	privacyNotice = `This report embeds command output and the contents of plain-text
configuration files. It may include hostnames, IP and hardware
addresses, usernames, and installed package lists. Files matching
secret name patterns, binary or data files, and files over the size
limit are never embedded; they appear only as one-line skip markers.
Review the report before sharing it.`
)

var (
	reportRule  = strings.Repeat("=", 78)
	sectionRule = strings.Repeat("-", 78)
)

// Preamble carries the once-per-run facts rendered at the top of a
// report. Generated is stamped in UTC so reports from different hosts
// order consistently.
type Preamble struct {
	ReportID  string
	Generated time.Time
	Host      hostinfo.Info
	Tool      string
}

// sectionTitle normalizes a title for the TOC and section headers.
// Existing capitals survive, so acronym titles keep their casing.
func sectionTitle(title string) string {
	return cases.Title(language.English, cases.NoLower).String(title)
}

// renderPreamble produces the title block, host identity, privacy
// notice, and numbered table of contents. The trailing summary section
// always appears as the final TOC entry.
func renderPreamble(p Preamble, sections []Section) string {
	var b strings.Builder

	b.WriteString(reportRule + "\n")
	b.WriteString(" " + reportTitle + "\n")
	b.WriteString(reportRule + "\n\n")

	fmt.Fprintf(&b, "%-9s : %s\n", "Report ID", p.ReportID)
	fmt.Fprintf(&b, "%-9s : %s\n", "Generated", p.Generated.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "%-9s : %s\n", "Host", p.Host.Hostname)
	fmt.Fprintf(&b, "%-9s : %s\n", "OS", p.Host.OS)
	fmt.Fprintf(&b, "%-9s : %s\n", "Kernel", p.Host.Kernel)
	fmt.Fprintf(&b, "%-9s : %s\n", "Arch", p.Host.Arch)
	fmt.Fprintf(&b, "%-9s : %s\n", "User", p.Host.User)
	fmt.Fprintf(&b, "%-9s : %s\n", "Uptime", hostinfo.FormatUptime(p.Host.Uptime))
	fmt.Fprintf(&b, "%-9s : %s\n", "Tool", p.Tool)
	b.WriteString("\n")

	b.WriteString(privacyNotice + "\n\n")

	b.WriteString("Contents\n\n")
	for i, s := range sections {
		fmt.Fprintf(&b, "%4d. %s\n", i+1, sectionTitle(s.Title))
		if s.Purpose != "" {
			fmt.Fprintf(&b, "      %s\n", s.Purpose)
		}
	}
	fmt.Fprintf(&b, "%4d. %s\n", len(sections)+1, summaryTitle)
	fmt.Fprintf(&b, "      %s\n", summaryPurpose)
	b.WriteString("\n")

	return b.String()
}

// renderSectionHeader frames one section. num is 1-based and matches
// the TOC.
func renderSectionHeader(num int, title, purpose string) string {
	var b strings.Builder
	b.WriteString(sectionRule + "\n")
	fmt.Fprintf(&b, " %d. %s\n", num, sectionTitle(title))
	b.WriteString(sectionRule + "\n")
	if purpose != "" {
		fmt.Fprintf(&b, "Purpose: %s\n", purpose)
	}
	b.WriteString("\n")
	return b.String()
}

func renderSectionFooter(num int) string {
	return fmt.Sprintf("----- end of section %d -----\n\n", num)
}

// renderResult produces the block for one collector outcome. Blocks end
// with exactly one newline; the caller separates them with blank lines.
func renderResult(kind collector.Kind, res collector.Result) string {
	switch res.Status {
	case collector.StatusSkipped:
		return skipLine(res.Origin, res.Reason, res.Detail)
	case collector.StatusFailed:
		return failLine(res.Origin, res.Detail)
	}

	if kind == collector.KindDir {
		return renderWalk(res)
	}

	var b strings.Builder
	b.WriteString(originLine(kind, res.Origin))
	b.WriteString(bodyText(res.Body))
	return b.String()
}

// renderWalk frames a directory walk and lists each walked file as its
// own block under the frame, with root-relative origins.
func renderWalk(res collector.Result) string {
	var b strings.Builder

	frame := fmt.Sprintf("# dir: %s (%s)", res.Origin, countNoun(len(res.Entries), "file"))
	if res.Detail != "" {
		frame += fmt.Sprintf(" (%s)", res.Detail)
	}
	b.WriteString(frame + "\n")

	for _, e := range res.Entries {
		b.WriteString("\n")
		switch e.Status {
		case collector.StatusSkipped:
			b.WriteString(skipLine(e.Origin, e.Reason, e.Detail))
		case collector.StatusFailed:
			b.WriteString(failLine(e.Origin, e.Detail))
		default:
			b.WriteString(originLine(collector.KindFile, e.Origin))
			b.WriteString(bodyText(e.Body))
		}
	}
	return b.String()
}

// renderSummary produces the trailing section. It renders even when the
// ledger is empty, with an explicit no-failures line, so downstream
// parsers always find it.
func renderSummary(num int, led *Ledger) string {
	var b strings.Builder
	b.WriteString(renderSectionHeader(num, summaryTitle, summaryPurpose))

	failures := led.Failures()
	if len(failures) == 0 {
		b.WriteString("No collector failures recorded.\n")
	} else {
		fmt.Fprintf(&b, "Failures recorded: %d\n\n", len(failures))
		for i, f := range failures {
			fmt.Fprintf(&b, "%4d. %s (%s)\n", i+1, f.Origin, f.Section)
			if f.Detail != "" {
				fmt.Fprintf(&b, "      %s\n", f.Detail)
			}
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Skipped sources: %d", led.SkipCount())
	if n := led.PermissionCount(); n > 0 {
		fmt.Fprintf(&b, " (%d permission denied)", n)
	}
	b.WriteString("\n")
	b.WriteString(renderSectionFooter(num))
	return b.String()
}

func originLine(kind collector.Kind, origin string) string {
	if kind == collector.KindCommand {
		return "$ " + origin + "\n"
	}
	return fmt.Sprintf("# %s: %s\n", kind, origin)
}

func skipLine(origin string, reason collector.SkipReason, detail string) string {
	if detail != "" {
		return fmt.Sprintf("# skipped: %s (%s: %s)\n", origin, reasonWord(reason), detail)
	}
	return fmt.Sprintf("# skipped: %s (%s)\n", origin, reasonWord(reason))
}

func failLine(origin, detail string) string {
	if detail != "" {
		return fmt.Sprintf("# failed: %s (%s)\n", origin, detail)
	}
	return fmt.Sprintf("# failed: %s\n", origin)
}

// bodyText normalizes captured content to end in exactly one newline.
// Empty captures render an explicit marker so the block never dangles.
func bodyText(body string) string {
	if body == "" {
		return "(empty)\n"
	}
	return strings.TrimRight(body, "\n") + "\n"
}

// reasonWord maps a skip reason to its human form in skip markers.
func reasonWord(r collector.SkipReason) string {
	switch r {
	case collector.SkipNotFound:
		return "not found"
	case collector.SkipPermission:
		return "permission denied"
	case collector.SkipTooLarge:
		return "too large"
	case collector.SkipBinary:
		return "binary or data"
	default:
		return string(r)
	}
}

func countNoun(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

package command

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/pwr22/covbot/internal/core"
)

const missingData = "---"

type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

// StatsReply renders the single-location answer. Locations whose feed only
// publishes confirmed counts get the short form without the outcome
// breakdown.
func (f *ResponseFormatter) StatsReply(m core.Match) string {
	st := m.Stats
	s := fmt.Sprintf("In %s there have been a total of %s cases as of %s UTC.",
		m.Location, humanize.Comma(st.Cases), st.LastUpdate.UTC().Format("2006-01-02 15:04:05"))

	if st.HasOutcomes {
		sick := st.Cases - st.Recoveries - st.Deaths
		perRec := percentOf(st.Recoveries, st.Cases)
		perDead := percentOf(st.Deaths, st.Cases)
		perSick := 100 - perRec - perDead

		s += fmt.Sprintf(" Of these %s (%.1f%%) are still sick or may have recovered without being recorded,"+
			" %s (%.1f%%) have definitely recovered and %s (%.1f%%) have died.",
			humanize.Comma(sick), perSick,
			humanize.Comma(st.Recoveries), perRec,
			humanize.Comma(st.Deaths), perDead)
	}

	return s
}

func (f *ResponseFormatter) NotFound(location string) string {
	return fmt.Sprintf("My data doesn't seem to include %s."+
		" It might be under a different name, data on it might not be available or there could even be no cases."+
		" You may have more luck if you try a less specific location, like the country it's in."+
		"\n\nIf you think I should have data on it you can open an issue at %s and Peter will take a look.",
		location, core.IssuesURL)
}

func (f *ResponseFormatter) TooManyMatches(location string) string {
	return fmt.Sprintf("I found a lot of matches for %s. Please could you be more specific?", location)
}

func (f *ResponseFormatter) Disambiguation(matches []core.Match) string {
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Location
	}
	return "Which of these did you mean?\n\n" + strings.Join(names, "\n")
}

func (f *ResponseFormatter) StaleDataWarning() string {
	return "Something went wrong fetching the latest data so stats may be outdated."
}

func (f *ResponseFormatter) CommandList(commands []core.Command) string {
	lines := make([]string, len(commands))
	for i, cmd := range commands {
		lines[i] = fmt.Sprintf("%s - %s", cmd.Usage(), cmd.Description())
	}
	return strings.Join(lines, "\n\n")
}

func (f *ResponseFormatter) HelpText(commands []core.Command) string {
	return "You can message me any of these commands:\n\n" + f.CommandList(commands)
}

func (f *ResponseFormatter) Greeting(commands []core.Command) string {
	return "Hi, I am a bot that tracks SARS-COV-2 infection statistics for you. " +
		f.HelpText(commands)
}

// CompareTable renders a monospace table for the compare command, wrapped
// in a code fence so chat clients keep the columns aligned. Stats without
// outcome data show placeholder cells.
func (f *ResponseFormatter) CompareTable(matches []core.Match) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Location", "Cases", "Sick", "%", "Recovered", "%", "Deaths", "%"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for _, m := range matches {
		st := m.Stats
		row := []string{m.Location, humanize.Comma(st.Cases)}

		if st.HasOutcomes {
			sick := st.Cases - st.Recoveries - st.Deaths
			perRec := percentOf(st.Recoveries, st.Cases)
			perDead := percentOf(st.Deaths, st.Cases)
			perSick := 100 - perRec - perDead

			row = append(row,
				humanize.Comma(sick), fmt.Sprintf("%.1f", perSick),
				humanize.Comma(st.Recoveries), fmt.Sprintf("%.1f", perRec),
				humanize.Comma(st.Deaths), fmt.Sprintf("%.1f", perDead),
			)
		} else {
			row = append(row, missingData, missingData, missingData, missingData, missingData, missingData)
		}

		table.Append(row)
	}

	table.Render()
	return "```\n" + buf.String() + "```"
}

func percentOf(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/calendar"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/directory"
	"github.com/tartampluch/go-petcare/internal/pets"
)

var (
	bold  = color.New(color.Bold)
	faint = color.New(color.Faint, color.Italic)

	urgencyColors = map[appointment.Urgency]*color.Color{
		appointment.UrgencyHigh: color.New(color.FgHiRed, color.Bold),
		appointment.UrgencyLow:  color.New(color.FgHiGreen),
	}
)

func newTable(headers ...interface{}) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	for i, h := range headers {
		headers[i] = bold.Sprint(h)
	}
	tbl.AddRow(headers...)
	return tbl
}

func printEmpty(out io.Writer, msg string) {
	_, _ = fmt.Fprintln(out, faint.Sprint(msg))
}

// printAppointments renders one row per appointment with the derived urgency.
func printAppointments(out io.Writer, list []appointment.Appointment, now time.Time) {
	if len(list) == 0 {
		printEmpty(out, config.MsgNoAppointments)
		return
	}

	tbl := newTable("ID", "DATE", "TIME", "REASON", "PROVIDER", "URGENCY", "STATUS")
	for _, a := range list {
		u := appointment.Classify(a, now)
		tbl.AddRow(a.ID, a.Date, a.Time, a.Reason, a.Provider, urgencyColors[u].Sprint(u), a.Status)
	}
	_, _ = fmt.Fprintln(out, tbl)
}

// printCalendar draws the month grid; days holding an appointment are marked.
func printCalendar(out io.Writer, appts []appointment.Appointment, year int, month time.Month) {
	title := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Format(config.MonthTitleLayout)
	_, _ = fmt.Fprintln(out, color.New(color.Bold, color.Underline).Sprint(title))

	marked := calendar.DaysWithAppointments(appts, year, month)
	mark := color.New(color.FgHiYellow, color.Bold)

	tbl := uitable.New()
	tbl.Separator = " "
	header := make([]interface{}, 0, len(calendar.Weekdays))
	for _, wd := range calendar.Weekdays {
		header = append(header, faint.Sprint(wd))
	}
	tbl.AddRow(header...)

	for _, week := range calendar.MonthGrid(year, month) {
		row := make([]interface{}, 0, len(week))
		for _, cell := range week {
			switch {
			case cell.Blank():
				row = append(row, config.BlankCell)
			case marked[cell.Day]:
				row = append(row, mark.Sprint(strconv.Itoa(cell.Day)+config.CalendarMark))
			default:
				row = append(row, strconv.Itoa(cell.Day))
			}
		}
		tbl.AddRow(row...)
	}
	for i := range calendar.Weekdays {
		tbl.RightAlign(i)
	}
	_, _ = fmt.Fprintln(out, tbl)
}

func printVets(out io.Writer, vets []directory.Vet) {
	if len(vets) == 0 {
		printEmpty(out, config.MsgNoVets)
		return
	}
	tbl := newTable("NAME", "ORGANIZATION", "PHONE", "EMAIL")
	for _, v := range vets {
		tbl.AddRow(v.Name, v.Organization, v.Phone, v.Email)
	}
	_, _ = fmt.Fprintln(out, tbl)
}

func printPets(out io.Writer, list []pets.Pet) {
	if len(list) == 0 {
		printEmpty(out, config.MsgNoPets)
		return
	}
	tbl := newTable("ID", "NAME", "VACCINES", "CONSULTS", "TREATMENTS")
	for _, p := range list {
		tbl.AddRow(p.ID, p.Name, p.Vaccines, p.Consults, p.Treatments)
	}
	_, _ = fmt.Fprintln(out, tbl)
}

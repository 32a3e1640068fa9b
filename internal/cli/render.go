package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/neyron357-boop/spares/internal/catalog"
	"github.com/neyron357-boop/spares/internal/orders"
)

// Text renderers for the human-readable output mode. Each returns the
// full block the formatter prints; golden tests pin the layouts.

const timeLayout = "2006-01-02 15:04"

func renderOverview(summaries []orders.Summary) string {
	if len(summaries) == 0 {
		return "No orders.\n"
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCAR\tYEAR\tPARTS\tCREATED")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%d\t%s\n",
			shortID(s.Car.ID), s.Car.Make, s.Car.Model, orDash(s.Car.Year),
			s.PartsCount, s.Car.CreatedAt.UTC().Format(timeLayout))
	}
	w.Flush()
	return b.String()
}

func renderDetail(d *orders.Detail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", d.Car.Make, d.Car.Model)
	if d.Car.Year != "" {
		fmt.Fprintf(&b, " (%s)", d.Car.Year)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "ID: %s\n", d.Car.ID)
	if d.Car.VIN != "" {
		fmt.Fprintf(&b, "VIN: %s\n", d.Car.VIN)
	}
	fmt.Fprintf(&b, "Created: %s\n", d.Car.CreatedAt.UTC().Format(timeLayout))

	if len(d.Parts) == 0 {
		b.WriteString("\nNo parts.\n")
		return b.String()
	}
	b.WriteString("\n")
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPART\tSTATUS\tOFFERS")
	for _, p := range d.Parts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", shortID(p.Part.ID), p.Part.Name, p.Part.Status, p.OfferCount)
	}
	w.Flush()
	return b.String()
}

func renderOffers(offers []catalog.Offer) string {
	if len(offers) == 0 {
		return "No offers.\n"
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SHOP\tPHONE\tPRICE\tLOCATION\tQUOTED")
	for _, o := range offers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			o.ShopName, o.Phone, orDash(o.CostPrice), orDash(o.LocationText),
			o.CreatedAt.UTC().Format(timeLayout))
	}
	w.Flush()
	return b.String()
}

func renderContacts(contacts []catalog.Contact) string {
	if len(contacts) == 0 {
		return "No contacts.\n"
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SHOP\tPHONE\tVEHICLES\tLAST USED")
	for _, c := range contacts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			c.Name, c.Phone, renderVehicleTags(c), c.LastUsedAt.UTC().Format(timeLayout))
	}
	w.Flush()
	return b.String()
}

// renderVehicleTags summarizes a contact's vehicle history, e.g.
// "TOYOTA/NISSAN CAMRY 2019".
func renderVehicleTags(c catalog.Contact) string {
	groups := []string{}
	for _, set := range [][]string{c.Makes, c.Models, c.Years} {
		if len(set) > 0 {
			groups = append(groups, strings.Join(set, "/"))
		}
	}
	if len(groups) == 0 {
		return "-"
	}
	return strings.Join(groups, " ")
}

// shortID truncates UUIDs to their first group for table display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

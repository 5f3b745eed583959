package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/userdesk/internal/directory"
	"github.com/dmitrijs2005/userdesk/internal/listing"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// columnTitles follows listing.SortFields.
var columnTitles = map[listing.SortField]string{
	listing.SortByID:       "ID",
	listing.SortByName:     "Name",
	listing.SortByUsername: "Username",
	listing.SortByEmail:    "Email",
	listing.SortByPhone:    "Phone",
	listing.SortByWebsite:  "Website",
	listing.SortByCity:     "City",
	listing.SortByCompany:  "Company",
}

type pageFn func(ctx context.Context) (listing.Page, error)

// show runs fetch with a loading indicator and renders the page it returns.
func (a *App) show(ctx context.Context, fetch pageFn) error {
	fmt.Fprintln(a.out, "loading...")
	page, err := fetch(ctx)
	if err != nil {
		a.report(ctx, "users", err)
		return err
	}
	renderPage(a.out, page, a.directory.Query())
	return nil
}

func (a *App) List(ctx context.Context) error {
	return a.show(ctx, a.directory.View)
}

func (a *App) Search(ctx context.Context, term string) error {
	return a.show(ctx, func(ctx context.Context) (listing.Page, error) {
		return a.directory.Search(ctx, term)
	})
}

func (a *App) Sort(ctx context.Context, name string) error {
	field, err := listing.ParseSortField(name)
	if err != nil || field == listing.SortNone {
		fmt.Fprintf(a.out, "Usage: sort <field>, one of %v\n", listing.SortFields)
		return err
	}
	return a.show(ctx, func(ctx context.Context) (listing.Page, error) {
		return a.directory.ToggleSort(ctx, field)
	})
}

func (a *App) Page(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		fmt.Fprintln(a.out, "Usage: page <n>")
		return err
	}
	return a.show(ctx, func(ctx context.Context) (listing.Page, error) {
		return a.directory.GoTo(ctx, n)
	})
}

func (a *App) Next(ctx context.Context) error {
	return a.show(ctx, a.directory.Next)
}

func (a *App) Prev(ctx context.Context) error {
	return a.show(ctx, a.directory.Prev)
}

// Refresh fetches the users again. On failure the previous list stays.
func (a *App) Refresh(ctx context.Context) error {
	fmt.Fprintln(a.out, "loading...")
	if err := a.directory.Refresh(ctx); err != nil {
		a.report(ctx, "users", err)
		return err
	}
	return a.List(ctx)
}

func (a *App) Show(ctx context.Context, arg string) error {
	id, ok := a.parseID(arg, "show")
	if !ok {
		return nil
	}

	fmt.Fprintln(a.out, "loading...")
	d, err := a.directory.Detail(ctx, id)
	if err != nil {
		a.report(ctx, "user", err)
		return err
	}

	renderUser(a.out, d.User)
	fmt.Fprintf(a.out, "\nPosts (%d):\n", len(d.Posts))
	for _, p := range d.Posts {
		fmt.Fprintf(a.out, "  #%d %s\n", p.ID, p.Title)
	}
	return nil
}

// Edit asks for every editable field in turn; empty answers keep the
// current value.
func (a *App) Edit(ctx context.Context, arg string) error {
	id, ok := a.parseID(arg, "edit")
	if !ok {
		return nil
	}

	fmt.Fprintln(a.out, "loading...")
	d, err := a.directory.Detail(ctx, id)
	if err != nil {
		a.report(ctx, "user", err)
		return err
	}

	u := d.User
	fields := []struct {
		label string
		value *string
	}{
		{"Name", &u.Name},
		{"Username", &u.Username},
		{"Email", &u.Email},
		{"Phone", &u.Phone},
		{"Website", &u.Website},
		{"Street", &u.Address.Street},
		{"Suite", &u.Address.Suite},
		{"City", &u.Address.City},
		{"Zipcode", &u.Address.Zipcode},
		{"Company", &u.Company.Name},
	}
	for _, f := range fields {
		v, err := GetFieldValue(a.reader, f.label, *f.value, a.out)
		if err != nil {
			return err
		}
		*f.value = v
	}

	updated, err := a.directory.Update(ctx, u)
	if err != nil {
		a.report(ctx, "user", err)
		return err
	}

	fmt.Fprintln(a.out, "Saved")
	renderUser(a.out, *updated)
	return nil
}

func (a *App) parseID(arg, cmd string) (int, bool) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		fmt.Fprintf(a.out, "Usage: %s <id>\n", cmd)
		return 0, false
	}
	return id, true
}

func renderPage(w io.Writer, p listing.Page, q listing.Query) {
	if p.Total == 0 {
		fmt.Fprintln(w, "No users found")
		return
	}

	headers := make([]string, 0, len(listing.SortFields))
	for _, f := range listing.SortFields {
		h := columnTitles[f]
		if f == q.SortField {
			h += " " + arrow(q.Direction)
		}
		headers = append(headers, h)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, u := range p.Items {
		t.Row(strconv.Itoa(u.ID), u.Name, u.Username, u.Email, u.Phone, u.Website, u.Address.City, u.Company.Name)
	}

	fmt.Fprintln(w, t.Render())
	if q.Search != "" {
		fmt.Fprintf(w, "Search: %q\n", q.Search)
	}
	fmt.Fprintf(w, "Page %d of %d (%d users)\n", p.Page, p.TotalPages, p.Total)
}

func renderUser(w io.Writer, u directory.User) {
	fmt.Fprintf(w, "#%d %s (@%s)\n", u.ID, u.Name, u.Username)
	fmt.Fprintf(w, "  Email:   %s\n", u.Email)
	fmt.Fprintf(w, "  Phone:   %s\n", u.Phone)
	fmt.Fprintf(w, "  Website: %s\n", u.Website)
	fmt.Fprintf(w, "  Address: %s, %s, %s %s\n", u.Address.Street, u.Address.Suite, u.Address.City, u.Address.Zipcode)
	fmt.Fprintf(w, "  Company: %s\n", u.Company.Name)
}

func arrow(d listing.Direction) string {
	if d == listing.Descending {
		return "▼"
	}
	return "▲"
}

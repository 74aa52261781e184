package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jmar008/dealaai/internal/cli/types"
)

// RenderTable renders rows as an aligned text table with a styled header.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(Styles.TableHeader.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			b.WriteString(pad(cell, widths[i]))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func pad(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// RenderVehicleTable renders a page of vehicles.
func RenderVehicleTable(list *types.VehicleList) string {
	if list == nil || len(list.Vehicles) == 0 {
		return Styles.Muted.Render("No vehicles found")
	}

	headers := []string{"VIN", "MAKE", "MODEL", "YEAR", "PRICE", "KM", "DAYS", "STATUS"}
	rows := make([][]string, 0, len(list.Vehicles))
	for _, v := range list.Vehicles {
		status := v.Status
		if v.Reserved {
			status = "reserved"
		}
		rows = append(rows, []string{
			v.VIN,
			v.Make,
			v.Model,
			fmt.Sprintf("%d", v.Year),
			fmt.Sprintf("%.2f", v.Price),
			fmt.Sprintf("%d", v.Kilometers),
			fmt.Sprintf("%d", v.DaysInStock),
			status,
		})
	}

	footer := Styles.Muted.Render(fmt.Sprintf("page %d/%d, %d vehicles total", list.Page, list.TotalPages, list.Total))
	return RenderTable(headers, rows) + footer + "\n"
}

// RenderVehicleDetail renders one vehicle as a key/value block.
func RenderVehicleDetail(v *types.Vehicle) string {
	var b strings.Builder
	write := func(key, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", Styles.Bold.Render(pad(key+":", 14)), value)
	}

	write("VIN", v.VIN)
	write("Plate", v.Plate)
	write("Make", v.Make)
	write("Model", v.Model)
	if v.Year > 0 {
		write("Year", fmt.Sprintf("%d", v.Year))
	}
	write("Color", v.Color)
	write("Fuel", v.FuelType)
	write("Transmission", v.Transmission)
	write("Price", fmt.Sprintf("%.2f", v.Price))
	if v.PreviousPrice > 0 && v.PreviousPrice != v.Price {
		write("Was", fmt.Sprintf("%.2f", v.PreviousPrice))
	}
	write("Kilometers", fmt.Sprintf("%d", v.Kilometers))
	write("Days in stock", fmt.Sprintf("%d", v.DaysInStock))
	write("Dealership", v.DealershipName)
	write("Province", v.Province)
	if v.Reserved {
		write("Reserved", "yes")
	}

	return b.String()
}

// RenderStockStats renders aggregate stock figures.
func RenderStockStats(stats *types.StockStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Styles.Bold.Render("Stock summary"))
	fmt.Fprintf(&b, "  Total:     %d\n", stats.Total)
	fmt.Fprintf(&b, "  Available: %d\n", stats.Available)
	fmt.Fprintf(&b, "  Reserved:  %d\n", stats.Reserved)
	fmt.Fprintf(&b, "  Avg price: %.2f (min %.2f, max %.2f)\n", stats.AvgPrice, stats.MinPrice, stats.MaxPrice)
	fmt.Fprintf(&b, "  Avg km:    %.0f\n", stats.AvgKm)

	if len(stats.ByMake) > 0 {
		fmt.Fprintf(&b, "%s\n", Styles.Bold.Render("By make"))
		for _, kv := range sortedCounts(stats.ByMake) {
			fmt.Fprintf(&b, "  %s %d\n", pad(kv.key, 16), kv.count)
		}
	}

	return b.String()
}

// RenderUserTable renders a page of staff accounts.
func RenderUserTable(list *types.UserList) string {
	if list == nil || len(list.Users) == 0 {
		return Styles.Muted.Render("No users found")
	}

	headers := []string{"USERNAME", "NAME", "EMAIL", "DEALERSHIP", "CHAT", "ACTIVE"}
	rows := make([][]string, 0, len(list.Users))
	for _, u := range list.Users {
		dealership := ""
		if u.Dealership != nil {
			dealership = u.Dealership.Name
		}
		rows = append(rows, []string{
			u.Username,
			u.FullName,
			u.Email,
			dealership,
			yesNo(u.ChatEnabled),
			yesNo(u.Active),
		})
	}

	footer := Styles.Muted.Render(fmt.Sprintf("%d users total", list.Total))
	return RenderTable(headers, rows) + footer + "\n"
}

// RenderConversationTable renders conversation summaries.
func RenderConversationTable(list *types.ConversationList) string {
	if list == nil || len(list.Conversations) == 0 {
		return Styles.Muted.Render("No conversations yet")
	}

	headers := []string{"ID", "TITLE", "MESSAGES", "UPDATED"}
	rows := make([][]string, 0, len(list.Conversations))
	for _, c := range list.Conversations {
		rows = append(rows, []string{
			c.ID,
			c.Title,
			fmt.Sprintf("%d", c.MessageCount),
			c.UpdatedAt,
		})
	}

	return RenderTable(headers, rows)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

type countEntry struct {
	key   string
	count int
}

func sortedCounts(m map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(m))
	for k, v := range m {
		entries = append(entries, countEntry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	return entries
}

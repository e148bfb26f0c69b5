package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/types"
)

var (
	titleStyleAlbum = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)  // Cyan
	artistStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))             // Blue
	keyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))            // Gray
	valueStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))            // Yellow
	priceStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true) // Pink

	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)
)

// FormatPrice renders a price the way the catalog displays it, two fractional
// digits with a dollar sign.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// RenderAlbumTable renders the album catalog as a table.
func RenderAlbumTable(albums []types.Album) string {
	if len(albums) == 0 {
		return keyStyle.Render("No albums found")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(keyStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers("ID", "TITLE", "ARTIST", "PRICE")

	for _, album := range albums {
		t.Row(
			strconv.Itoa(album.ID),
			album.Title,
			album.Artist,
			FormatPrice(album.Price),
		)
	}

	return t.Render()
}

// RenderAlbumDetail renders a single album's fields.
func RenderAlbumDetail(album *types.Album) string {
	detail := fmt.Sprintf("%s\n%s\n%s",
		titleStyleAlbum.Render(album.Title),
		artistStyle.Render(album.Artist),
		priceStyle.Render(FormatPrice(album.Price)),
	)

	meta := fmt.Sprintf("%s %s\n%s %s",
		keyStyle.Render("Created:"),
		valueStyle.Render(album.CreatedAt.Format("2006-01-02 15:04")),
		keyStyle.Render("Updated:"),
		valueStyle.Render(album.UpdatedAt.Format("2006-01-02 15:04")),
	)

	return detail + "\n\n" + meta
}

// RenderAlbumSummary renders the count line shown under the table.
func RenderAlbumSummary(count int) string {
	noun := "albums"
	if count == 1 {
		noun = "album"
	}
	return summaryStyle.Render(fmt.Sprintf("%d %s in catalog", count, noun))
}

package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/message"

	"country-explorer/internal/domain/entity"
	"country-explorer/internal/usecase/explore"
	"country-explorer/internal/usecase/listing"
)

func renderPage(w io.Writer, p *message.Printer, page listing.Page, q listing.Query, favs entity.FavoriteSet) {
	if page.Empty {
		if q.View == listing.ViewFavorites {
			fmt.Fprintln(w, "No favorites yet. Start exploring and save your favorite countries!")
		} else {
			fmt.Fprintln(w, "No countries found. Try adjusting your filters.")
		}
		return
	}

	p.Fprintf(w, "Showing %d-%d of %d countries", page.Meta.From, page.Meta.To, page.Meta.Total)
	if page.Meta.TotalPages > 1 {
		fmt.Fprintf(w, " (page %d of %d)", page.Meta.Page, page.Meta.TotalPages)
	}
	fmt.Fprintln(w)

	for _, c := range page.Items {
		mark := " "
		if favs.Contains(c.Code) {
			mark = "*"
		}
		capital := c.Capital
		if !c.HasCapital() {
			capital = "N/A"
		}
		p.Fprintf(w, "%s %s  %-32s %-20s %-10s %15d\n", mark, c.Code, c.CommonName, capital, c.Region, c.Population)
	}

	var hints []string
	if page.Meta.HasPrev() {
		hints = append(hints, "'prev' for the previous page")
	}
	if page.Meta.HasNext() {
		hints = append(hints, "'next' for the next page")
	}
	if len(hints) > 0 {
		fmt.Fprintf(w, "Type %s.\n", strings.Join(hints, ", "))
	}
}

func renderDetail(w io.Writer, p *message.Printer, d *explore.Detail, favorite bool) {
	c := d.Country
	title := c.CommonName
	if favorite {
		title += " *"
	}
	fmt.Fprintf(w, "\n%s (%s)\n", title, c.Code)
	if c.OfficialName != "" {
		fmt.Fprintf(w, "  Official name: %s\n", c.OfficialName)
	}
	if c.FlagURL != "" {
		fmt.Fprintf(w, "  Flag:          %s\n", c.FlagURL)
	}
	if c.HasCapital() {
		fmt.Fprintf(w, "  Capital:       %s\n", c.Capital)
	}
	region := c.Region
	if c.Subregion != "" {
		region += " / " + c.Subregion
	}
	fmt.Fprintf(w, "  Region:        %s\n", region)
	p.Fprintf(w, "  Population:    %d\n", c.Population)
	if c.Area != nil {
		p.Fprintf(w, "  Area:          %d km²\n", int64(math.Round(*c.Area)))
	}
	if langs := c.LanguageNames(); len(langs) > 0 {
		fmt.Fprintf(w, "  Languages:     %s\n", strings.Join(langs, ", "))
	}
	if curs := c.CurrencyLabels(); len(curs) > 0 {
		fmt.Fprintf(w, "  Currencies:    %s\n", strings.Join(curs, ", "))
	}
	if len(c.Borders) > 0 {
		fmt.Fprintf(w, "  Borders:       %s\n", strings.Join(c.Borders, ", "))
	}

	fmt.Fprintln(w, "\nWeather")
	if d.Weather == nil {
		fmt.Fprintln(w, "  Weather information not available")
	} else {
		wx := d.Weather
		fmt.Fprintf(w, "  %s: %.0f°C, %s (%s)\n", wx.Location, wx.TempC, wx.Condition, wx.Description)
		fmt.Fprintf(w, "  Feels like %.0f°C, humidity %d%%, wind %.1f m/s\n", wx.FeelsLikeC, wx.Humidity, wx.WindSpeed)
	}

	fmt.Fprintln(w, "\nLatest news")
	if d.NewsStatus() == explore.NewsEmpty {
		fmt.Fprintln(w, "  No news data available")
		return
	}
	for _, n := range d.News {
		fmt.Fprintf(w, "  - %s\n", n.Title)
		meta := n.SourceName
		if !n.PublishedAt.IsZero() {
			meta = strings.TrimPrefix(meta+", "+n.PublishedAt.Format("January 2, 2006"), ", ")
		}
		if meta != "" {
			fmt.Fprintf(w, "    %s\n", meta)
		}
		if n.URL != "" {
			fmt.Fprintf(w, "    %s\n", n.URL)
		}
	}
}

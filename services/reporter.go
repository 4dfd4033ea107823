package services

import (
	"fmt"
	"sort"
	"strings"

	"gmaps-stays-scraper/models"
)

// PrintRunReport formats and prints the run report to terminal
func PrintRunReport(report *models.RunReport) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	fmt.Printf("\n╔%s╗\n", border)
	fmt.Printf("║%s║\n", center("LODGING SCRAPE SUMMARY", 55))
	fmt.Printf("╚%s╝\n", border)

	fmt.Printf("\n OVERVIEW\n%s\n", thin)
	fmt.Printf("  Total Stays Collected   : %d\n", report.TotalStays)
	fmt.Printf("  With Rating             : %d\n", report.WithRating)
	fmt.Printf("  With Website            : %d\n", report.WithWebsite)
	fmt.Printf("  With Phone              : %d\n", report.WithPhone)
	fmt.Printf("  Average Rating          : %.2f\n", report.AverageRating)

	if len(report.StaysByCategory) > 0 {
		fmt.Printf("\n STAYS PER SEARCH QUERY\n%s\n", thin)
		// Sort by count descending
		type catCount struct {
			cat   string
			count int
		}
		var cats []catCount
		for cat, cnt := range report.StaysByCategory {
			cats = append(cats, catCount{cat, cnt})
		}
		sort.Slice(cats, func(i, j int) bool {
			return cats[i].count > cats[j].count
		})
		for _, cc := range cats {
			bar := strings.Repeat("▓", cc.count)
			fmt.Printf("  %-28s %3d  %s\n", cc.cat+":", cc.count, bar)
		}
	}

	if len(report.TopRated) > 0 {
		fmt.Printf("\n TOP %d HIGHEST RATED STAYS\n%s\n", len(report.TopRated), thin)
		for i, st := range report.TopRated {
			rating := 0.0
			if st.Rating != nil {
				rating = *st.Rating
			}
			fmt.Printf("  %d. %-35s %.1f\n", i+1, truncate(st.Name, 35), rating)
		}
	}

	fmt.Printf("\n%s\n\n", border)
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

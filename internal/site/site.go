// Package site renders assembled seasons into the static tracker page.
package site

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vinner21/water-follow/internal/waterpolo"
)

// Config carries the handful of values the page needs beyond the data.
type Config struct {
	ClubID        string
	ClupikBaseURL string
}

// robotsTxt blocks crawlers; the page is for club members only.
const robotsTxt = "User-agent: *\nDisallow: /\n"

// Catalan day abbreviations, indexed by time.Weekday (Sunday first).
var dayNames = [7]string{"Dg", "Dl", "Dt", "Dc", "Dj", "Dv", "Ds"}

// FormatDate renders a match timestamp for display, e.g.
// "Ds 04/10/2025 12:30". Undated matches read "Per determinar".
func FormatDate(date string) string {
	if date == "" {
		return "Per determinar"
	}
	d, err := time.Parse(waterpolo.MatchDateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s %02d/%02d/%d %02d:%02d",
		dayNames[d.Weekday()], d.Day(), d.Month(), d.Year(), d.Hour(), d.Minute())
}

// FormatDateShort is the compact variant used in match rows, "04/10 12:30".
func FormatDateShort(date string) string {
	if date == "" {
		return "TBD"
	}
	d, err := time.Parse(waterpolo.MatchDateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%02d/%02d %02d:%02d", d.Day(), d.Month(), d.Hour(), d.Minute())
}

type categoryView struct {
	Category  *waterpolo.Category
	ShortName string
	AgeLabel  string
	ageOrder  int
	Anchor    string
}

type seasonView struct {
	Season     *waterpolo.Season
	Categories []categoryView
	IsCurrent  bool
}

type pageData struct {
	Seasons   []seasonView
	Config    Config
	BuiltAt   string
	PlayerKey string
}

// Render produces the complete HTML page for the given seasons, which
// must already be in display order.
func Render(seasons []*waterpolo.Season, cfg Config) (string, error) {
	data := pageData{
		Config:    cfg,
		BuiltAt:   time.Now().UTC().Format("02/01/2006 15:04 UTC"),
		PlayerKey: waterpolo.RolePlayer,
	}
	for _, season := range seasons {
		cats := waterpolo.AgeCategories(season.StartYear)
		view := seasonView{
			Season:    season,
			IsCurrent: season.Status == waterpolo.StatusCurrent,
		}
		for _, cat := range season.Categories {
			order, ageLabel := waterpolo.CategoryAgeInfo(cat.TournamentName, cats)
			view.Categories = append(view.Categories, categoryView{
				Category:  cat,
				ShortName: waterpolo.ShortCategory(cat.TournamentName),
				AgeLabel:  ageLabel,
				ageOrder:  order,
				Anchor:    fmt.Sprintf("s%s-%s", season.ID, waterpolo.Slug(cat.TournamentName)),
			})
		}
		// Youngest categories first.
		sort.SliceStable(view.Categories, func(i, j int) bool {
			return view.Categories[i].ageOrder < view.Categories[j].ageOrder
		})
		data.Seasons = append(data.Seasons, view)
	}

	var b strings.Builder
	if err := pageTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering site: %w", err)
	}
	return b.String(), nil
}

// WriteSite renders the page and writes index.html and robots.txt under
// dir, creating it if needed.
func WriteSite(dir string, seasons []*waterpolo.Season, cfg Config) error {
	html, err := Render(seasons, cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	indexPath := filepath.Join(dir, "index.html")
	if err := os.WriteFile(indexPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("writing index.html: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "robots.txt"), []byte(robotsTxt), 0o644); err != nil {
		return fmt.Errorf("writing robots.txt: %w", err)
	}
	log.Info("Site generated", "path", indexPath, "seasons", len(seasons))
	return nil
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"formatDate":      FormatDate,
	"formatDateShort": FormatDateShort,
	"teamName": func(names map[string]string, id string) string {
		if id == "" {
			return "Descansa"
		}
		if name, ok := names[id]; ok {
			return name
		}
		return fmt.Sprintf("Equip %s", id)
	},
	"outcome": func(m *waterpolo.Match, ids waterpolo.TeamIDSet) string {
		return string(m.Outcome(ids))
	},
	"score": func(m *waterpolo.Match, teamID string) string {
		if v, ok := m.ScoreFor(teamID); ok {
			return fmt.Sprintf("%d", v)
		}
		return "-"
	},
}).Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="ca">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="robots" content="noindex,nofollow">
<title>Water Polo Tracker</title>
</head>
<body>
<header>
<h1>Water Polo Tracker</h1>
</header>
<main>
{{range .Seasons}}
<section class="season{{if .IsCurrent}} current{{end}}" id="season-{{.Season.ID}}">
<h2>Temporada {{.Season.Label}}{{if .IsCurrent}} (En curs){{end}}</h2>
{{range .Categories}}
<article class="category" id="{{.Anchor}}">
<h3>{{.ShortName}}</h3>
{{if .AgeLabel}}<p class="age">{{.AgeLabel}}</p>{{end}}
{{$cat := .Category}}
{{range $cat.Groups}}
<h4>{{.Name}}</h4>
<table class="standings">
<thead><tr><th></th><th>Equip</th><th>PJ</th><th>G</th><th>E</th><th>P</th><th>GF</th><th>GC</th><th>Dif</th><th>Pts</th></tr></thead>
<tbody>
{{$group := .}}
{{range .Standings}}
<tr{{if $group.OurTeamIDs.Has .TeamID}} class="ours"{{end}}>
<td>{{.Position}}</td><td>{{.TeamName}}</td>
<td>{{.Played}}</td><td>{{.Won}}</td><td>{{.Drawn}}</td><td>{{.Lost}}</td>
<td>{{.GoalsFor}}</td><td>{{.GoalsAgainst}}</td><td>{{.GoalDiff}}</td><td>{{.Points}}</td>
</tr>
{{end}}
</tbody>
</table>
{{end}}
<ul class="matches">
{{range $cat.Matches}}
<li class="match {{outcome . $cat.OurTeamIDs}}">
<span class="date" title="{{formatDate .Date}}">{{formatDateShort .Date}}</span>
<span class="home">{{teamName $cat.TeamNames .HomeTeam}}</span>
<span class="result">{{score . .HomeTeam}} - {{score . .AwayTeam}}</span>
<span class="away">{{teamName $cat.TeamNames .AwayTeam}}</span>
{{if .Venue}}<span class="venue">{{.Venue}}</span>{{end}}
{{if .Postponed}}<span class="flag">Ajornat</span>{{end}}
{{if .Canceled}}<span class="flag">Cancel·lat</span>{{end}}
</li>
{{end}}
</ul>
{{range $cat.OurTeams}}
{{$roster := index $cat.Rosters .ID}}
{{if $roster}}
<details class="roster">
<summary>{{.Name}}</summary>
<ul>
{{range $roster}}
<li class="{{if eq .Role $.PlayerKey}}player{{else}}staff{{end}}">{{.LastName}}, {{.FirstName}}{{if ne .Role $.PlayerKey}} ({{.Role}}){{end}}</li>
{{end}}
</ul>
</details>
{{end}}
{{end}}
</article>
{{end}}
<p class="refreshed">Actualitzat: {{.Season.RefreshedAt}}</p>
</section>
{{end}}
</main>
<footer>
<p><a href="{{.Config.ClupikBaseURL}}" rel="noopener">Clupik</a> · Generat {{.BuiltAt}}</p>
</footer>
</body>
</html>
`

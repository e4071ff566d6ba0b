package leverade

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vinner21/water-follow/internal/metrics"
	"github.com/vinner21/water-follow/internal/waterpolo"
)

// requestDelay is the hard floor between consecutive API calls, to respect
// upstream rate limits. It is not a backoff; calls are never parallelized.
const requestDelay = 300 * time.Millisecond

// APIClient is the HTTP implementation of the Client interface.
type APIClient struct {
	httpClient *http.Client
	baseURL    string
	delay      time.Duration
	lastCall   time.Time
	metrics    metrics.Metrics
}

var _ Client = (*APIClient)(nil)

// NewClient creates a new Leverade client.
func NewClient(baseURL string, m metrics.Metrics) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		delay:      requestDelay,
		metrics:    m,
	}
}

// get performs one rate-limited GET and decodes the JSON:API envelope.
func (c *APIClient) get(endpoint string, params url.Values) (*Document, error) {
	if wait := c.delay - time.Since(c.lastCall); wait > 0 {
		time.Sleep(wait)
	}
	c.lastCall = time.Now()
	c.metrics.IncAPIRequest()

	u := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	log.Debug("Requesting Leverade API", "url", u)
	resp, err := c.httpClient.Get(u)
	if err != nil {
		return nil, &RequestError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("leverade: decoding %s response: %w", endpoint, err)
	}
	return &doc, nil
}

func include(rels string) url.Values {
	return url.Values{"include": {rels}}
}

func (c *APIClient) ManagerTournaments(managerID string) ([]waterpolo.Tournament, error) {
	doc, err := c.get("managers/"+managerID, include("tournaments"))
	if err != nil {
		return nil, err
	}
	var tournaments []waterpolo.Tournament
	for i := range doc.Included {
		res := &doc.Included[i]
		if res.Type != "tournament" {
			continue
		}
		var attrs struct {
			Name   string `json:"name"`
			Gender string `json:"gender"`
			Order  int    `json:"order"`
			Status string `json:"status"`
		}
		if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("leverade: decoding tournament %s attributes: %w", res.ID, err)
		}
		seasonID := ""
		if ref := res.relOne("season"); ref != nil {
			seasonID = string(ref.ID)
		}
		tournaments = append(tournaments, waterpolo.Tournament{
			ID:       string(res.ID),
			Name:     attrs.Name,
			Gender:   attrs.Gender,
			Order:    attrs.Order,
			SeasonID: seasonID,
			Status:   waterpolo.TournamentStatus(attrs.Status),
		})
	}
	return tournaments, nil
}

func (c *APIClient) TournamentTeams(tournamentID string) ([]Team, error) {
	doc, err := c.get("tournaments/"+tournamentID, include("teams"))
	if err != nil {
		return nil, err
	}
	var teams []Team
	for i := range doc.Included {
		res := &doc.Included[i]
		if res.Type != "team" {
			continue
		}
		var attrs struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("leverade: decoding team %s attributes: %w", res.ID, err)
		}
		team := Team{ID: string(res.ID), Name: attrs.Name}
		if ref := res.relOne("club"); ref != nil {
			team.ClubID = string(ref.ID)
		}
		if len(res.Meta) > 0 {
			var meta struct {
				Avatar struct {
					Large string `json:"large"`
				} `json:"avatar"`
			}
			if err := json.Unmarshal(res.Meta, &meta); err == nil {
				team.Avatar = meta.Avatar.Large
			}
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func (c *APIClient) TournamentGroups(tournamentID string) ([]GroupInfo, error) {
	doc, err := c.get("tournaments/"+tournamentID, include("groups"))
	if err != nil {
		return nil, err
	}
	var groups []GroupInfo
	for i := range doc.Included {
		res := &doc.Included[i]
		if res.Type != "group" {
			continue
		}
		var attrs struct {
			Name  string `json:"name"`
			Order int    `json:"order"`
			Type  string `json:"type"`
		}
		if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("leverade: decoding group %s attributes: %w", res.ID, err)
		}
		groups = append(groups, GroupInfo{
			ID:    string(res.ID),
			Name:  attrs.Name,
			Order: attrs.Order,
			Type:  attrs.Type,
		})
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Order < groups[j].Order })
	return groups, nil
}

func (c *APIClient) GroupRounds(groupID string) (*GroupDetail, error) {
	doc, err := c.get("groups/"+groupID, include("rounds"))
	if err != nil {
		return nil, err
	}
	detail := &GroupDetail{ID: groupID}
	var data Resource
	if err := json.Unmarshal(doc.Data, &data); err == nil {
		var attrs struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data.Attributes, &attrs); err == nil {
			detail.Name = attrs.Name
		}
	}
	for i := range doc.Included {
		res := &doc.Included[i]
		if res.Type != "round" {
			continue
		}
		var attrs struct {
			Name      string `json:"name"`
			Order     int    `json:"order"`
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
		}
		if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("leverade: decoding round %s attributes: %w", res.ID, err)
		}
		detail.Rounds = append(detail.Rounds, Round{
			ID:        string(res.ID),
			Name:      attrs.Name,
			Order:     attrs.Order,
			StartDate: attrs.StartDate,
			EndDate:   attrs.EndDate,
		})
	}
	sort.SliceStable(detail.Rounds, func(i, j int) bool {
		return detail.Rounds[i].Order < detail.Rounds[j].Order
	})
	return detail, nil
}

func (c *APIClient) GroupStandings(groupID string) ([]waterpolo.StandingRow, error) {
	doc, err := c.get("groups/"+groupID+"/standings", nil)
	if err != nil {
		return nil, err
	}
	var meta struct {
		Rows []struct {
			ID       flexID `json:"id"`
			Name     string `json:"name"`
			Position int    `json:"position"`
			Stats    []struct {
				Type  string `json:"type"`
				Value int    `json:"value"`
			} `json:"standingsstats"`
		} `json:"standingsrows"`
	}
	if len(doc.Meta) > 0 {
		if err := json.Unmarshal(doc.Meta, &meta); err != nil {
			return nil, fmt.Errorf("leverade: decoding standings for group %s: %w", groupID, err)
		}
	}
	standings := make([]waterpolo.StandingRow, 0, len(meta.Rows))
	for _, row := range meta.Rows {
		stats := make(map[string]int, len(row.Stats))
		for _, s := range row.Stats {
			stats[s.Type] = s.Value
		}
		standings = append(standings, waterpolo.StandingRow{
			TeamID:       string(row.ID),
			TeamName:     row.Name,
			Position:     row.Position,
			Points:       stats["score"],
			Played:       stats["played_matches"],
			Won:          stats["won_matches"],
			Drawn:        stats["drawn_matches"],
			Lost:         stats["lost_matches"],
			GoalsFor:     stats["value"],
			GoalsAgainst: stats["value_against"],
			GoalDiff:     stats["value_difference"],
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Position < standings[j].Position
	})
	return standings, nil
}

func (c *APIClient) RoundMatches(roundID string) ([]*waterpolo.Match, error) {
	doc, err := c.get("rounds/"+roundID, include("matches.results,matches.facility"))
	if err != nil {
		return nil, err
	}
	ix := newIndex(doc.Included)

	results := make(map[string]waterpolo.MatchResult)
	for _, res := range ix.OfType("result") {
		var attrs struct {
			Value int `json:"value"`
			Score int `json:"score"`
		}
		if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("leverade: decoding result %s attributes: %w", res.ID, err)
		}
		teamID := ""
		if ref := res.relOne("team"); ref != nil {
			teamID = string(ref.ID)
		}
		results[string(res.ID)] = waterpolo.MatchResult{
			TeamID: teamID,
			Value:  attrs.Value,
			Score:  attrs.Score,
		}
	}

	venues := make(map[string]string)
	for _, res := range ix.OfType("facility") {
		var attrs struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(res.Attributes, &attrs); err == nil {
			venues[string(res.ID)] = attrs.Name
		}
	}

	var matches []*waterpolo.Match
	for _, res := range ix.OfType("match") {
		var attrs struct {
			Date      string `json:"date"`
			Finished  bool   `json:"finished"`
			Canceled  bool   `json:"canceled"`
			Postponed bool   `json:"postponed"`
			Rest      bool   `json:"rest"`
		}
		if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("leverade: decoding match %s attributes: %w", res.ID, err)
		}
		var meta struct {
			HomeTeam flexID `json:"home_team"`
			AwayTeam flexID `json:"away_team"`
		}
		if len(res.Meta) > 0 {
			if err := json.Unmarshal(res.Meta, &meta); err != nil {
				return nil, fmt.Errorf("leverade: decoding match %s meta: %w", res.ID, err)
			}
		}
		m := &waterpolo.Match{
			ID:        string(res.ID),
			Date:      attrs.Date,
			Finished:  attrs.Finished,
			Canceled:  attrs.Canceled,
			Postponed: attrs.Postponed,
			Rest:      attrs.Rest,
			HomeTeam:  string(meta.HomeTeam),
			AwayTeam:  string(meta.AwayTeam),
		}
		if ref := res.relOne("facility"); ref != nil {
			m.Venue = venues[string(ref.ID)]
		}
		if rel, ok := res.Relationships["results"]; ok {
			for _, ref := range rel.Many() {
				if r, found := results[string(ref.ID)]; found {
					m.Results = append(m.Results, r)
				}
			}
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (c *APIClient) TeamName(teamID string) (string, error) {
	doc, err := c.get("teams/"+teamID, nil)
	if err != nil {
		return "", err
	}
	var data Resource
	if err := json.Unmarshal(doc.Data, &data); err != nil {
		return "", fmt.Errorf("leverade: decoding team %s: %w", teamID, err)
	}
	var attrs struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data.Attributes, &attrs); err != nil {
		return "", fmt.Errorf("leverade: decoding team %s attributes: %w", teamID, err)
	}
	return attrs.Name, nil
}

func (c *APIClient) TeamRoster(teamID string) (waterpolo.Roster, error) {
	doc, err := c.get("teams/"+teamID, include("participants.license.profile"))
	if err != nil {
		return nil, err
	}
	ix := newIndex(doc.Included)

	roster := waterpolo.Roster{}
	for _, p := range ix.OfType("participant") {
		licRef := p.relOne("license")
		if licRef == nil {
			continue
		}
		role := "unknown"
		var profile struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Birthdate string `json:"birthdate"`
		}
		if lic := ix.Get("license", string(licRef.ID)); lic != nil {
			var attrs struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(lic.Attributes, &attrs); err == nil && attrs.Type != "" {
				role = attrs.Type
			}
			if profRef := lic.relOne("profile"); profRef != nil {
				if prof := ix.Get("profile", string(profRef.ID)); prof != nil {
					if err := json.Unmarshal(prof.Attributes, &profile); err != nil {
						return nil, fmt.Errorf("leverade: decoding profile %s: %w", prof.ID, err)
					}
				}
			}
		}
		// Upstream records without a first name are incomplete; drop them.
		if profile.FirstName == "" {
			continue
		}
		roster = append(roster, waterpolo.RosterEntry{
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Birthdate: profile.Birthdate,
			Role:      role,
		})
	}

	// Players first, each section sorted by last then first name.
	sort.SliceStable(roster, func(i, j int) bool {
		a, b := roster[i], roster[j]
		ap, bp := 0, 0
		if a.Role != waterpolo.RolePlayer {
			ap = 1
		}
		if b.Role != waterpolo.RolePlayer {
			bp = 1
		}
		if ap != bp {
			return ap < bp
		}
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		return a.FirstName < b.FirstName
	})
	return roster, nil
}

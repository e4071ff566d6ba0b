package leverade

import "fmt"

// RequestError reports a failed API request: a non-2xx HTTP status or a
// transport failure. There is no automatic retry; callers decide whether
// a failure is fatal or skippable.
type RequestError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("leverade: request %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("leverade: request %s returned status %d", e.Endpoint, e.Status)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Team is a team as listed under a tournament, with its owning club.
type Team struct {
	ID     string
	Name   string
	ClubID string
	Avatar string
}

// GroupInfo is a group as listed under a tournament, before its standings
// and rounds are fetched.
type GroupInfo struct {
	ID    string
	Name  string
	Order int
	Type  string
}

// Round is one matchday inside a group.
type Round struct {
	ID        string
	Name      string
	Order     int
	StartDate string
	EndDate   string
}

// GroupDetail is a group with its ordered rounds.
type GroupDetail struct {
	ID     string
	Name   string
	Rounds []Round
}

package model

// Scenario holds the ground-truth meeting facts grounding assertions are
// checked against. It is produced once per input (loaded from a file or
// synthesized by the external scenario capability) and read-only afterward.
type Scenario struct {
	Title       string     `json:"title"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Timezone    string     `json:"timezone"`
	Organizer   string     `json:"organizer"`
	Attendees   []Attendee `json:"attendees"`
	Artifacts   []string   `json:"artifacts"`
	ActionItems []string   `json:"action_items"`
}

// Attendee is one invitee in the reference scenario
type Attendee struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// AttendeeNames returns just the names, in invite order
func (s *Scenario) AttendeeNames() []string {
	names := make([]string, 0, len(s.Attendees))
	for _, a := range s.Attendees {
		names = append(names, a.Name)
	}
	return names
}

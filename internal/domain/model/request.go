package model

// GenerationRequest is the normalized record handed to the generation
// collaborator. Every text field is trimmed; missing optionals are "".
type GenerationRequest struct {
	FirstName string
	LastName  string
	// Name is first and last name separated by a space.
	Name string
	// Titles are the normalized role titles; Title joins them with ", ".
	Titles []string
	Title  string

	Expertise   string
	Credibility string

	PodcastName  string
	HostName     string
	GuestName    string
	EpisodeTopic string
	WhyPodcast   string

	SocialPlatform string
	// FollowerCount is the parsed follower count, 0 when unparseable.
	FollowerCount int
	// RoundedFollowers is the rounded-up count formatted for display, e.g. "10,000".
	RoundedFollowers string

	Topic1          string
	Topic2          string
	Topic3          string
	UniqueAngle     string
	AudienceBenefit string
}

// Topics returns the non-empty topic ideas in order.
func (r GenerationRequest) Topics() []string {
	out := make([]string, 0, 3)
	for _, t := range []string{r.Topic1, r.Topic2, r.Topic3} {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

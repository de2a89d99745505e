// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"strings"
)

// Field keys of a PitchForm. They match the JSON names of the form.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldTitle           = "title"
	FieldExpertise       = "expertise"
	FieldCredibility     = "credibility"
	FieldPodcastName     = "podcastName"
	FieldHostName        = "hostName"
	FieldGuestName       = "guestName"
	FieldEpisodeTopic    = "episodeTopic"
	FieldWhyPodcast      = "whyPodcast"
	FieldSocialPlatform  = "socialPlatform"
	FieldFollowers       = "followers"
	FieldTopic1          = "topic1"
	FieldTopic2          = "topic2"
	FieldTopic3          = "topic3"
	FieldUniqueAngle     = "uniqueAngle"
	FieldAudienceBenefit = "audienceBenefit"
)

// PitchForm is the raw pitch input submitted by the form.
type PitchForm struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Title           Titles `json:"title"`
	Expertise       string `json:"expertise"`
	Credibility     string `json:"credibility"`
	PodcastName     string `json:"podcastName"`
	HostName        string `json:"hostName"`
	GuestName       string `json:"guestName"`
	EpisodeTopic    string `json:"episodeTopic"`
	WhyPodcast      string `json:"whyPodcast"`
	SocialPlatform  string `json:"socialPlatform"`
	Followers       Count  `json:"followers"`
	Topic1          string `json:"topic1"`
	Topic2          string `json:"topic2"`
	Topic3          string `json:"topic3"`
	UniqueAngle     string `json:"uniqueAngle"`
	AudienceBenefit string `json:"audienceBenefit"`
}

// Text returns the value of a plain text field by key. Title is not a text
// field and reports false.
func (f PitchForm) Text(field string) (string, bool) {
	switch field {
	case FieldFirstName:
		return f.FirstName, true
	case FieldLastName:
		return f.LastName, true
	case FieldExpertise:
		return f.Expertise, true
	case FieldCredibility:
		return f.Credibility, true
	case FieldPodcastName:
		return f.PodcastName, true
	case FieldHostName:
		return f.HostName, true
	case FieldGuestName:
		return f.GuestName, true
	case FieldEpisodeTopic:
		return f.EpisodeTopic, true
	case FieldWhyPodcast:
		return f.WhyPodcast, true
	case FieldSocialPlatform:
		return f.SocialPlatform, true
	case FieldFollowers:
		return string(f.Followers), true
	case FieldTopic1:
		return f.Topic1, true
	case FieldTopic2:
		return f.Topic2, true
	case FieldTopic3:
		return f.Topic3, true
	case FieldUniqueAngle:
		return f.UniqueAngle, true
	case FieldAudienceBenefit:
		return f.AudienceBenefit, true
	}
	return "", false
}

// SetText assigns a plain text field by key. Unknown keys and Title report false.
func (f *PitchForm) SetText(field, value string) bool {
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldExpertise:
		f.Expertise = value
	case FieldCredibility:
		f.Credibility = value
	case FieldPodcastName:
		f.PodcastName = value
	case FieldHostName:
		f.HostName = value
	case FieldGuestName:
		f.GuestName = value
	case FieldEpisodeTopic:
		f.EpisodeTopic = value
	case FieldWhyPodcast:
		f.WhyPodcast = value
	case FieldSocialPlatform:
		f.SocialPlatform = value
	case FieldFollowers:
		f.Followers = Count(value)
	case FieldTopic1:
		f.Topic1 = value
	case FieldTopic2:
		f.Topic2 = value
	case FieldTopic3:
		f.Topic3 = value
	case FieldUniqueAngle:
		f.UniqueAngle = value
	case FieldAudienceBenefit:
		f.AudienceBenefit = value
	default:
		return false
	}
	return true
}

// Count is a free-text number such as a follower count. JSON accepts a string,
// a number or null.
type Count string

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = Count(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = Count(n.String())
	return nil
}

// Titles is the set of role titles. JSON accepts an array of strings, a bare
// string (one title) or null.
type Titles []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Titles) UnmarshalJSON(b []byte) error {
	var many []string
	if err := json.Unmarshal(b, &many); err == nil {
		*t = many
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	if one == "" {
		*t = nil
		return nil
	}
	*t = Titles{one}
	return nil
}

// Normalized returns the trimmed, non-blank, de-duplicated titles in first-seen order.
func (t Titles) Normalized() []string {
	out := make([]string, 0, len(t))
	seen := make(map[string]struct{}, len(t))
	for _, s := range t {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Joined renders the normalized titles separated by ", ".
func (t Titles) Joined() string {
	return strings.Join(t.Normalized(), ", ")
}

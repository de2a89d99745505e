package crm

import (
	"strings"

	"github.com/okian/pitchgate/internal/domain/model"
)

// Source and default tags attached to every synced contact.
const (
	Source           = "Podcast Pitch Generator"
	TagGenerator     = "Podcast Pitch Generator"
	TagNewsletter    = "Content Catalyst Newsletter"
	rolePrefix       = "Role: "
	podcastTagPrefix = "Podcast: "
)

// CustomField is one CRM custom field value.
type CustomField struct {
	Key        string `json:"key"`
	FieldValue string `json:"field_value"`
}

// Contact is the upsert payload.
type Contact struct {
	Email        string        `json:"email"`
	LocationID   string        `json:"locationId,omitempty"`
	FirstName    string        `json:"firstName,omitempty"`
	LastName     string        `json:"lastName,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
	CustomFields []CustomField `json:"customFields,omitempty"`
	Source       string        `json:"source"`
}

// customFieldKeys maps form fields to CRM custom field keys, in payload order.
var customFieldKeys = []struct {
	field string
	key   string
}{
	{model.FieldExpertise, "expertise"},
	{model.FieldCredibility, "credibility"},
	{model.FieldPodcastName, "podcast_name"},
	{model.FieldHostName, "host_name"},
	{model.FieldGuestName, "guest_name"},
	{model.FieldEpisodeTopic, "episode_topic"},
	{model.FieldWhyPodcast, "why_podcast"},
	{model.FieldSocialPlatform, "social_platform"},
	{model.FieldFollowers, "followers"},
	{model.FieldTopic1, "topic_1"},
	{model.FieldTopic2, "topic_2"},
	{model.FieldTopic3, "topic_3"},
	{model.FieldUniqueAngle, "unique_angle"},
	{model.FieldAudienceBenefit, "audience_benefit"},
}

// BuildContact maps a verified email and optional form to a CRM contact.
// Empty form fields are left out.
func BuildContact(email string, form *model.PitchForm) Contact {
	c := Contact{
		Email:  strings.ToLower(strings.TrimSpace(email)),
		Tags:   []string{TagGenerator, TagNewsletter},
		Source: Source,
	}
	if form == nil {
		return c
	}

	c.FirstName = strings.TrimSpace(form.FirstName)
	c.LastName = strings.TrimSpace(form.LastName)

	titles := form.Title.Normalized()
	if len(titles) > 0 {
		c.CustomFields = append(c.CustomFields, CustomField{Key: "title", FieldValue: form.Title.Joined()})
		for _, t := range titles {
			c.Tags = append(c.Tags, rolePrefix+t)
		}
	}
	if name := strings.TrimSpace(form.PodcastName); name != "" {
		c.Tags = append(c.Tags, podcastTagPrefix+name)
	}

	for _, m := range customFieldKeys {
		v, _ := form.Text(m.field)
		if v = strings.TrimSpace(v); v != "" {
			c.CustomFields = append(c.CustomFields, CustomField{Key: m.key, FieldValue: v})
		}
	}
	return c
}

package llm

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/prompts"

	"github.com/okian/pitchgate/internal/domain/model"
)

// systemPrompt is sent as the system message to chat providers that take one.
const systemPrompt = "You are an expert podcast guest pitch writer. Always respond with valid JSON only."

const notProvided = "Not provided"

// pitchTemplate is rendered with Go template syntax. Every variable is
// precomputed so the template stays substitution only.
const pitchTemplate = `You are an expert podcast guest pitch writer. Your pitches sound like they come from a real listener who genuinely follows the show, NOT a mass outreach template.

ABOUT THE PERSON:
- Name: {{.name}}
- Title: {{.title}}
- Expertise: {{.expertise}}
- Credibility: {{.credibility}}
- Social platform: {{.socialPlatform}}
- Audience size: {{.audienceSize}}

ABOUT THE PODCAST:
- Podcast name: {{.podcastName}}
- Host name: {{.hostName}}
- Recent guest they enjoyed: {{.guestName}}
- Episode/topic they enjoyed: {{.episodeTopic}}
- Why they want to be on this show: {{.whyPodcast}}

WHAT THEY CAN OFFER:
- Topic ideas: {{.topics}}
- Unique perspective: {{.uniqueAngle}}
- Audience benefit: {{.audienceBenefit}}

Generate 3 different pitch emails:

PITCH 1 - DIRECT & PROFESSIONAL
- Straightforward, confident, gets to the point
- Lead with credibility
- MUST reference {{.podcastName}} naturally in the body
- MUST include: "Your conversation with {{.guestName}} about {{.episodeTopic}}..." or similar
- Clear value proposition
- Sign off: Full name + title

PITCH 2 - SOCIAL PROOF & VALUE EXCHANGE
- Lead with what you bring: audience reach
- Include this line naturally: "{{.socialProofLine}}"
- MUST reference {{.podcastName}} and {{.guestName}} naturally
- Position it as mutual value, not just asking for a favor
- Sign off: Full name + title

PITCH 3 - CASUAL & MOBILE
- Shorter, conversational, like texting a friend
- Still professional but relaxed tone
- MUST reference the show and {{.guestName}} to prove you listen
- No formal sign-off
- End with just first name
- Add "Sent from my iPhone" at the very end

FOLLOW-UP 1 ({{.timing1}} later)
- Gentle nudge, assume they're busy
- Add one new piece of value or hook
- Short (under 75 words)

FOLLOW-UP 2 ({{.timing2}} later)
- Reference a new episode or something timely
- Restate your value differently
- Still friendly, not desperate

FOLLOW-UP 3 ({{.timing3}} later)
- "Closing the loop" tone
- Give them an easy out: "If timing isn't right, no worries"
- Leave door open for future

For each pitch and follow-up, provide:
- Subject line (under 50 characters, curiosity-driving, NO exclamation marks)
- Email body

CRITICAL RULES:
- Never sound desperate or salesy
- Don't use "I would love to" or "I was wondering if"
- Reference {{.podcastName}} in the email body, not just greeting
- Reference {{.guestName}} naturally to prove you actually listen
- No generic "I love your podcast" without specifics
- Be specific, not generic
- End with a soft CTA (not pushy)
- No exclamation marks in subject lines
- Pitch 3 MUST end with first name only + "Sent from my iPhone"

Respond with valid JSON in this exact format:
{
  "pitch_1": {
    "style": "{{.style1}}",
    "subject": "...",
    "body": "..."
  },
  "pitch_2": {
    "style": "{{.style2}}",
    "subject": "...",
    "body": "..."
  },
  "pitch_3": {
    "style": "{{.style3}}",
    "subject": "...",
    "body": "...\n\n{{.firstName}}\n\nSent from my iPhone"
  },
  "followup_1": {
    "timing": "{{.timing1}}",
    "subject": "...",
    "body": "..."
  },
  "followup_2": {
    "timing": "{{.timing2}}",
    "subject": "...",
    "body": "..."
  },
  "followup_3": {
    "timing": "{{.timing3}}",
    "subject": "...",
    "body": "..."
  }
}`

// Pitch styles and follow-up timings requested from the model.
const (
	StyleDirect     = "Direct & Professional"
	StyleSocial     = "Social Proof & Value Exchange"
	StyleCasual     = "Casual & Mobile"
	TimingFollowup1 = "5-7 days"
	TimingFollowup2 = "10-14 days"
	TimingFollowup3 = "21 days"
)

var promptVars = []string{
	"name", "firstName", "title", "expertise", "credibility", "socialPlatform",
	"audienceSize", "podcastName", "hostName", "guestName", "episodeTopic",
	"whyPodcast", "topics", "uniqueAngle", "audienceBenefit", "socialProofLine",
	"style1", "style2", "style3", "timing1", "timing2", "timing3",
}

func newPromptTemplate() prompts.PromptTemplate {
	return prompts.NewPromptTemplate(pitchTemplate, promptVars)
}

// SocialProofLine is the reach sentence pitch 2 must include.
func SocialProofLine(req model.GenerationRequest) string {
	if req.SocialPlatform == "" || req.RoundedFollowers == "" {
		return "I'll be sharing our conversation with my audience."
	}
	return fmt.Sprintf("I'll be sharing our conversation with my audience of %s on %s.",
		req.RoundedFollowers, req.SocialPlatform)
}

func promptValues(req model.GenerationRequest) map[string]any {
	firstName := req.FirstName
	if firstName == "" {
		firstName = req.Name
	}
	return map[string]any{
		"name":            req.Name,
		"firstName":       firstName,
		"title":           req.Title,
		"expertise":       req.Expertise,
		"credibility":     req.Credibility,
		"socialPlatform":  orNotProvided(req.SocialPlatform),
		"audienceSize":    orNotProvided(req.RoundedFollowers),
		"podcastName":     req.PodcastName,
		"hostName":        req.HostName,
		"guestName":       req.GuestName,
		"episodeTopic":    req.EpisodeTopic,
		"whyPodcast":      req.WhyPodcast,
		"topics":          strings.Join(req.Topics(), ", "),
		"uniqueAngle":     req.UniqueAngle,
		"audienceBenefit": orNotProvided(req.AudienceBenefit),
		"socialProofLine": SocialProofLine(req),
		"style1":          StyleDirect,
		"style2":          StyleSocial,
		"style3":          StyleCasual,
		"timing1":         TimingFollowup1,
		"timing2":         TimingFollowup2,
		"timing3":         TimingFollowup3,
	}
}

func orNotProvided(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}

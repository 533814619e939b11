package integrations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// SimulatedAssistant returns canned drafts chosen by keyword
type SimulatedAssistant struct {
	Delay time.Duration
	log   *logrus.Entry
}

// NewSimulatedAssistant creates a SimulatedAssistant that pauses delay per call
func NewSimulatedAssistant(delay time.Duration) *SimulatedAssistant {
	return &SimulatedAssistant{
		Delay: delay,
		log:   logrus.WithField("component", "assistant"),
	}
}

type draftTemplate struct {
	keywords []string
	body     string
}

var draftTemplates = []draftTemplate{
	{
		keywords: []string{"process doc", "onboarding workflow"},
		body: `Subject: Onboarding Workflow - Initial Draft

Here's a working doc to guide new team members through onboarding:
- Overview of systems/tools
- First 7-day expectations
- Team contacts
- Performance benchmarks

Let me know what else you'd like to include before sharing!`,
	},
	{
		keywords: []string{"follow up", "follow-up", "meeting", "fastcap"},
		body: `Subject: Follow-Up Meeting

I'd like to schedule a follow-up meeting to discuss:

1. Recent session feedback
2. Proposed changes
3. Next quarter's schedule planning
4. Owners and assignments

Would Thursday at 2pm work for everyone? I'll send calendar invites once confirmed.`,
	},
	{
		keywords: []string{"draft", "linkedin", "post"},
		body: `Subject: Social Post Draft

Excited to share some news from our team!

This announcement invites everyone to get involved and:
- Improve client experiences
- Streamline workflows
- Enhance data analysis

Details and registration coming soon.`,
	},
	{
		keywords: []string{"update", "materials", "onboarding"},
		body: `Subject: Materials Update - Draft Plan

Here's my initial plan for updating the materials:

1. Add a best practices section
2. Refresh the examples
3. Create a quick-reference guide
4. Develop hands-on exercises for new staff
5. Record walkthrough videos for complex workflows

Target completion: end of month`,
	},
}

// DraftActionItem implements Assistant
func (a *SimulatedAssistant) DraftActionItem(ctx context.Context, item, background string) (draft string, err error) {
	start := time.Now()
	defer func() { observe("openai", "draft_action_item", start, err) }()

	if err := wait(ctx, a.Delay); err != nil {
		return "", err
	}

	lower := strings.ToLower(item)
	draft = fmt.Sprintf(`Subject: %s - Initial Draft

I've prepared a first draft for this task:

1. Main objectives and scope
2. Key stakeholders to involve
3. Timeline and milestones
4. Resources needed
5. Success metrics

Would you like me to expand any particular section or add other components?`, item)

	for _, tpl := range draftTemplates {
		if containsAny(lower, tpl.keywords) {
			draft = tpl.body
			break
		}
	}

	if trimmed := strings.TrimSpace(background); trimmed != "" {
		draft = fmt.Sprintf("Based on: %q\n\n%s", truncate(trimmed, 100), draft)
	}

	a.log.WithField("length", len(draft)).Debug("Generated action item draft")
	return draft, nil
}

// SuggestCannedResponse implements Assistant
func (a *SimulatedAssistant) SuggestCannedResponse(ctx context.Context, title string, tags []string) (text string, err error) {
	start := time.Now()
	defer func() { observe("openai", "suggest_canned_response", start, err) }()

	if err := wait(ctx, a.Delay); err != nil {
		return "", err
	}

	lower := strings.ToLower(title + " " + strings.Join(tags, " "))
	switch {
	case containsAny(lower, []string{"reminder", "training"}):
		text = fmt.Sprintf("Hi everyone,\n\nA quick reminder about %s. Please make sure you have everything you need beforehand.\n\nSee you there!", title)
	case containsAny(lower, []string{"check-in", "weekly", "team"}):
		text = "Hi team,\n\nPlease share your updates:\n\n- Completed this week\n- Working on now\n- Blockers\n- Where you need help\n\nThanks!"
	case containsAny(lower, []string{"client", "follow"}):
		text = "Hello [Client Name],\n\nThank you for your time today. Here is a summary of what we discussed and the next steps.\n\nLooking forward to working with you!"
	default:
		text = fmt.Sprintf("Hello,\n\n%s\n\nPlease let me know if you have any questions.\n\nBest regards,\n[Your Name]", title)
	}
	return text, nil
}

// ExtractActionItems implements Assistant. Lines phrased as commitments or
// requests become action items.
func (a *SimulatedAssistant) ExtractActionItems(ctx context.Context, transcript string) (items []string, err error) {
	start := time.Now()
	defer func() { observe("openai", "extract_action_items", start, err) }()

	if err := wait(ctx, a.Delay); err != nil {
		return nil, err
	}

	cues := []string{"need to", "will ", "should", "todo", "to-do", "action item", "follow up", "schedule", "send "}
	seen := map[string]bool{}
	for _, sentence := range splitSentences(transcript) {
		if !containsAny(strings.ToLower(sentence), cues) {
			continue
		}
		if seen[sentence] {
			continue
		}
		seen[sentence] = true
		items = append(items, sentence)
	}

	a.log.WithField("items", len(items)).Info("Extracted action items from transcript")
	return items, nil
}

// SuggestAutomation implements Assistant
func (a *SimulatedAssistant) SuggestAutomation(ctx context.Context, activity string) (s AutomationSuggestion, err error) {
	start := time.Now()
	defer func() { observe("openai", "suggest_automation", start, err) }()

	if err := wait(ctx, a.Delay); err != nil {
		return AutomationSuggestion{}, err
	}

	lower := strings.ToLower(activity)
	switch {
	case containsAny(lower, []string{"meeting", "transcript", "call"}):
		s = AutomationSuggestion{Trigger: "new_transcript", Action: "create_task", Tool: "fireflies",
			Description: "Create action items automatically when a new meeting transcript arrives"}
	case containsAny(lower, []string{"listing", "property"}):
		s = AutomationSuggestion{Trigger: "new_listing", Action: "send_message", Tool: "slack",
			Description: "Announce new property listings to your team channel"}
	case containsAny(lower, []string{"email", "client"}):
		s = AutomationSuggestion{Trigger: "client_response", Action: "tag_items", Tool: "gmail",
			Description: "Tag client replies so nothing slips through"}
	default:
		s = AutomationSuggestion{Trigger: "schedule", Action: "send_message", Tool: "slack",
			Description: "Send a weekly check-in message to your team every Monday at 9am"}
	}
	return s, nil
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func splitSentences(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '\n' || r == '!' || r == '?'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(f), "-*0123456789)"))
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

var _ Assistant = (*SimulatedAssistant)(nil)

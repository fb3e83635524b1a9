package report

import (
	"bytes"
	"text/template"
)

// maxAnswerLen bounds each answer embedded in the prompt.
const maxAnswerLen = 4000

const reportSystemPrompt = `You are a veteran football scout assessing a trialist's emotional intelligence from their answers to match scenarios. Score each of the six traits from 0 to 100 based only on the answers given.

Scoring guidance:
- patience: staying composed when provoked, waiting for the right moment.
- empathy: noticing and supporting struggling teammates.
- resilience: bouncing back after conceding or making a mistake.
- focus: holding concentration deep into the match, under fatigue.
- teamwork: choosing the collective option over personal glory.
- confidence: decisive, self-assured actions in key moments.

Position mapping: lead with the trait profile — high patience and empathy suggest CB or GK; high teamwork and focus suggest CM or CDM; high confidence and resilience suggest ST or CAM. Use a standard position abbreviation.

The player comparison is one sentence likening the trialist to a well-known player archetype. Be generous but honest; an evasive or hesitant answer set scores low.`

var reportUserTemplate = template.Must(template.New("report").Parse(`Trialist answers, in match order:
{{range .}}
Scenario {{.ScenarioID}}: {{.Prompt}}
Answer: {{.Response}}
{{end}}
Return the scouting report as JSON.`))

// buildReportMessage renders the user message embedding all answers,
// each truncated to maxAnswerLen characters.
func buildReportMessage(answers []Answer) (string, error) {
	bounded := make([]Answer, len(answers))
	for i, a := range answers {
		if len(a.Response) > maxAnswerLen {
			a.Response = a.Response[:maxAnswerLen]
		}
		bounded[i] = a
	}

	var buf bytes.Buffer
	if err := reportUserTemplate.Execute(&buf, bounded); err != nil {
		return "", err
	}
	return buf.String(), nil
}

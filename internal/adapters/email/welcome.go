package email

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"powerpump/internal/domain/member"
)

// mdRenderer escapes raw HTML in the markdown source (WithUnsafe is not set).
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// markdownEscaper backslash-escapes every ASCII punctuation character CommonMark treats as syntax.
var markdownEscaper = strings.NewReplacer(func() []string {
	var pairs []string
	for _, c := range "\\`*_{}[]()<>#+-.!|~\"'&:;=?@$%^,/" {
		pairs = append(pairs, string(c), `\`+string(c))
	}
	return pairs
}()...)

// escapeMarkdown makes member-supplied text render literally.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var welcomeTemplate = template.Must(template.New("welcome").Funcs(template.FuncMap{
	"md": escapeMarkdown,
}).Parse(`# Welcome to Power Pump, {{md .Name}}!

Your gym ID is **{{.GymID}}**.
Type it at the front-desk kiosk to check in and again to check out.

| Membership | {{.MembershipType}} |
|---|---|
| Valid from | {{.StartDate}} |
| Valid until | {{.EndDate}} |

See you on the floor.
`))

// WelcomeMailer sends the new-member welcome email.
type WelcomeMailer struct {
	sender Sender
	from   string
}

// NewWelcomeMailer creates a WelcomeMailer that delivers through sender.
// An empty from uses the sender's default address.
func NewWelcomeMailer(sender Sender, from string) *WelcomeMailer {
	return &WelcomeMailer{sender: sender, from: from}
}

// SendWelcome emails the member their gym ID.
// PRE: m.Email is non-empty
// POST: One message handed to the sender
func (w *WelcomeMailer) SendWelcome(ctx context.Context, m member.Member) error {
	if m.Email == "" {
		return fmt.Errorf("member %s has no email address", m.ID)
	}
	body, err := RenderWelcome(m)
	if err != nil {
		return err
	}
	_, err = w.sender.Send(ctx, SendRequest{
		To:      []string{m.Email},
		From:    w.from,
		Subject: "Your Power Pump gym ID: " + m.GymID,
		HTML:    body,
	})
	return err
}

// RenderWelcome returns the HTML body of the welcome email.
func RenderWelcome(m member.Member) (string, error) {
	var md bytes.Buffer
	if err := welcomeTemplate.Execute(&md, m); err != nil {
		return "", fmt.Errorf("render welcome markdown: %w", err)
	}
	var html bytes.Buffer
	if err := mdRenderer.Convert(md.Bytes(), &html); err != nil {
		return "", fmt.Errorf("convert welcome markdown: %w", err)
	}
	return html.String(), nil
}

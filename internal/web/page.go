package web

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"docchat/internal/models"
)

type renderedMessage struct {
	Role string
	HTML template.HTML
}

type chatPage struct {
	Messages []renderedMessage
	Error    string
	Notice   string
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMessage prepares one conversation entry for the page. Bot answers
// are markdown and rendered to HTML; user questions are escaped verbatim.
func renderMessage(msg models.Message) renderedMessage {
	if msg.Role == models.RoleBot {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(msg.Content), &buf); err == nil {
			return renderedMessage{Role: msg.Role, HTML: template.HTML(buf.String())}
		}
	}
	escaped := template.HTMLEscapeString(msg.Content)
	return renderedMessage{Role: msg.Role, HTML: template.HTML("<p>" + escaped + "</p>")}
}

var chatTemplate = template.Must(template.New("chat").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Chat with your PDFs</title>
<style>
body { font-family: sans-serif; max-width: 760px; margin: 2rem auto; padding: 0 1rem; }
.user-message { background-color: #f0f0f0; color: black; padding: 10px; border-radius: 5px; margin-bottom: 10px; }
.bot-message { background-color: #121212; color: white; padding: 10px; border-radius: 5px; margin-bottom: 10px; }
.error { color: #b00020; margin-bottom: 10px; }
.notice { color: #1b5e20; margin-bottom: 10px; }
.history { max-height: 28rem; overflow-y: auto; }
form { margin-bottom: 1rem; }
input[type=text] { width: 70%; padding: 6px; }
</style>
</head>
<body>
<h1>Chat with your PDFs &#128218;</h1>

{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
{{if .Notice}}<div class="notice">{{.Notice}}</div>{{end}}

<form action="/ask" method="post">
  <input type="text" name="question" placeholder="Ask a question from your document" autofocus>
  <button type="submit">Ask</button>
</form>

<h2>Chat History</h2>
<div class="history">
{{range .Messages}}
  {{if eq .Role "user"}}<div class="user-message">{{.HTML}}</div>{{else}}<div class="bot-message">{{.HTML}}</div>{{end}}
{{end}}
</div>

<h2>Your documents</h2>
<form action="/process" method="post" enctype="multipart/form-data">
  <input type="file" name="documents" accept="application/pdf" multiple>
  <button type="submit">Process</button>
</form>
</body>
</html>
`))

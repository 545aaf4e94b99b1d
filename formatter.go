package webcheck

import (
	"html"
	"html/template"
	"strings"
)

var notificationHTML = template.Must(template.New("notification").Parse(`<h1>Site {{.Name}} changed</h1><table>
<tr><td valign="top">Url</td><td><a href="{{.URL}}">{{.URL}}</a></td></tr>
<tr><td valign="top">Changes</td><td><ul>{{range .Edits}}<li>{{if .Deleted}}<del style="background:#fdd">{{.Text}}</del>{{else}}<ins style="background:#dfd">{{.Text}}</ins>{{end}}</li>{{end}}</ul></td></tr>
<tr><td valign="top">New</td><td style="white-space:pre-wrap">{{.New}}</td></tr>
<tr><td valign="top">Old</td><td style="white-space:pre-wrap">{{.Old}}</td></tr>
</table>`))

type notificationEdit struct {
	Deleted bool
	Text    string
}

// NotificationSubject returns the subject line used for a changed page.
func NotificationSubject(name string) string {
	return "Web Check - Site changed " + name
}

// FormatNotification renders the change report for a page.
// Edits are expected to be significant edits only; an empty slice renders
// an empty change list.
func FormatNotification(name, url string, edits []Edit, oldContent, newContent string) Notification {
	plain := "Name " + name + "\nUrl: " + url + "\nNew: " + newContent + "\nOld: " + oldContent

	data := struct {
		Name, URL, New, Old string
		Edits               []notificationEdit
	}{
		Name: name,
		URL:  url,
		New:  newContent,
		Old:  oldContent,
	}
	for _, e := range edits {
		if e.Kind == EditUnchanged {
			continue
		}
		data.Edits = append(data.Edits, notificationEdit{Deleted: e.Kind == EditDeleted, Text: e.Text})
	}

	var sb strings.Builder
	if err := notificationHTML.Execute(&sb, data); err != nil {
		sb.Reset()
		sb.WriteString("<pre>" + html.EscapeString(plain) + "</pre>")
	}

	return Notification{
		Subject:   NotificationSubject(name),
		PlainBody: plain,
		HTMLBody:  sb.String(),
	}
}

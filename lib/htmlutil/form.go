package htmlutil

import (
	"github.com/PuerkitoBio/goquery"
)

// Form describes an html submission form: its target, encoding and the
// server-rendered default value of every named field.
type Form struct {
	Url     string
	Method  string
	Enctype string
	Fields  map[string]string
}

// ParseForm extracts a Form from sel, which may be the <form> element
// itself or any node containing one. fields with an empty name are
// excluded.
func ParseForm(sel *goquery.Selection) Form {
	form := sel
	if !form.Is("form") {
		form = sel.Find("form").First()
	}

	fields := map[string]string{}
	sel.Find("*[name]").Each(func(_ int, el *goquery.Selection) {
		name := el.AttrOr("name", "")
		if name == "" {
			return
		}
		fields[name] = el.AttrOr("value", "")
	})

	return Form{
		Url:     form.AttrOr("action", ""),
		Method:  form.AttrOr("method", ""),
		Enctype: form.AttrOr("enctype", ""),
		Fields:  fields,
	}
}

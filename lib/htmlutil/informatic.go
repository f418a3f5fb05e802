package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseInformaticTable parses a label/value detail table into a single
// Record. each <th> must be immediately followed by its <td> value
// cell; pairs that do not conform are skipped.
func ParseInformaticTable(table *goquery.Selection) Record {
	record := Record{}
	table.Find("tbody th").Each(func(_ int, th *goquery.Selection) {
		td := th.Next()
		if !td.Is("td") {
			return
		}
		record[strings.TrimSpace(th.Text())] = newCell(td)
	})
	return record
}

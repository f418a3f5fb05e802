package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Cell is one table cell keyed under its column label. Node is a
// borrowed view into the source document so callers can run further
// sub-queries (e.g. enumerate anchors inside an attachment cell); it
// is only valid while the document is.
type Cell struct {
	Text string
	Href string
	Node *goquery.Selection
}

// Record maps a column label to the cell under it. Labels are the
// literal header text; a duplicate label overwrites.
type Record map[string]Cell

// RowSet holds one Record per data row, in document order.
type RowSet []Record

func newCell(sel *goquery.Selection) Cell {
	return Cell{
		Text: strings.TrimSpace(sel.Text()),
		Href: sel.Find("*[href]").First().AttrOr("href", ""),
		Node: sel,
	}
}

// a headerStrategy attempts to resolve the column labels of a table,
// possibly consuming body rows in the process. it returns nil when it
// cannot resolve anything.
type headerStrategy func(table *goquery.Selection, rows [][]Cell) ([]string, [][]Cell)

func headersFromHeadRowTh(table *goquery.Selection, rows [][]Cell) ([]string, [][]Cell) {
	var headers []string
	table.Find("thead tr th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})
	return headers, rows
}

func headersFromHeadRowTd(table *goquery.Selection, rows [][]Cell) ([]string, [][]Cell) {
	var headers []string
	table.Find("thead tr td").Each(func(_ int, td *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(td.Text()))
	})
	return headers, rows
}

func headersFromFirstBodyRow(table *goquery.Selection, rows [][]Cell) ([]string, [][]Cell) {
	if len(rows) == 0 {
		return nil, rows
	}
	headers := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		headers[i] = cell.Text
	}
	return headers, rows[1:]
}

// tried in order, first strategy yielding labels wins. append here to
// support further header placements without touching the existing ones.
var headerStrategies = []headerStrategy{
	headersFromHeadRowTh,
	headersFromHeadRowTd,
	headersFromFirstBodyRow,
}

// ParseTable turns a <table> selection into a RowSet. the portal
// renders headers inconsistently (sometimes <thead><th>, sometimes
// <thead><td>, sometimes only a leading body row) and renders "no
// records" as a single wide colspan cell, so rows whose cell count
// does not match the header count are dropped rather than reported.
func ParseTable(table *goquery.Selection) RowSet {
	var rows [][]Cell
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		var row []Cell
		// the portal emits <th> cells inside tbody as well
		tr.Find("td,th").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, newCell(cell))
		})
		rows = append(rows, row)
	})

	var headers []string
	for _, strategy := range headerStrategies {
		headers, rows = strategy(table, rows)
		if len(headers) > 0 {
			break
		}
	}
	if len(headers) == 0 {
		return nil
	}

	var out RowSet
	for _, row := range rows {
		if len(row) != len(headers) {
			continue
		}
		record := Record{}
		for i, header := range headers {
			record[header] = row[i]
		}
		out = append(out, record)
	}
	return out
}

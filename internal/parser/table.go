// Package parser turns raw source page markup into classified price records.
package parser

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"mandi/internal/models"
)

// Table extraction errors.
var (
	ErrNoPriceTable = errors.New("no price table found in page")
	ErrEmptyPage    = errors.New("empty page content")
)

// MSAMBRows extracts the raw rows of the MSAMB commodity table
// (tbody#tblCommodity). A missing table is reported as ErrNoPriceTable so
// the caller can degrade to an empty row set for the crop.
func MSAMBRows(pageHTML string) ([]models.RawRow, error) {
	if strings.TrimSpace(pageHTML) == "" {
		return nil, ErrEmptyPage
	}

	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, err
	}

	tbody := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Tbody && attrValue(n, "id") == "tblCommodity"
	})
	if tbody == nil {
		return nil, ErrNoPriceTable
	}

	return collectRows(tbody), nil
}

// ListingRows extracts the raw rows of every table body on a
// CommodityOnline price page.
func ListingRows(pageHTML string) ([]models.RawRow, error) {
	if strings.TrimSpace(pageHTML) == "" {
		return nil, ErrEmptyPage
	}

	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, err
	}

	var rows []models.RawRow

	walkNodes(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tbody {
			rows = append(rows, collectRows(n)...)
		}
	})

	if len(rows) == 0 {
		return nil, ErrNoPriceTable
	}

	return rows, nil
}

// collectRows converts every <tr> under a table body into a RawRow of
// trimmed <td> cell texts, flagging single-cell colspan rows.
func collectRows(tbody *html.Node) []models.RawRow {
	var rows []models.RawRow

	walkNodes(tbody, func(n *html.Node) {
		if n.Type != html.ElementNode || n.DataAtom != atom.Tr {
			return
		}

		var cells []string

		colspan := false

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || c.DataAtom != atom.Td {
				continue
			}

			cells = append(cells, cellText(c))

			if attrValue(c, "colspan") != "" {
				colspan = true
			}
		}

		if len(cells) == 0 {
			return
		}

		rows = append(rows, models.RawRow{
			Cells:   cells,
			Colspan: colspan && len(cells) == 1,
		})
	})

	return rows
}

// cellText extracts the visible text of a cell subtree.
func cellText(n *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}

				sb.WriteString(text)
			}
		}

		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return sb.String()
}

// findNode returns the first node in document order matching pred.
func findNode(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if pred(n) {
		return n
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, pred); found != nil {
			return found
		}
	}

	return nil
}

// walkNodes visits every node in document order.
func walkNodes(n *html.Node, visit func(*html.Node)) {
	visit(n)

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNodes(c, visit)
	}
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

package fetch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonathan/resuflux/internal/ingestion"
)

// Extraction strategies, most precise first.
const (
	StrategyContainer = "container"
	StrategyAnchor    = "anchor"
	StrategyHeuristic = "heuristic"
)

const (
	minStrategyText   = 200 // a strategy must produce more than this to be accepted
	maxAnchorLength   = 100 // anchor headings are short
	minAnchorParent   = 500
	minDenseBlockText = 40
	minDenseBlockWord = 8
)

// anchorPhrases mark headings that usually sit inside the job description.
var anchorPhrases = []string{
	"about the role", "about the job", "role", "responsibilities", "what you'll do",
	"what you will do", "requirements", "qualifications", "what we look for",
	"who you are", "about you", "job description",
}

// JobPosting is the job description text and metadata extracted from a page.
type JobPosting struct {
	Text     string `json:"text"`
	Strategy string `json:"strategy"`
	Title    string `json:"title,omitempty"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
	Salary   string `json:"salary,omitempty"`
}

// ExtractJobPosting finds the job description in a page. It tries the platform's
// container selectors, then the closest common parent of job-description headings,
// then a join of every text-dense paragraph on the page.
func ExtractJobPosting(page string, platform Platform) (*JobPosting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Metadata reads JSON-LD scripts and head tags, so it runs before noise removal.
	posting := extractMetadata(doc)

	body := doc.Find("body")
	body.Find(strings.Join(noiseSelectors, ", ")).Remove()

	if text := tryContainers(body, platform); runeLen(text) > minStrategyText {
		posting.Text, posting.Strategy = text, StrategyContainer
		return posting, nil
	}
	if text := tryAnchors(body); runeLen(text) > minStrategyText {
		posting.Text, posting.Strategy = text, StrategyAnchor
		return posting, nil
	}
	posting.Text, posting.Strategy = tryHeuristics(body), StrategyHeuristic
	return posting, nil
}

func tryContainers(root *goquery.Selection, platform Platform) string {
	for _, selector := range ContainerSelectors(platform) {
		if sel := root.Find(selector).First(); sel.Length() > 0 {
			return visibleText(sel)
		}
	}
	return ""
}

// tryAnchors walks up from the first heading-like element that mentions a job section
// until it reaches an ancestor that holds the other headings and enough text.
func tryAnchors(root *goquery.Selection) string {
	var candidates []*html.Node
	root.Find("h1, h2, h3, h4, h5, h6, strong, b, p").Each(func(_ int, s *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(visibleText(s)))
		if runeLen(text) >= maxAnchorLength {
			return
		}
		for _, phrase := range anchorPhrases {
			if strings.Contains(text, phrase) {
				candidates = append(candidates, s.Nodes[0])
				return
			}
		}
	})
	if len(candidates) == 0 {
		return ""
	}

	rootNode := root.Nodes[0]
	for parent := candidates[0].Parent; parent != nil && parent != rootNode; parent = parent.Parent {
		contained := 0
		for _, c := range candidates {
			if isAncestor(parent, c) {
				contained++
			}
		}
		if contained > 1 || len(candidates) == 1 {
			if text := visibleText(goquery.NewDocumentFromNode(parent).Selection); runeLen(text) > minAnchorParent {
				return text
			}
		}
	}
	return ""
}

func tryHeuristics(root *goquery.Selection) string {
	var blocks []string
	root.Find("p, li").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(visibleText(s))
		if runeLen(text) > minDenseBlockText && len(strings.Fields(text)) > minDenseBlockWord {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) > 0 {
		return strings.Join(blocks, "\n\n")
	}

	// Pages built from bare divs: take the largest section.
	var best string
	root.Find("article, main, section, div").Each(func(_ int, s *goquery.Selection) {
		if text := visibleText(s); runeLen(text) > runeLen(best) {
			best = text
		}
	})
	if best == "" {
		best = visibleText(root)
	}
	return best
}

func extractMetadata(doc *goquery.Document) *JobPosting {
	posting := &JobPosting{}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		return !applyJSONLD(posting, s.Text())
	})

	if posting.Title == "" {
		posting.Title = metaContent(doc, "og:title")
	}
	if posting.Title == "" {
		posting.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if posting.Title == "" {
		posting.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if posting.Company == "" {
		posting.Company = metaContent(doc, "og:site_name")
	}
	if posting.Company == "" {
		if idx := strings.LastIndex(posting.Title, " at "); idx >= 0 {
			posting.Company = strings.TrimSpace(posting.Title[idx+len(" at "):])
		}
	}
	return posting
}

// applyJSONLD copies schema.org JobPosting fields into posting. It reports whether a
// JobPosting object was found.
func applyJSONLD(posting *JobPosting, raw string) bool {
	var data interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return false
	}

	var items []interface{}
	switch v := data.(type) {
	case []interface{}:
		items = v
	case map[string]interface{}:
		if graph, ok := v["@graph"].([]interface{}); ok {
			items = graph
		} else {
			items = []interface{}{v}
		}
	}

	for _, item := range items {
		job, ok := item.(map[string]interface{})
		if !ok || job["@type"] != "JobPosting" {
			continue
		}
		posting.Title = stringField(job, "title")
		if org, ok := job["hiringOrganization"].(map[string]interface{}); ok {
			posting.Company = stringField(org, "name")
		}
		posting.Location = jobLocation(job["jobLocation"])
		posting.Salary = baseSalary(job["baseSalary"])
		return true
	}
	return false
}

func jobLocation(v interface{}) string {
	if list, ok := v.([]interface{}); ok && len(list) > 0 {
		v = list[0]
	}
	loc, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	addr, ok := loc["address"].(map[string]interface{})
	if !ok {
		return ""
	}
	var parts []string
	for _, key := range []string{"addressLocality", "addressRegion"} {
		if s := stringField(addr, key); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func baseSalary(v interface{}) string {
	salary, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	value, ok := salary["value"].(map[string]interface{})
	if !ok {
		return ""
	}
	minimum := numberField(value, "minValue")
	if minimum == "" {
		minimum = numberField(value, "value")
	}
	if minimum == "" {
		return ""
	}
	if maximum := numberField(value, "maxValue"); maximum != "" {
		return "$" + minimum + " - $" + maximum
	}
	return "$" + minimum
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func numberField(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strings.TrimSpace(v)
	}
	return ""
}

func metaContent(doc *goquery.Document, name string) string {
	sel := doc.Find(fmt.Sprintf(`meta[property=%q], meta[name=%q]`, name, name)).First()
	content, _ := sel.Attr("content")
	return strings.TrimSpace(content)
}

// blockElements start a new line in rendered text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "hr": true, "li": true, "main": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "tr": true, "ul": true,
}

// visibleText approximates innerText: block elements are separated by newlines and
// the result is cleaned with ingestion.CleanText.
func visibleText(sel *goquery.Selection) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
				return
			}
		}
		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			sb.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			sb.WriteByte('\n')
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return ingestion.CleanText(sb.String())
}

func isAncestor(ancestor, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

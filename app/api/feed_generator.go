package api

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/vkarpenko/deadline-sync/app/cfg"
	"github.com/vkarpenko/deadline-sync/app/database"
)

// FeedGenerator renders created deadlines as an RSS 2.0 document.
type FeedGenerator struct{}

func NewFeedGenerator() *FeedGenerator {
	return &FeedGenerator{}
}

func (g *FeedGenerator) Run(events []database.Event) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", "Deadlines", 4)
	g.writeElement(&buf, "description", "Deadlines extracted from uploaded documents", 4)

	var selfLink string
	if cfg.Get().BaseUrl != "" {
		selfLink = fmt.Sprintf("%s/feeds/deadlines", cfg.Get().BaseUrl)
	} else {
		selfLink = fmt.Sprintf("http://localhost:%s/feeds/deadlines", cfg.Get().Port)
	}
	g.writeElement(&buf, "link", selfLink, 4)
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(selfLink)))

	lastBuildDate := time.Now().UTC()
	if len(events) > 0 {
		lastBuildDate = events[0].CreatedAt
	}
	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("deadline-sync/%s", cfg.Get().Version), 4)

	for _, event := range events {
		buf.WriteString("    <item>\n")
		g.writeElement(&buf, "title", fmt.Sprintf("%s due %s", event.Title, event.EventDate), 6)
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"false\">%s</guid>\n", html.EscapeString(event.ID)))
		g.writeElement(&buf, "pubDate", event.CreatedAt.Format(time.RFC1123Z), 6)
		buf.WriteString("    </item>\n")
	}

	buf.WriteString("  </channel>\n</rss>\n")

	return buf.String(), nil
}

func (g *FeedGenerator) writeElement(buf *bytes.Buffer, name, value string, indent int) {
	if value == "" {
		return
	}
	buf.WriteString(strings.Repeat(" ", indent))
	buf.WriteString(fmt.Sprintf("<%s>%s</%s>\n", name, html.EscapeString(value), name))
}

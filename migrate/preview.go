package migrate

import (
	"fmt"
	"net/url"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

// Previewer renders a rewritten field as Markdown, so test-mode output is readable in a terminal.
type Previewer struct {
	converter *md.Converter
}

func NewPreviewer(base *url.URL) *Previewer {
	host := ""
	if base != nil {
		host = base.Host
	}

	// md.NewConverter only takes a hostname, so relative image URLs would come out without a
	// scheme.  Patch that up with the site's own scheme.
	opt := &md.Options{
		GetAbsoluteURL: func(selec *goquery.Selection, rawURL string, domain string) string {
			if domain == "" {
				return rawURL
			}

			u, err := url.Parse(rawURL)
			if err != nil {
				return rawURL
			}

			if u.Scheme == "data" {
				return rawURL
			}

			if u.Scheme == "" && base != nil {
				u.Scheme = base.Scheme
			}
			if u.Host == "" {
				u.Host = domain
			}

			return u.String()
		},
	}

	converter := md.NewConverter(host, true, opt)
	converter.Use(mdplugin.GitHubFlavored())

	return &Previewer{converter: converter}
}

func (p *Previewer) Markdown(html string) (string, error) {
	markdown, err := p.converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("migrate: failed to convert to Markdown: %w", err)
	}
	return markdown, nil
}

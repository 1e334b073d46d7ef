// Package openbd enriches extracted identifiers through the openBD batch
// bibliographic API and resolves cover imagery through an ordered probe
// chain.
package openbd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shelfwatch/src/internal/catalog"
	"shelfwatch/src/internal/dates"
	"shelfwatch/src/internal/extract"
	"shelfwatch/src/internal/httpx"
)

// client is the HTTP client used by this package; replaceable in tests.
var client httpx.Doer = httpx.NewClient(12 * time.Second)

// SetHTTPClient allows tests to inject a fake http client.
func SetHTTPClient(c httpx.Doer) { client = c }

const (
	// Endpoint is the openBD batch lookup URL.
	Endpoint = "https://api.openbd.jp/v1/get"

	// ChunkSize is the number of identifiers per batch request. openBD
	// documents up to 10000 per call; 100 keeps each response small and the
	// request rate polite.
	ChunkSize = 100
)

// Volume is one openBD result. The summary block covers the common case;
// the ONIX block supplies the nested alternates used when summary fields
// are empty.
type Volume struct {
	Summary struct {
		ISBN    string `json:"isbn"`
		Title   string `json:"title"`
		Cover   string `json:"cover"`
		Pubdate string `json:"pubdate"`
	} `json:"summary"`
	Onix struct {
		DescriptiveDetail struct {
			TitleDetail struct {
				TitleElement struct {
					TitleText struct {
						Content string `json:"content"`
					} `json:"TitleText"`
				} `json:"TitleElement"`
			} `json:"TitleDetail"`
		} `json:"DescriptiveDetail"`
		CollateralDetail struct {
			SupportingResource []struct {
				ResourceContentType string `json:"ResourceContentType"`
				ResourceVersion     []struct {
					ResourceLink string `json:"ResourceLink"`
				} `json:"ResourceVersion"`
			} `json:"SupportingResource"`
		} `json:"CollateralDetail"`
	} `json:"onix"`
}

// Lookup fetches volumes for the given identifiers, preserving positional
// alignment: result[i] corresponds to isbns[i] and is nil when openBD has no
// data. Requests go out in sequential chunks; any failed chunk fails the
// whole lookup, since a partial result would break the alignment contract.
func Lookup(ctx context.Context, isbns []string) ([]*Volume, error) {
	out := make([]*Volume, 0, len(isbns))
	for start := 0; start < len(isbns); start += ChunkSize {
		end := start + ChunkSize
		if end > len(isbns) {
			end = len(isbns)
		}
		chunk, err := lookupChunk(ctx, isbns[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

func lookupChunk(ctx context.Context, isbns []string) ([]*Volume, error) {
	endpoint := Endpoint + "?isbn=" + url.QueryEscape(strings.Join(isbns, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	httpx.SetUA(req)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openbd: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, httpx.StatusError("openbd", resp)
	}
	var vols []*Volume
	if err := json.NewDecoder(resp.Body).Decode(&vols); err != nil {
		return nil, fmt.Errorf("openbd: decode: %w", err)
	}
	if len(vols) != len(isbns) {
		return nil, fmt.Errorf("openbd: got %d results for %d identifiers", len(vols), len(isbns))
	}
	return vols, nil
}

// Options controls record building.
type Options struct {
	AffiliateTag string // appended to every marketplace link
	ProbeCovers  int    // probe the cover chain for at most this many leading records; 0 disables
}

// BuildRecords turns aligned lookup results into candidate records. A volume
// with no recoverable title is dropped (a title-less catalog entry is
// useless); a missing cover is kept and run through the probe chain for the
// leading records only, bounding probe cost to what the merge can keep.
func BuildRecords(ctx context.Context, picks []extract.Pick, vols []*Volume, opts Options) []catalog.Record {
	var out []catalog.Record
	for i, p := range picks {
		if i >= len(vols) || vols[i] == nil {
			continue
		}
		v := vols[i]
		title := strings.TrimSpace(v.Summary.Title)
		if title == "" {
			title = strings.TrimSpace(v.Onix.DescriptiveDetail.TitleDetail.TitleElement.TitleText.Content)
		}
		if title == "" {
			continue
		}
		r := catalog.Record{
			ISBN:    p.ISBN,
			Title:   title,
			Cover:   coverFromVolume(v),
			PubDate: p.PubDate,
			Link:    MarketplaceLink(p.ISBN, opts.AffiliateTag),
			Tag:     p.Tag,
		}
		if r.PubDate == "" {
			r.PubDate = dates.Normalize(v.Summary.Pubdate)
		}
		if r.Cover == "" && len(out) < opts.ProbeCovers {
			r.Cover = ProbeCover(ctx, p.ISBN)
		}
		out = append(out, r)
	}
	return out
}

// coverFromVolume reads the summary cover, then the first ONIX supporting
// resource link.
func coverFromVolume(v *Volume) string {
	if c := strings.TrimSpace(v.Summary.Cover); c != "" {
		return c
	}
	for _, sr := range v.Onix.CollateralDetail.SupportingResource {
		for _, rv := range sr.ResourceVersion {
			if link := strings.TrimSpace(rv.ResourceLink); link != "" {
				return link
			}
		}
	}
	return ""
}

// MarketplaceLink builds the deterministic store link for an identifier.
func MarketplaceLink(isbn, affiliateTag string) string {
	v := url.Values{}
	v.Set("k", isbn)
	if affiliateTag != "" {
		v.Set("tag", affiliateTag)
	}
	return "https://www.amazon.co.jp/s?" + v.Encode()
}

package scrape_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/mock"
	"github.com/fwojciec/pagesift/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticFetcher returns the same page for every URL.
func staticFetcher(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			return html, nil
		},
	}
}

func TestScraper_Scrape_RejectsNilRequest(t *testing.T) {
	t.Parallel()

	s := &scrape.Scraper{}

	_, err := s.Scrape(context.Background(), nil)

	require.Error(t, err)
	assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
}

func TestScraper_Scrape_ValidatesBeforeFetching(t *testing.T) {
	t.Parallel()

	s := &scrape.Scraper{
		Fetcher: &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				t.Error("fetch should not run for an invalid request")
				return "", nil
			},
		},
	}

	_, err := s.Scrape(context.Background(), &pagesift.ScrapeRequest{
		URL:         "https://example.com",
		ContentType: pagesift.ContentTypeText,
	})

	require.Error(t, err)
	assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
}

func TestScraper_Scrape_NormalizesURLBeforeFetching(t *testing.T) {
	t.Parallel()

	var fetched string
	s := &scrape.Scraper{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = url
				return "<html></html>", nil
			},
		},
		Lists: &mock.ListLocator{
			AllImagesFn: func(string, string) ([]pagesift.ImageItem, error) {
				return []pagesift.ImageItem{{URL: "https://example.com/a.png"}}, nil
			},
		},
	}

	_, err := s.Scrape(context.Background(), &pagesift.ScrapeRequest{
		URL:         "  example.com/gallery  ",
		ContentType: pagesift.ContentTypeImage,
		Options:     pagesift.StrategyOptions{Method: pagesift.MethodListAll},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/gallery", fetched)
}

func TestScraper_Scrape_RateLimitsTheDomain(t *testing.T) {
	t.Parallel()

	var waited string
	s := &scrape.Scraper{
		Fetcher: staticFetcher("<html></html>"),
		Cards: &mock.CardDetector{
			DetectCardsFn: func(string, string) ([]pagesift.CardItem, error) {
				return []pagesift.CardItem{{Title: "A"}, {Title: "B"}}, nil
			},
		},
		RateLimiter: &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				waited = domain
				return nil
			},
		},
	}

	_, err := s.Scrape(context.Background(), &pagesift.ScrapeRequest{
		URL:         "https://shop.example.com/catalog",
		ContentType: pagesift.ContentTypeCard,
	})

	require.NoError(t, err)
	assert.Equal(t, "shop.example.com", waited)
}

func TestScraper_Scrape_PropagatesFetchErrors(t *testing.T) {
	t.Parallel()

	s := &scrape.Scraper{
		Fetcher: &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", pagesift.Errorf(pagesift.EUNREACHABLE, "could not fetch https://example.com: connection refused")
			},
		},
	}

	_, err := s.Scrape(context.Background(), &pagesift.ScrapeRequest{
		URL:         "https://example.com",
		ContentType: pagesift.ContentTypeCard,
	})

	require.Error(t, err)
	assert.Equal(t, pagesift.EUNREACHABLE, pagesift.ErrorCode(err))
}

func TestScraper_Scrape_KeywordText(t *testing.T) {
	t.Parallel()

	s := &scrape.Scraper{
		Fetcher: staticFetcher("<html>page</html>"),
		Keywords: &mock.KeywordLocator{
			TextByKeywordFn: func(_, _, keyword string) ([]pagesift.TextItem, error) {
				assert.Equal(t, "holiday", keyword)
				return []pagesift.TextItem{{Text: "The school remains closed for the holiday."}}, nil
			},
		},
	}

	result, err := s.Scrape(context.Background(), &pagesift.ScrapeRequest{
		URL:         "https://example.edu/notices",
		ContentType: pagesift.ContentTypeText,
		Options:     pagesift.StrategyOptions{Method: pagesift.MethodKeyword, Keyword: "holiday"},
	})

	require.NoError(t, err)
	assert.Equal(t, pagesift.KindText, result.Kind)
	require.NotNil(t, result.Text)
	assert.Equal(t, "The school remains closed for the holiday.", result.Text.Text)
}

func TestScraper_Scrape_TopicQuery(t *testing.T) {
	t.Parallel()

	page := "<html><body>postings</body></html>"
	s := &scrape.Scraper{
		Fetcher: staticFetcher(page),
		Topics: &mock.TopicResolver{
			ResolveFn: func(_ context.Context, html, baseURL, query string) ([]pagesift.ResultListEntry, error) {
				assert.Equal(t, page, html)
				assert.Equal(t, "https://example.gov/jobs", baseURL)
				assert.Equal(t, "latest postings", query)
				return []pagesift.ResultListEntry{
					{Title: "Clerk", Link: "https://example.gov/clerk", Status: "Out"},
					{Title: "Stenographer", Link: "https://example.gov/steno"},
					{Title: "Peon", Status: "Last Date"},
				}, nil
			},
		},
	}

	result, err := s.Scrape(context.Background(), &pagesift.ScrapeRequest{
		URL:         "https://example.gov/jobs",
		ContentType: pagesift.ContentTypeText,
		Options:     pagesift.StrategyOptions{Method: pagesift.MethodAITopic, TopicQuery: "latest postings"},
	})

	require.NoError(t, err)
	assert.Equal(t, pagesift.KindList, result.Kind)
	require.Len(t, result.Entries, 3)
	assert.Equal(t, "Clerk", result.Entries[0].Title)
	assert.Equal(t, "Out", result.Entries[0].Status)
}

func TestScraper_Scrape_TopicQueryWithoutResolver(t *testing.T) {
	t.Parallel()

	s := &scrape.Scraper{
		Fetcher: staticFetcher("<html></html>"),
	}

	_, err := s.Scrape(context.Background(), &pagesift.ScrapeRequest{
		URL:         "https://example.gov/jobs",
		ContentType: pagesift.ContentTypeText,
		Options:     pagesift.StrategyOptions{Method: pagesift.MethodAITopic, TopicQuery: "postings"},
	})

	require.Error(t, err)
	assert.Equal(t, pagesift.EINTERNAL, pagesift.ErrorCode(err))
	assert.Contains(t, pagesift.ErrorMessage(err), "not configured")
}

func TestScraper_Scrape_AllImages(t *testing.T) {
	t.Parallel()

	s := &scrape.Scraper{
		Fetcher: staticFetcher("<html></html>"),
		Lists: &mock.ListLocator{
			AllImagesFn: func(string, string) ([]pagesift.ImageItem, error) {
				return []pagesift.ImageItem{
					{URL: "https://example.com/a.png"},
					{URL: "https://example.com/b.png"},
				}, nil
			},
		},
	}

	result, err := s.Scrape(context.Background(), &pagesift.ScrapeRequest{
		URL:         "https://example.com",
		ContentType: pagesift.ContentTypeImage,
		Options:     pagesift.StrategyOptions{Method: pagesift.MethodListAll},
	})

	require.NoError(t, err)
	assert.Equal(t, pagesift.KindImages, result.Kind)
	assert.Len(t, result.Images, 2)
}

func TestScraper_Scrape_KeywordImages(t *testing.T) {
	t.Parallel()

	s := &scrape.Scraper{
		Fetcher: staticFetcher("<html></html>"),
		Keywords: &mock.KeywordLocator{
			ImagesByKeywordFn: func(_, _, keyword string) ([]pagesift.ImageItem, error) {
				assert.Equal(t, "logo", keyword)
				return []pagesift.ImageItem{{URL: "https://example.com/logo.svg"}}, nil
			},
		},
	}

	result, err := s.Scrape(context.Background(), &pagesift.ScrapeRequest{
		URL:         "https://example.com",
		ContentType: pagesift.ContentTypeImage,
		Options:     pagesift.StrategyOptions{Method: pagesift.MethodKeyword, Keyword: "logo"},
	})

	require.NoError(t, err)
	assert.Equal(t, pagesift.KindImages, result.Kind)
	require.Len(t, result.Images, 1)
	assert.Equal(t, "https://example.com/logo.svg", result.Images[0].URL)
}

func TestScraper_Scrape_KeywordLinks(t *testing.T) {
	t.Parallel()

	s := &scrape.Scraper{
		Fetcher: staticFetcher("<html></html>"),
		Keywords: &mock.KeywordLocator{
			LinksByKeywordFn: func(_, _, keyword string) ([]pagesift.LinkItem, error) {
				assert.Equal(t, "apply", keyword)
				return []pagesift.LinkItem{
					{Text: "Apply Online", Href: "https://example.gov/apply"},
					{Text: "How to Apply", Href: "https://example.gov/howto"},
				}, nil
			},
		},
	}

	result, err := s.Scrape(context.Background(), &pagesift.ScrapeRequest{
		URL:         "https://example.gov",
		ContentType: pagesift.ContentTypeLink,
		Options:     pagesift.StrategyOptions{Keyword: "apply"},
	})

	require.NoError(t, err)
	assert.Equal(t, pagesift.KindLinks, result.Kind)
	assert.Len(t, result.Links, 2)
}

func TestScraper_Scrape_Cards(t *testing.T) {
	t.Parallel()

	s := &scrape.Scraper{
		Fetcher: staticFetcher("<html></html>"),
		Cards: &mock.CardDetector{
			DetectCardsFn: func(string, string) ([]pagesift.CardItem, error) {
				return []pagesift.CardItem{
					{Title: "Wireless Mouse", Link: "https://shop.example.com/mouse"},
					{Title: "Mechanical Keyboard", Link: "https://shop.example.com/keyboard"},
				}, nil
			},
		},
	}

	result, err := s.Scrape(context.Background(), &pagesift.ScrapeRequest{
		URL:         "https://shop.example.com",
		ContentType: pagesift.ContentTypeCard,
	})

	require.NoError(t, err)
	assert.Equal(t, pagesift.KindCards, result.Kind)
	assert.Len(t, result.Cards, 2)
}

func TestScraper_Scrape_EmptyOutcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     *pagesift.ScrapeRequest
		message string
	}{
		{
			name: "keyword text",
			req: &pagesift.ScrapeRequest{
				URL:         "https://example.com",
				ContentType: pagesift.ContentTypeText,
				Options:     pagesift.StrategyOptions{Method: pagesift.MethodKeyword, Keyword: "nothing"},
			},
			message: `no text containing "nothing" was found`,
		},
		{
			name: "all images",
			req: &pagesift.ScrapeRequest{
				URL:         "https://example.com",
				ContentType: pagesift.ContentTypeImage,
				Options:     pagesift.StrategyOptions{Method: pagesift.MethodListAll},
			},
			message: "no images were found on the page",
		},
		{
			name: "keyword images",
			req: &pagesift.ScrapeRequest{
				URL:         "https://example.com",
				ContentType: pagesift.ContentTypeImage,
				Options:     pagesift.StrategyOptions{Method: pagesift.MethodKeyword, Keyword: "banner"},
			},
			message: `no images matching "banner" were found`,
		},
		{
			name: "links",
			req: &pagesift.ScrapeRequest{
				URL:         "https://example.com",
				ContentType: pagesift.ContentTypeLink,
				Options:     pagesift.StrategyOptions{Keyword: "download"},
			},
			message: `no links containing "download" were found`,
		},
		{
			name: "cards",
			req: &pagesift.ScrapeRequest{
				URL:         "https://example.com",
				ContentType: pagesift.ContentTypeCard,
			},
			message: "no repeating card layout was found on the page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &scrape.Scraper{
				Fetcher: staticFetcher("<html></html>"),
				Keywords: &mock.KeywordLocator{
					TextByKeywordFn: func(string, string, string) ([]pagesift.TextItem, error) {
						return nil, nil
					},
					ImagesByKeywordFn: func(string, string, string) ([]pagesift.ImageItem, error) {
						return nil, nil
					},
					LinksByKeywordFn: func(string, string, string) ([]pagesift.LinkItem, error) {
						return nil, nil
					},
				},
				Lists: &mock.ListLocator{
					AllImagesFn: func(string, string) ([]pagesift.ImageItem, error) {
						return nil, nil
					},
					AllLinksFn: func(string, string) ([]pagesift.LinkItem, error) {
						return nil, nil
					},
				},
				Cards: &mock.CardDetector{
					DetectCardsFn: func(string, string) ([]pagesift.CardItem, error) {
						return nil, nil
					},
				},
			}

			_, err := s.Scrape(context.Background(), tt.req)

			require.Error(t, err)
			assert.Equal(t, pagesift.ENORESULTS, pagesift.ErrorCode(err))
			assert.Equal(t, tt.message, pagesift.ErrorMessage(err))
		})
	}
}

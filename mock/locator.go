package mock

import "github.com/fwojciec/pagesift"

var _ pagesift.KeywordLocator = (*KeywordLocator)(nil)

// KeywordLocator is a mock implementation of pagesift.KeywordLocator.
type KeywordLocator struct {
	TextByKeywordFn   func(html, baseURL, keyword string) ([]pagesift.TextItem, error)
	ImagesByKeywordFn func(html, baseURL, keyword string) ([]pagesift.ImageItem, error)
	LinksByKeywordFn  func(html, baseURL, keyword string) ([]pagesift.LinkItem, error)
}

func (l *KeywordLocator) TextByKeyword(html, baseURL, keyword string) ([]pagesift.TextItem, error) {
	return l.TextByKeywordFn(html, baseURL, keyword)
}

func (l *KeywordLocator) ImagesByKeyword(html, baseURL, keyword string) ([]pagesift.ImageItem, error) {
	return l.ImagesByKeywordFn(html, baseURL, keyword)
}

func (l *KeywordLocator) LinksByKeyword(html, baseURL, keyword string) ([]pagesift.LinkItem, error) {
	return l.LinksByKeywordFn(html, baseURL, keyword)
}

var _ pagesift.ListLocator = (*ListLocator)(nil)

// ListLocator is a mock implementation of pagesift.ListLocator.
type ListLocator struct {
	AllImagesFn func(html, baseURL string) ([]pagesift.ImageItem, error)
	AllLinksFn  func(html, baseURL string) ([]pagesift.LinkItem, error)
}

func (l *ListLocator) AllImages(html, baseURL string) ([]pagesift.ImageItem, error) {
	return l.AllImagesFn(html, baseURL)
}

func (l *ListLocator) AllLinks(html, baseURL string) ([]pagesift.LinkItem, error) {
	return l.AllLinksFn(html, baseURL)
}

var _ pagesift.CardDetector = (*CardDetector)(nil)

// CardDetector is a mock implementation of pagesift.CardDetector.
type CardDetector struct {
	DetectCardsFn func(html, baseURL string) ([]pagesift.CardItem, error)
}

func (d *CardDetector) DetectCards(html, baseURL string) ([]pagesift.CardItem, error) {
	return d.DetectCardsFn(html, baseURL)
}

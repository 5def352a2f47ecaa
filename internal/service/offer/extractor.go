// Package offer 상품 페이지에서 정보를 추출(Extractor)하고 게시용 캡션을 생성(Format)합니다.
package offer

import (
	"context"
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/darkkaiser/offer-bot/internal/pkg/errors"
	applog "github.com/darkkaiser/offer-bot/pkg/log"
	"github.com/darkkaiser/offer-bot/pkg/strutil"
	"github.com/tidwall/gjson"
)

const component = "offer.extractor"

// DocumentFetcher URL의 HTML 문서를 가져옵니다. *scraper.Scraper가 이를 구현합니다.
type DocumentFetcher interface {
	FetchHTML(ctx context.Context, rawURL string) (*goquery.Document, error)
}

// Extractor 상품 페이지에서 Record를 추출합니다. 상태를 갖지 않으므로 동시 사용에 안전합니다.
type Extractor struct {
	fetcher   DocumentFetcher
	selectors Selectors
}

// NewExtractor 아마존 선택자를 사용하는 Extractor를 생성합니다.
func NewExtractor(f DocumentFetcher) *Extractor {
	return NewExtractorWithSelectors(f, AmazonSelectors())
}

// NewExtractorWithSelectors 지정된 선택자를 사용하는 Extractor를 생성합니다.
func NewExtractorWithSelectors(f DocumentFetcher, s Selectors) *Extractor {
	return &Extractor{
		fetcher:   f,
		selectors: s,
	}
}

// Extract rawURL의 페이지를 가져와 Record를 추출합니다.
//
// 에러를 반환하지 않습니다. 페이지를 가져오지 못하면 모든 필드가 에러 문자열로 채워진 결과를 반환하고,
// 개별 필드를 찾지 못하면 해당 필드만 대체 문자열로 채웁니다.
// 재시도하지 않으며, 응답 대기 시간은 ctx로 제한합니다.
func (e *Extractor) Extract(ctx context.Context, rawURL string) Record {
	doc, err := e.fetcher.FetchHTML(ctx, rawURL)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"url":        rawURL,
			"error_type": apperrors.UnderlyingType(err).String(),
			"error":      err,
		}).Warn("상품 페이지를 가져오지 못했습니다")

		return fetchFailedRecord()
	}

	r := e.ExtractDocument(doc)

	applog.WithComponentAndFields(component, applog.Fields{
		"url":       rawURL,
		"title":     strutil.Truncate(r.Title, 50),
		"price":     r.Price,
		"discount":  r.Discount,
		"has_image": r.HasImage(),
	}).Debug("상품 정보 추출 완료")

	return r
}

// ExtractDocument 이미 파싱된 문서에서 Record를 추출합니다.
// 각 필드는 서로 독립적으로 조회되며, 한 필드의 실패가 다른 필드에 영향을 주지 않습니다.
func (e *Extractor) ExtractDocument(doc *goquery.Document) Record {
	return Record{
		Title:    lookup("title", TitleNotFound, func() string { return e.title(doc) }),
		Price:    lookup("price", PriceNotFound, func() string { return e.price(doc) }),
		Discount: lookup("discount", DiscountNotFound, func() string { return e.discount(doc) }),
		Image:    lookup("image", "", func() string { return e.image(doc) }),
	}
}

// lookup fn의 결과가 비어 있거나 fn이 panic을 일으키면 fallback을 반환합니다.
// 텔레그램은 UTF-8이 아닌 텍스트를 거부하므로 잘못된 바이트열은 U+FFFD로 치환합니다.
func lookup(field, fallback string, fn func() string) (v string) {
	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"field": field,
				"panic": r,
			}).Error("상품 정보 추출 중 panic이 발생했습니다")

			v = fallback
		}
	}()

	if v = strings.ToValidUTF8(fn(), "\uFFFD"); v == "" {
		return fallback
	}
	return v
}

func (e *Extractor) title(doc *goquery.Document) string {
	return strutil.NormalizeSpaces(doc.Find(e.selectors.Title).First().Text())
}

func (e *Extractor) price(doc *goquery.Document) string {
	for _, s := range e.selectors.Price {
		if p, ok := s.Lookup(doc); ok {
			return p
		}
	}
	return ""
}

func (e *Extractor) discount(doc *goquery.Document) string {
	want := classSet(strings.Join(e.selectors.DiscountClasses, " "))

	sel := doc.Find(e.selectors.DiscountTag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		return ok && sameClassSet(classSet(class), want)
	}).First()

	return strutil.NormalizeSpaces(sel.Text())
}

// image 이미지 요소의 src를 반환합니다. src가 비어 있거나 data URI이면
// 고해상도 속성(data-old-hires), 동적 이미지 목록(data-a-dynamic-image)의 첫 번째 URL 순으로 대체합니다.
func (e *Extractor) image(doc *goquery.Document) string {
	img := doc.Find(e.selectors.Image).First()
	if img.Length() == 0 {
		return ""
	}

	candidate := strings.TrimSpace(img.AttrOr("src", ""))
	if candidate == "" || strings.HasPrefix(candidate, "data:") {
		candidate = strings.TrimSpace(img.AttrOr("data-old-hires", ""))
	}
	if candidate == "" {
		// 예: {"https://m.media-amazon.com/images/I/71a.jpg":[679,679],"https://...":[450,450]}
		gjson.Parse(img.AttrOr("data-a-dynamic-image", "")).ForEach(func(key, _ gjson.Result) bool {
			candidate = key.String()
			return false
		})
	}

	return resolveURL(doc.Url, candidate)
}

// resolveURL 상대 경로를 문서 URL 기준의 절대 경로로 변환합니다.
func resolveURL(base *url.URL, ref string) string {
	if ref == "" || base == nil {
		return ref
	}

	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}

	return base.ResolveReference(u).String()
}

func classSet(class string) []string {
	fields := strings.Fields(class)
	slices.Sort(fields)
	return slices.Compact(fields)
}

func sameClassSet(a, b []string) bool {
	return slices.Equal(a, b)
}

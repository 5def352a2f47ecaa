package offer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/darkkaiser/offer-bot/internal/pkg/errors"
	"github.com/darkkaiser/offer-bot/internal/service/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const discountSpan = `<span class="a-size-large a-color-price savingPriceOverride aok-align-center reinventPriceSavingsPercentageMargin savingsPercentage">%s</span>`

type mockDocumentFetcher struct {
	mock.Mock
}

func (m *mockDocumentFetcher) FetchHTML(ctx context.Context, rawURL string) (*goquery.Document, error) {
	args := m.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*goquery.Document), args.Error(1)
}

func newDocument(t *testing.T, body string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>" + body + "</body></html>"))
	require.NoError(t, err)

	return doc
}

func discount(text string) string {
	return strings.Replace(discountSpan, "%s", text, 1)
}

func TestExtractDocument_Title(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{"Found", `<span id="productTitle">Widget</span>`, "Widget"},
		{"Trimmed", `<span id="productTitle">
		        Echo Dot (5ª generazione)
		</span>`, "Echo Dot (5ª generazione)"},
		{"Missing", `<span id="otherTitle">Widget</span>`, TitleNotFound},
		{"Empty Text", `<span id="productTitle">   </span>`, TitleNotFound},
		{"Wrong Tag", `<div id="productTitle">Widget</div>`, TitleNotFound},
	}

	e := NewExtractor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, e.ExtractDocument(newDocument(t, tt.html)).Title)
		})
	}
}

func TestExtractDocument_Price(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"Whole And Fraction",
			`<span class="a-price-whole">19</span><span class="a-price-fraction">99</span>`,
			"💲 19,99 €",
		},
		{
			"Whole With Rendered Separator",
			`<span class="a-price-whole">19<span class="a-price-decimal">,</span></span><span class="a-price-fraction">99</span>`,
			"💲 19,99 €",
		},
		{
			"Whole Only",
			`<span class="a-price-whole">19</span>`,
			"💲 19 €",
		},
		{
			"Thousands Separator Preserved",
			`<span class="a-price-whole">1.299,</span><span class="a-price-fraction">00</span>`,
			"💲 1.299,00 €",
		},
		{
			"Legacy Price Block",
			`<span class="priceBlockBuyingPriceString">€15.00</span>`,
			"💲 €15.00",
		},
		{
			"Primary Wins Over Legacy",
			`<span class="priceBlockBuyingPriceString">€15.00</span><span class="a-price-whole">10</span>`,
			"💲 10 €",
		},
		{
			"Fraction Without Whole Falls Through",
			`<span class="a-price-fraction">99</span><span class="priceBlockBuyingPriceString">€15.00</span>`,
			"💲 €15.00",
		},
		{
			"Not Found",
			`<span class="price">€15.00</span>`,
			PriceNotFound,
		},
	}

	e := NewExtractor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, e.ExtractDocument(newDocument(t, tt.html)).Price)
		})
	}
}

func TestExtractDocument_Discount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{"Exact Class Set", discount(" -20% "), "-20%"},
		{
			"Same Set Different Order",
			`<span class="savingsPercentage a-color-price a-size-large savingPriceOverride reinventPriceSavingsPercentageMargin aok-align-center">-35%</span>`,
			"-35%",
		},
		{
			"Subset Is A Near Miss",
			`<span class="a-size-large a-color-price savingsPercentage">-20%</span>`,
			DiscountNotFound,
		},
		{
			"Superset Is A Near Miss",
			`<span class="a-size-large a-color-price savingPriceOverride aok-align-center reinventPriceSavingsPercentageMargin savingsPercentage extra">-20%</span>`,
			DiscountNotFound,
		},
		{
			"Wrong Tag",
			`<div class="a-size-large a-color-price savingPriceOverride aok-align-center reinventPriceSavingsPercentageMargin savingsPercentage">-20%</div>`,
			DiscountNotFound,
		},
		{"Missing", ``, DiscountNotFound},
	}

	e := NewExtractor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, e.ExtractDocument(newDocument(t, tt.html)).Discount)
		})
	}
}

func TestExtractDocument_Image(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{"Src", `<img id="landingImage" src="http://x/img.png">`, "http://x/img.png"},
		{
			"Old Hires When Src Is Data URI",
			`<img id="landingImage" src="data:image/gif;base64,R0lGOD" data-old-hires="https://m.media-amazon.com/images/I/71a.jpg">`,
			"https://m.media-amazon.com/images/I/71a.jpg",
		},
		{
			"Dynamic Image JSON",
			`<img id="landingImage" data-a-dynamic-image="{&quot;https://m.media-amazon.com/images/I/61b.jpg&quot;:[679,679],&quot;https://m.media-amazon.com/images/I/61c.jpg&quot;:[450,450]}">`,
			"https://m.media-amazon.com/images/I/61b.jpg",
		},
		{"Element Without Any Source", `<img id="landingImage">`, ""},
		{"Missing Element", `<img id="otherImage" src="http://x/img.png">`, ""},
	}

	e := NewExtractor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := e.ExtractDocument(newDocument(t, tt.html))
			assert.Equal(t, tt.want, r.Image)
			assert.Equal(t, tt.want != "", r.HasImage())
		})
	}
}

func TestExtractDocument_FieldsAreIndependent(t *testing.T) {
	t.Parallel()

	// 제목이 없어도 다른 필드는 추출되어야 한다.
	doc := newDocument(t, `<span class="a-price-whole">10</span>`+discount("20%")+`<img id="landingImage" src="http://x/img.png">`)

	r := NewExtractor(nil).ExtractDocument(doc)
	assert.Equal(t, Record{
		Title:    TitleNotFound,
		Price:    "💲 10 €",
		Discount: "20%",
		Image:    "http://x/img.png",
	}, r)
}

func TestExtractDocument_InvalidUTF8IsReplaced(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, "<span id=\"productTitle\">\xff\xfeWidget</span>"+discount("-20\xff%")+`<span class="a-price-whole">19\xfe</span>`)

	r := NewExtractor(nil).ExtractDocument(doc)
	for _, v := range []string{r.Title, r.Price, r.Discount} {
		assert.True(t, utf8.ValidString(v), "%q", v)
	}
	assert.Equal(t, "\uFFFDWidget", r.Title)
	assert.Equal(t, "-20\uFFFD%", r.Discount)
}

type panicStrategy struct{}

func (panicStrategy) Lookup(_ *goquery.Document) (string, bool) {
	panic("unexpected markup")
}

func TestExtractDocument_PanicInLookupFallsBack(t *testing.T) {
	t.Parallel()

	sel := AmazonSelectors()
	sel.Price = []PriceStrategy{panicStrategy{}}

	doc := newDocument(t, `<span id="productTitle">Widget</span>`)
	r := NewExtractorWithSelectors(nil, sel).ExtractDocument(doc)

	assert.Equal(t, "Widget", r.Title)
	assert.Equal(t, PriceNotFound, r.Price)
	assert.Equal(t, DiscountNotFound, r.Discount)
}

func TestExtract_FetchFailure(t *testing.T) {
	t.Parallel()

	f := &mockDocumentFetcher{}
	f.On("FetchHTML", mock.Anything, "https://amzn.eu/d/broken").
		Return(nil, apperrors.Wrap(errors.New("503"), apperrors.ExecutionFailed, "페이지 요청이 실패 응답을 반환했습니다")).Once()

	r := NewExtractor(f).Extract(context.Background(), "https://amzn.eu/d/broken")

	assert.Equal(t, Record{
		Title:    FetchErrorTitle,
		Price:    FetchErrorValue,
		Discount: FetchErrorValue,
	}, r)
	assert.False(t, r.HasImage())

	f.AssertExpectations(t)
}

func TestExtract_EndToEnd(t *testing.T) {
	t.Parallel()

	page := `<html><head><meta charset="utf-8"></head><body>
		<span id="productTitle">Widget</span>
		<span class="a-price-whole">10</span><span class="a-price-fraction">50</span>
		` + discount("20%") + `
		<img id="landingImage" src="http://x/img.png">
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dp/B000WIDGET" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	e := NewExtractor(scraper.New(scraper.NewHTTPFetcher()))

	t.Run("Complete Page", func(t *testing.T) {
		link := srv.URL + "/dp/B000WIDGET"

		r := e.Extract(context.Background(), link)
		assert.Equal(t, Record{Title: "Widget", Price: "💲 10,50 €", Discount: "20%", Image: "http://x/img.png"}, r)

		caption := Format(r, link)
		assert.Contains(t, caption, "🛒 *Widget*")
		assert.Contains(t, caption, "💰 *Prezzo*: 💲 10,50 €")
		assert.Contains(t, caption, "🔻 *Sconto*: 20%")
		assert.True(t, strings.HasSuffix(caption, "\n"+link))
	})

	t.Run("Non 200 Response", func(t *testing.T) {
		r := e.Extract(context.Background(), srv.URL+"/dp/MISSING")
		assert.Equal(t, FetchErrorTitle, r.Title)
		assert.Equal(t, FetchErrorValue, r.Price)
		assert.Equal(t, FetchErrorValue, r.Discount)
		assert.False(t, r.HasImage())
	})

	t.Run("Malformed URL", func(t *testing.T) {
		r := e.Extract(context.Background(), "ciao, come stai?")
		assert.Equal(t, FetchErrorTitle, r.Title)
	})
}

package offer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/offer-bot/pkg/strutil"
)

// Selectors 상품 페이지에서 각 필드를 찾기 위한 선택자 정의입니다.
// 페이지 마크업이 바뀌면 추출 로직이 아니라 이 값만 수정합니다.
type Selectors struct {
	Title string

	// Price 앞에서부터 순서대로 시도하며, 요소를 찾은 첫 번째 전략의 결과를 사용합니다.
	Price []PriceStrategy

	// DiscountTag 할인 요소의 태그명
	DiscountTag string

	// DiscountClasses 할인 요소의 class 속성이 정확히 이 집합과 일치해야 합니다. (부분 일치 불가)
	DiscountClasses []string

	Image string
}

// AmazonSelectors 아마존 상품 페이지용 선택자를 반환합니다.
func AmazonSelectors() Selectors {
	return Selectors{
		Title: "span#productTitle",
		Price: []PriceStrategy{
			WholeFractionStrategy{Whole: "span.a-price-whole", Fraction: "span.a-price-fraction"},
			VerbatimStrategy{Selector: "span.priceBlockBuyingPriceString"},
		},
		DiscountTag: "span",
		DiscountClasses: []string{
			"a-size-large",
			"a-color-price",
			"savingPriceOverride",
			"aok-align-center",
			"reinventPriceSavingsPercentageMargin",
			"savingsPercentage",
		},
		Image: "img#landingImage",
	}
}

// PriceStrategy 가격 요소를 찾아 표시 문자열을 만드는 전략입니다.
// 요소를 찾지 못하면 ok=false를 반환하여 다음 전략으로 넘어갑니다.
type PriceStrategy interface {
	Lookup(doc *goquery.Document) (price string, ok bool)
}

// WholeFractionStrategy 정수부와 소수부 요소로 나뉘어 표시되는 가격을 조합합니다.
//
//	정수부 + 소수부 : "💲 19,99 €"
//	정수부만 존재   : "💲 19 €"
type WholeFractionStrategy struct {
	Whole    string
	Fraction string
}

func (s WholeFractionStrategy) Lookup(doc *goquery.Document) (string, bool) {
	whole := doc.Find(s.Whole).First()
	if whole.Length() == 0 {
		return "", false
	}

	// 정수부 요소 안에 소수점 구분자(",")가 함께 렌더링되는 경우가 있어 제거한다.
	w := strings.TrimRight(strutil.NormalizeSpaces(whole.Text()), ",.")

	fraction := doc.Find(s.Fraction).First()
	if fraction.Length() == 0 {
		return "💲 " + w + " €", true
	}

	return "💲 " + w + "," + strutil.NormalizeSpaces(fraction.Text()) + " €", true
}

// VerbatimStrategy 가격 요소의 텍스트를 그대로 사용합니다. 예: "💲 €15.00"
type VerbatimStrategy struct {
	Selector string
}

func (s VerbatimStrategy) Lookup(doc *goquery.Document) (string, bool) {
	sel := doc.Find(s.Selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return "💲 " + strutil.NormalizeSpaces(sel.Text()), true
}

package offer

// 필드를 찾지 못했을 때 사용하는 대체 문자열입니다.
const (
	TitleNotFound    = "❌ Nome del prodotto non trovato"
	PriceNotFound    = "💲 Prezzo non trovato"
	DiscountNotFound = "🚫 Sconto non trovato"
)

// 페이지 요청 자체가 실패했을 때 사용하는 문자열입니다.
const (
	FetchErrorTitle = "Errore nel recupero del prodotto"
	FetchErrorValue = "🚫 Errore"
)

// Record 상품 페이지 하나에서 추출한 결과입니다.
//
// Title, Price, Discount는 항상 값(실제 데이터 또는 대체 문자열)을 가집니다.
// Image만 빈 문자열(이미지 없음)일 수 있습니다.
type Record struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Discount string `json:"discount"`
	Image    string `json:"image,omitempty"`
}

// HasImage 이미지 URL이 존재하는지 여부를 반환합니다.
func (r Record) HasImage() bool {
	return r.Image != ""
}

// fetchFailedRecord 페이지를 가져오지 못했을 때 반환하는 결과입니다.
func fetchFailedRecord() Record {
	return Record{
		Title:    FetchErrorTitle,
		Price:    FetchErrorValue,
		Discount: FetchErrorValue,
	}
}

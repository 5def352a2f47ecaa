package response

// PreviewResponse 상품 미리보기 결과와 게시될 캡션입니다. 이미지가 없으면 Image는 빈 문자열입니다.
type PreviewResponse struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Discount string `json:"discount"`
	Image    string `json:"image"`
	Caption  string `json:"caption"`
}
